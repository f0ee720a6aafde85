package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tutorials, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		summaries, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("No tutorials yet. Import one with `primer import <github-url>`.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tLEVEL\tCHAPTERS\tREAD")
		for _, s := range summaries {
			chapters := "-"
			if s.TotalChapters > 0 {
				chapters = fmt.Sprint(s.TotalChapters)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d min\n", s.ID, s.Title, s.Author, s.Difficulty, chapters, s.ReadTime)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
