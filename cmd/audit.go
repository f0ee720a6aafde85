package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/primer/internal/audit"
)

var (
	auditLimit  int
	auditAction string
	auditPrune  time.Duration
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent imports, failed imports and deletions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, _, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := audit.NewStore(database)

		if auditPrune > 0 {
			n, err := store.DeleteBefore(cmd.Context(), time.Now().Add(-auditPrune))
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d entries older than %s\n", n, auditPrune)
			return nil
		}

		entries, err := store.Query(cmd.Context(), audit.QueryFilter{
			Action: audit.Action(auditAction),
			Limit:  auditLimit,
		})
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No audit entries.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTOR\tACTION\tSUMMARY")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.Actor, e.Action, e.Summary)
			for _, warn := range e.Warnings {
				fmt.Fprintf(w, "\t\t\t  warning: %s\n", warn)
			}
		}
		return w.Flush()
	},
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 20, "Maximum number of entries to show")
	auditCmd.Flags().StringVar(&auditAction, "action", "", "Only show entries with this action (tutorial_imported, import_failed, tutorial_deleted, tutorial_seeded)")
	auditCmd.Flags().DurationVar(&auditPrune, "prune", 0, "Delete entries older than this age instead of listing")
	rootCmd.AddCommand(auditCmd)
}
