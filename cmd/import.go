package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/primer/internal/audit"
	"github.com/ziadkadry99/primer/internal/ghsource"
	"github.com/ziadkadry99/primer/internal/progress"
	"github.com/ziadkadry99/primer/internal/tutorials"
)

var importCmd = &cobra.Command{
	Use:   "import <github-url>",
	Short: "Import a markdown file or folder from GitHub",
	Long: `Imports a tutorial from GitHub.

A blob URL (https://github.com/owner/repo/blob/branch/file.md) becomes a
single-page tutorial. A tree URL (https://github.com/owner/repo/tree/branch/dir)
is scanned recursively and every markdown file becomes a chapter.`,
	Args: cobra.ExactArgs(1),
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

		importer, err := newImporter(cfg, store)
		if err != nil {
			return err
		}

		reporter := progress.NewReporter(os.Stderr)
		reporter.Start(progress.Unknown)
		seen := 0
		res, err := importer.Import(cmd.Context(), tutorials.ImportRequest{
			GitHubURL: args[0],
			Progress: func(relPath string) {
				seen++
				reporter.Update(seen, relPath)
			},
		})
		reporter.Finish()

		journal := newJournal(database)
		if err != nil {
			journal.ImportFailed(cmd.Context(), audit.ActorCLI, args[0], err)
			return err
		}
		journal.Imported(cmd.Context(), audit.ActorCLI, res)

		printImportResult(res)
		return nil
	},
}

func printImportResult(res *tutorials.ImportResult) {
	t := res.Tutorial
	fmt.Printf("Imported %q\n", t.Title)
	fmt.Printf("  ID:        %s\n", t.ID)
	fmt.Printf("  Source:    %s\n", t.GitHubURL)
	if t.Author != "" {
		fmt.Printf("  Author:    %s\n", t.Author)
	}
	fmt.Printf("  Read time: %d min\n", t.ReadTime)

	if res.Kind == ghsource.KindFolder {
		fmt.Printf("  Chapters:  %d\n", t.TotalChapters)
		for _, ch := range t.Chapters() {
			fmt.Printf("    %2d. %s (%d min)\n", ch.Order, ch.Title, ch.ReadTime)
		}
	}

	if len(res.Warnings) > 0 {
		fmt.Printf("\n%d file(s) could not be imported:\n", len(res.Warnings))
		for _, w := range res.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
}
