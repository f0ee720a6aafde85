package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/primer/internal/audit"
	"github.com/ziadkadry99/primer/internal/tutorials"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample tutorial into an empty database",
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

		t, inserted, err := tutorials.Seed(cmd.Context(), store)
		if err != nil {
			return err
		}
		if !inserted {
			fmt.Println("Database already has tutorials; nothing to seed.")
			return nil
		}
		newJournal(database).Seeded(cmd.Context(), audit.ActorCLI, t)
		fmt.Printf("Inserted sample tutorial %q (%s)\n", t.Title, t.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
