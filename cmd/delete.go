package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/primer/internal/audit"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tutorial and its chapters",
	Args:  cobra.ExactArgs(1),
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

		deleted, err := store.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		newJournal(database).Deleted(cmd.Context(), audit.ActorCLI, deleted)
		fmt.Printf("Deleted %q (%s)\n", deleted.Title, deleted.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
