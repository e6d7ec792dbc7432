package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/document-management-api/internal/router"
	"github.com/yukikurage/document-management-api/internal/worker"
)

func NewPurgeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Run one trash purge pass and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg, logger)
			if err != nil {
				return err
			}

			app, err := router.New(cfg, db, logger)
			if err != nil {
				return err
			}

			result, err := app.PurgeWorker.PurgeOnce(cmd.Context(), worker.TriggerCLI)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
