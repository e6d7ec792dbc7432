package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/yukikurage/document-management-api/internal/config"
	"github.com/yukikurage/document-management-api/internal/database"
	"github.com/yukikurage/document-management-api/internal/logging"
	"gorm.io/gorm"
)

type VersionInfo struct {
	Version string
	Commit  string
}

// NewRootCommand runs the server when no subcommand is given.
func NewRootCommand(info VersionInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "docmgmt",
		Short:         "Document management API server",
		Long:          "HTTP API for folders, documents, taxonomies, users and the document trash.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "optional YAML config file; environment variables take precedence")
	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}

// loadConfig reads configuration and builds the process logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openDatabase connects and migrates the schema.
func openDatabase(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	if err := database.Connect(cfg, logger); err != nil {
		return nil, err
	}
	if err := database.Migrate(logger); err != nil {
		return nil, err
	}
	return database.GetDB(), nil
}
