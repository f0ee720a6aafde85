package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/primer/internal/audit"
	"github.com/ziadkadry99/primer/internal/markdown"
	"github.com/ziadkadry99/primer/internal/server"
	"github.com/ziadkadry99/primer/internal/tutorials"
	"github.com/ziadkadry99/primer/internal/web"
)

var (
	serverPort int
	serverSeed bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the tutorial server",
	Long:  `Starts the primer HTTP server with the JSON API, the reading UI and the admin import page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		auditStore := audit.NewStore(database)
		journal := audit.NewRecorder(auditStore)

		if serverSeed {
			t, inserted, err := tutorials.Seed(cmd.Context(), store)
			if err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}
			if inserted {
				journal.Seeded(cmd.Context(), audit.ActorSystem, t)
			}
		}

		importer, err := newImporter(cfg, store)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:          cfg.Server.Port,
			AllowAll:      cfg.Server.AllowAllOrigins,
			AdminUser:     cfg.Admin.Username,
			AdminPassword: cfg.Admin.Password,
		}, database)

		if err := registerAllRoutes(srv, store, importer, auditStore, cfg.Server.ListTimeout); err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logrus.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logrus.WithFields(logrus.Fields{
			"version":  Version,
			"port":     cfg.Server.Port,
			"database": database.Path(),
		}).Info("primer server starting")

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires the JSON API, the audit trail and the reading UI
// onto the server.
func registerAllRoutes(srv *server.Server, store *tutorials.Store, importer *tutorials.Importer, auditStore *audit.Store, listTimeout time.Duration) error {
	r := srv.Router()

	tutorials.RegisterRoutes(r, store, importer, tutorials.RouteOptions{
		ListTimeout: listTimeout,
		AdminAuth:   srv.AdminAuth(),
		Journal:     audit.NewRecorder(auditStore),
	})
	audit.RegisterRoutes(r, auditStore, srv.AdminAuth())

	ui, err := web.New(store, markdown.NewRenderer(false), listTimeout)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	ui.RegisterRoutes(r, srv.AdminAuth())
	return nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	serverCmd.Flags().BoolVar(&serverSeed, "seed", false, "Insert the sample tutorial when the database is empty")
	rootCmd.AddCommand(serverCmd)
}
