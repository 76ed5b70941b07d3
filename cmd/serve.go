package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KwaminaWhyte/esimbridge/internal/server"
	"github.com/KwaminaWhyte/esimbridge/internal/utils"
	"github.com/KwaminaWhyte/esimbridge/pkg/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bridge as a REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")
		if listen == "" {
			listen = viper.GetString("serve.listen")
		}
		dbPath, _ := cmd.Flags().GetString("dbpath")
		if dbPath == "" {
			dbPath = viper.GetString("db.path")
		}

		var store *storage.Store
		if dbPath != "none" {
			var err error
			store, err = storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
		}

		srv := server.New(server.Config{
			ListenAddr: listen,
			Bridge:     newBridge(cmd.Context()),
			Store:      store,
		})

		go func() {
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			<-c
			utils.Log.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				utils.Log.Warnf("shutdown: %v", err)
			}
		}()

		return srv.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "HTTP listen address (default from serve.listen)")
	serveCmd.Flags().String("dbpath", "", "Path to the sqlite audit store, or 'none' to disable")
}
