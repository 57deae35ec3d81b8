package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/bakus/internal/api"
	"github.com/Nomadcxx/bakus/internal/logging"
	"github.com/Nomadcxx/bakus/internal/paths"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local API server",
		Long: `Start a local HTTP API for other front ends.

Endpoints:
  GET  /api/v1/health
  GET  /api/v1/additions
  POST /api/v1/additions/{id}/plan     preview, nothing is submitted
  POST /api/v1/additions/{id}/rename
  GET  /api/v1/history

When api.token is set in the config, requests need
"Authorization: Bearer <token>".

Examples:
  bakus serve                        # Start on api.addr (127.0.0.1:8686)
  bakus serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			lockPath, err := paths.ServeLockPath()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(lockPath), 0700); err != nil {
				return fmt.Errorf("create lock dir: %w", err)
			}
			lock := flock.New(lockPath)
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another bakus serve is running (lock %s)", lockPath)
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					a.logger.Warn("serve", "failed to release lock", logging.F("error", err.Error()))
				}
			}()

			if addr == "" {
				addr = a.cfg.API.Addr
			}
			if !a.client.LoggedIn() {
				a.logger.Warn("serve", "not logged in; server calls will fail until 'bakus login' and a restart")
			}

			server := api.NewServer(a.store, a.client, a.cfg, a.logger)
			fmt.Printf("Serving bakus API on http://%s/api/v1\n", addr)
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default: api.addr from config)")

	return cmd
}
