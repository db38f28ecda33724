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

	"github.com/spf13/cobra"

	"github.com/yjkwon/cinefeed/backend"
	"github.com/yjkwon/cinefeed/internal/config"
)

var (
	listenAddr    string
	adminEmail    string
	adminPassword string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a self-contained demo backend with a seeded catalog",
	Long: `Starts the in-memory CineFeed backend on the given address, seeds the
catalog, and bootstraps one admin account so the other commands have
something to talk to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := backend.New(backend.WithLogger(newLogger()))
		srv.SeedCatalog()
		if _, err := srv.AddUser(adminEmail, adminPassword, "admin", "ADMIN"); err != nil {
			return fmt.Errorf("bootstrapping admin account: %w", err)
		}

		server := &http.Server{
			Addr:              listenAddr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		fmt.Printf("Demo backend listening on %s (admin: %s)\n", listenAddr, adminEmail)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	cfg := config.Load()
	demoCmd.Flags().StringVar(&listenAddr, "listen", cfg.ListenAddr, "Address to listen on")
	demoCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@cinefeed.local", "Bootstrap admin email")
	demoCmd.Flags().StringVar(&adminPassword, "admin-password", "admin1234", "Bootstrap admin password")

	rootCmd.AddCommand(demoCmd)
}
