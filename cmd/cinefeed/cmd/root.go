package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yjkwon/cinefeed/client"
	"github.com/yjkwon/cinefeed/credstore"
	"github.com/yjkwon/cinefeed/internal/config"
	"github.com/yjkwon/cinefeed/session"
)

var (
	apiURL   string
	credPath string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "cinefeed",
	Short: "CineFeed is a terminal client for the CineFeed recommendation platform",
	Long: `Browse the catalog, manage your profile, read your personalized feed,
and administer contents and recommendation analytics from the terminal.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cfg := config.Load()
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", cfg.APIBaseURL, "Backend base URL")
	rootCmd.PersistentFlags().StringVar(&credPath, "credentials", cfg.CredentialPath, "Path to the credential database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// consoleNavigator is the CLI's login surface: a forced "navigation"
// prints the expiry message and where to go next.
type consoleNavigator struct{}

func (consoleNavigator) Replace(path, message string) {
	fmt.Fprintf(os.Stderr, "%s: run `cinefeed login` to continue (%s)\n", message, path)
}

// app bundles the wired composition root for one command invocation.
type app struct {
	client  *client.Client
	store   *credstore.Bolt
	watcher *session.Watcher
}

// newApp wires the credential store, the expiry bus, the watcher, and
// the client together, mirroring the application root of the web client.
func newApp() (*app, error) {
	if err := os.MkdirAll(filepath.Dir(credPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating credential directory: %w", err)
	}
	store, err := credstore.NewBoltFromFile(credPath, nil)
	if err != nil {
		return nil, err
	}

	bus := session.NewBus()
	watcher := session.NewWatcher(bus, consoleNavigator{})
	watcher.Start()

	c := client.New(apiURL,
		client.WithStore(store),
		client.WithBus(bus),
		client.WithLogger(newLogger()),
	)
	return &app{client: c, store: store, watcher: watcher}, nil
}

func (a *app) close() {
	a.watcher.Stop()
	_ = a.store.Close()
}
