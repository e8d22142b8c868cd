// Package cli provides the command-line interface for pgprobe.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ctorralba/pgprobe/internal/adapters/postgres"
	"github.com/ctorralba/pgprobe/internal/adapters/profilestore"
	"github.com/ctorralba/pgprobe/internal/core/domain"
	"github.com/ctorralba/pgprobe/internal/core/services"
	"github.com/ctorralba/pgprobe/internal/logger"
)

var (
	// Global flags
	host        string
	user        string
	dbname      string
	port        int
	password    string
	loadName    string
	profileFile string
	logFile     string
	debug       bool

	// Version information
	version = "1.0.0"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pgprobe",
	Short: "pgprobe - interactive PostgreSQL diagnostics client",
	Long: `pgprobe is an interactive command-line client for PostgreSQL.

It connects to a database with credentials from flags or from a saved
profile, then presents a fixed menu of diagnostic operations: server
uptime, version, public tables, installed extensions, and custom queries.
Connection profiles can be saved to a file to avoid re-entering
credentials.

Examples:
  # Connect with explicit credentials
  pgprobe --host db.local --user postgres --dbname app --password secret

  # Reuse a previously saved profile
  pgprobe --load prod`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&host, "host", "H", "", "PostgreSQL hostname or IP address (default \"localhost\")")
	rootCmd.PersistentFlags().StringVarP(&user, "user", "U", "postgres", "PostgreSQL username")
	rootCmd.PersistentFlags().StringVarP(&dbname, "dbname", "d", "", "Database name (defaults to the username)")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 5432, "PostgreSQL port")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "W", "", "PostgreSQL password")
	rootCmd.PersistentFlags().StringVarP(&loadName, "load", "l", "", "Name of a previously saved profile to connect with")
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile-file", profilestore.DefaultPath, "Path to the profile store file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", logger.DefaultPath, "Path to the log file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// GetConnectionProfile builds a ConnectionProfile from the global flags
func GetConnectionProfile() domain.ConnectionProfile {
	profile := domain.ConnectionProfile{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		DBName:   dbname,
	}
	profile.ApplyDefaults()
	return profile
}

func runInteractive(cmd *cobra.Command, args []string) error {
	log := logger.New(logFile, debug)
	store := profilestore.NewStore(profileFile)
	gateway := postgres.NewGateway()
	session := services.NewSession(gateway, log)

	ctx := context.Background()

	// Handle released on every exit path, including the error returns below.
	defer session.Disconnect(ctx)

	dispatcher := NewDispatcher(session, store, os.Stdin, os.Stdout)

	if loadName != "" {
		profile, err := store.Load(loadName)
		if err != nil {
			return fmt.Errorf("could not load profile %q: %w", loadName, err)
		}
		fmt.Printf("Profile %q found, loading information.\n", loadName)

		// A password given on the command line overrides the stored one.
		if cmd.Flags().Changed("password") {
			profile.Password = password
		}

		if err := session.Connect(ctx, profile); err != nil {
			dispatcher.renderError(err)
		}
	} else if cmd.Flags().Changed("host") || cmd.Flags().Changed("user") || cmd.Flags().Changed("dbname") {
		if err := session.Connect(ctx, GetConnectionProfile()); err != nil {
			dispatcher.renderError(err)
		}
	}

	dispatcher.Run(ctx)
	return nil
}
