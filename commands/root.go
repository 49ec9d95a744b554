// Package commands is the campus command line.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campus/client"
	"campus/config"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "campus",
		Short:         "Campus management client and reference server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadConfig(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			config.InitLogger()
			if cmd.Annotations[annotationServer] != "" {
				return nil
			}
			if a.retries < 0 || a.retries > client.MaxManualRetries {
				return fmt.Errorf("--retry must be between 0 and %d", client.MaxManualRetries)
			}
			a.setup(cmd.OutOrStdout())
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.apiURL, "api", "", "backend base URL (overrides API_BASE_URL)")
	flags.StringVar(&a.tokenFile, "token-file", "", "where the session token is kept (overrides TOKEN_FILE)")
	flags.IntVar(&a.retries, "retry", 0, fmt.Sprintf("retry a call failing with a network error up to N times (max %d)", client.MaxManualRetries))
	flags.BoolVar(&a.json, "json", false, "print JSON instead of tables")

	rootCmd.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newRegisterCommand(a),
		newDashboardCommand(a),
		newFacilitiesCommand(a),
		newBookingsCommand(a),
		newCoursesCommand(a),
		newCafeteriaCommand(a),
		newExamsCommand(a),
		newResourcesCommand(a),
		newAttendanceCommand(a),
		newEventsCommand(a),
		newLostFoundCommand(a),
		newServeCommand(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}
