package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"comms_governance/internal/app"
	"comms_governance/internal/domain/communication"
)

var (
	appVersion = "dev"
	appCommit  = "none"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
}

var rootCmd = &cobra.Command{
	Use:   "commsboard",
	Short: "Internal communications governance dashboard",
	Long: `commsboard keeps the registry of internal HR communications and serves the
dashboard behind it: filtered listings, statistics, a monthly calendar with
holidays and AI-generated insights.

Run "commsboard serve" to start the HTTP API, the Telegram bot and the digest
scheduler. The calendar and insights commands work offline on a JSON file.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "commsboard %s\ncommit: %s\n", appVersion, appCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadEntries reads a JSON array of entries, the same shape the HTTP API returns.
// Without a path the sample data is used.
func loadEntries(path string) ([]communication.Entry, error) {
	if path == "" {
		return app.SampleEntries(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	var entries []communication.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding entries from %s: %w", path, err)
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d of %s: %w", i, path, err)
		}
	}
	return entries, nil
}
