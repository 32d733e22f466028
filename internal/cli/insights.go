package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"comms_governance/internal/app"
	"comms_governance/internal/domain/insight"
	"comms_governance/internal/infra/config"
	"comms_governance/internal/infra/gemini"
	"comms_governance/internal/infra/logger"
)

var insightsFile string

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Request an AI analysis of a set of entries",
	Long: `Send the analytical projection of the entries (channel, objective, type,
comprehension and return indicator only) to Gemini and print the resulting
insights and suggestions as JSON.

Without GEMINI_API_KEY, or when the call fails, the default guidance is printed
with "fallback": true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		logger.Init(cfg)

		entries, err := loadEntries(insightsFile)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		svc := app.NewInsightService(newGenerator(ctx, cfg, logrus.NewEntry(logger.Log)), cfg.InsightTimeout, logrus.NewEntry(logger.Log))
		return printOutcome(cmd, svc.Request(ctx, entries))
	},
}

func init() {
	insightsCmd.Flags().StringVar(&insightsFile, "file", "", "JSON file with entries (default: sample data)")
	rootCmd.AddCommand(insightsCmd)
}

// newGenerator returns nil when no key is configured or the client cannot be built,
// which makes the insight service answer with the fallback.
func newGenerator(ctx context.Context, cfg *config.AppConfig, log *logrus.Entry) insight.Generator {
	if cfg.GeminiAPIKey == "" {
		log.Info("GEMINI_API_KEY not set, insights will use the fallback report")
		return nil
	}
	gen, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.WithError(err).Warn("Could not create Gemini client, insights will use the fallback report")
		return nil
	}
	log.WithField("model", gen.Name()).Info("Insight generator ready")
	return gen
}

func printOutcome(cmd *cobra.Command, out insight.Outcome) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
