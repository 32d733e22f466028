package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v3"

	"comms_governance/internal/app"
	"comms_governance/internal/domain/calendar"
	"comms_governance/internal/domain/communication"
	"comms_governance/internal/infra/config"
	"comms_governance/internal/infra/evidence"
	"comms_governance/internal/infra/httpapi"
	"comms_governance/internal/infra/logger"
	"comms_governance/internal/infra/memory"
	"comms_governance/internal/infra/scheduler"
	"comms_governance/internal/infra/telegram"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the Telegram bot and the digest scheduler",
	Long: `Run the dashboard service until SIGINT or SIGTERM.

The HTTP API always runs on HTTP_ADDR. The Telegram bot and the daily agenda /
monthly digest jobs only run when TELEGRAM_TOKEN is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		logger.Init(cfg)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cfg *config.AppConfig) error {
	base := logrus.NewEntry(logger.Log)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"log_level":   cfg.LogLevel,
		"telegram":    cfg.TelegramEnabled(),
	}).Info("Configuration loaded")

	var seed []communication.Entry
	if cfg.SeedSampleData {
		seed = app.SampleEntries()
	}
	registry, err := memory.NewRegistry(seed)
	if err != nil {
		return fmt.Errorf("could not initialise registry: %w", err)
	}
	mainLogger.WithField("entries", registry.Len()).Info("Registry initialised")

	registryService := app.NewRegistryService(registry, calendar.DefaultHolidays, base)
	insightService := app.NewInsightService(newGenerator(ctx, cfg, base), cfg.InsightTimeout, base)
	server := httpapi.NewServer(registryService, insightService, evidence.NewEncoder(cfg.EvidenceMaxBytes), base)

	var (
		bot             *telebot.Bot
		digestScheduler *scheduler.DigestScheduler
	)
	if cfg.TelegramEnabled() {
		bot, err = newBot(cfg, base)
		if err != nil {
			return err
		}
		telegram.NewHandlers(registryService, insightService, base).RegisterBotCommands(bot)
		if err := bot.SetCommands(telegram.Commands()); err != nil {
			mainLogger.WithError(err).Warn("Could not publish the bot command menu")
		}

		digestService := app.NewDigestService(registryService, telegram.NewTelebotAdapter(bot), cfg.DigestChatID, cfg.CurrencyLocale, base)
		digestScheduler = scheduler.NewDigestScheduler(digestService, base, cfg.CronSpecDailyAgenda, cfg.CronSpecMonthlyDigest)
		if err := digestScheduler.Start(); err != nil {
			return fmt.Errorf("could not start digest scheduler: %w", err)
		}
	} else {
		mainLogger.Info("TELEGRAM_TOKEN not set, bot and digest scheduler disabled")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Listen(cfg.HTTPAddr); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if bot != nil {
		g.Go(func() error {
			mainLogger.Info("Telegram bot polling")
			bot.Start() // returns once Stop is called
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			bot.Stop()
			digestScheduler.Stop()
			return nil
		})
	}

	mainLogger.Info("Application setup complete")
	err = g.Wait()
	mainLogger.Info("Application shut down gracefully")
	return err
}

func newBot(cfg *config.AppConfig, base *logrus.Entry) (*telebot.Bot, error) {
	botLogger := base.WithField("component", "telebot")
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := botLogger.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{"text": c.Text(), "sender_id": c.Sender().ID, "chat_id": c.Chat().ID})
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("could not create Telegram bot: %w", err)
	}
	return bot, nil
}
