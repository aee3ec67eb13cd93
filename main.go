package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"elprimobot/config"
	"elprimobot/database"
	"elprimobot/discord"
	"elprimobot/logger"
	"elprimobot/scheduler"
	"elprimobot/stats"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("Recovered from panic: %v\n%s", r, debug.Stack())
		}
	}()

	rootCmd := &cobra.Command{
		Use:           "elprimobot",
		Short:         "Community activity stats bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "stats-weekly",
			Short: "Run one weekly stats cycle and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOnce(func(svc *stats.Service) error {
					return svc.PostWeeklyStats()
				})
			},
		},
		&cobra.Command{
			Use:   "stats-daily",
			Short: "Post daily activity stats and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOnce(func(svc *stats.Service) error {
					return svc.PostDailyStats()
				})
			},
		},
		&cobra.Command{
			Use:   "daemon",
			Short: "Run the scheduled stats jobs in blocking mode",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDaemon()
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Log.WithError(err).Error("Bot encountered an error and is shutting down")
		os.Exit(1)
	}
}

// setup loads configuration and opens the shared collaborators. The
// Discord session is passed down explicitly; nothing holds it as a
// global.
func setup() (*discord.Session, error) {
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found, using environment as-is")
	}

	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if config.AppConfig.ArchiveEnabled() {
		if err := database.Connect(); err != nil {
			logger.Log.WithError(err).Error("Archive database unavailable, continuing without it")
		}
	}

	session, err := discord.New(config.AppConfig.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to start Discord session: %w", err)
	}
	return session, nil
}

func runOnce(job func(*stats.Service) error) error {
	session, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Log.WithError(err).Error("Error closing Discord session")
		}
	}()

	return job(stats.New(session, config.AppConfig))
}

func runDaemon() error {
	session, err := setup()
	if err != nil {
		return err
	}

	c, err := scheduler.Start(stats.New(session, config.AppConfig))
	if err != nil {
		return err
	}

	logger.Log.Info("Bot is running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	c.Stop()
	if err := session.Close(); err != nil {
		logger.Log.WithError(err).Error("Error closing Discord session")
	}
	return nil
}
