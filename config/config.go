package config

import (
	"fmt"
	"strings"

	"elprimobot/logger"

	"github.com/spf13/viper"
)

type Config struct {
	// Environment
	Environment string
	LogDir      string

	// Discord Settings
	DiscordToken string
	GuildID      string
	StatsChannel string

	// Stats Settings
	Bots            map[string]struct{}
	RemovalWeeks    int
	LedgerPath      string
	MaxChannelPages int

	// Scheduling
	DailyCron  string
	WeeklyCron string

	// Optional archive database
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
}

var AppConfig Config

// Load reads configuration from the environment (viper with defaults)
// and validates the required fields.
func Load() error {
	logger.Log.Info("Loading configuration...")

	viper.AutomaticEnv()
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_DIR", "logs")
	viper.SetDefault("STATS_CHANNEL", "stats")
	viper.SetDefault("BOTS", "elprimobot")
	viper.SetDefault("INACTIVITY_WEEKS_REMOVAL", 8)
	viper.SetDefault("INACTIVITY_DB_PATH", "inactivity.db")
	viper.SetDefault("MAX_CHANNEL_PAGES", 1000)
	viper.SetDefault("DAILY_MESSAGE_CRON", "0 0 * * *")
	viper.SetDefault("WEEKLY_MESSAGE_CRON", "0 12 * * 0")

	AppConfig = Config{
		Environment:     viper.GetString("ENVIRONMENT"),
		LogDir:          viper.GetString("LOG_DIR"),
		DiscordToken:    viper.GetString("DISCORD_TOKEN"),
		GuildID:         viper.GetString("GUILD_ID"),
		StatsChannel:    viper.GetString("STATS_CHANNEL"),
		Bots:            parseBots(viper.GetString("BOTS")),
		RemovalWeeks:    viper.GetInt("INACTIVITY_WEEKS_REMOVAL"),
		LedgerPath:      viper.GetString("INACTIVITY_DB_PATH"),
		MaxChannelPages: viper.GetInt("MAX_CHANNEL_PAGES"),
		DailyCron:       viper.GetString("DAILY_MESSAGE_CRON"),
		WeeklyCron:      viper.GetString("WEEKLY_MESSAGE_CRON"),
		DBUser:          viper.GetString("DB_USER"),
		DBPassword:      viper.GetString("DB_PASSWORD"),
		DBHost:          viper.GetString("DB_HOST"),
		DBPort:          viper.GetString("DB_PORT"),
		DBName:          viper.GetString("DB_NAME"),
	}

	if err := validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	logger.Log.Infof("Configuration loaded (environment: %s)", AppConfig.Environment)
	return nil
}

func parseBots(raw string) map[string]struct{} {
	bots := make(map[string]struct{})
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			bots[name] = struct{}{}
		}
	}
	return bots
}

func validate() error {
	if AppConfig.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is not set in the environment")
	}
	if AppConfig.GuildID == "" {
		return fmt.Errorf("GUILD_ID is not set in the environment")
	}
	if AppConfig.RemovalWeeks < 1 {
		return fmt.Errorf("INACTIVITY_WEEKS_REMOVAL must be at least 1, got %d", AppConfig.RemovalWeeks)
	}
	if AppConfig.MaxChannelPages < 1 {
		return fmt.Errorf("MAX_CHANNEL_PAGES must be at least 1, got %d", AppConfig.MaxChannelPages)
	}
	return nil
}

// ArchiveEnabled reports whether the optional cycle-archive database is
// configured. The bot runs fully without it.
func (c Config) ArchiveEnabled() bool {
	return c.DBUser != "" && c.DBHost != "" && c.DBName != ""
}
