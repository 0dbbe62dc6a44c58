package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds everything the bot reads from the environment.
// A .env file, if present, is loaded by main before this runs
type Config struct {
	DiscordToken       string
	ServerUrl          string
	ApiKey             string
	TrackerChannelName string
	CommunityGuildId   string
	ExecGuildId        string
	RefreshCooldown    time.Duration
	MainCycle          time.Duration
	AutoRefreshPeriod  time.Duration
	LogLevel           string
}

const defaultServerUrl = "http://localhost:8080"
const defaultTrackerChannelName = "office-tracker"
const defaultRefreshCooldown = 15 * time.Second
const defaultAutoRefreshPeriod = 1 * time.Minute

// How often the main loop wakes up to check its timed tasks
const defaultMainCycle = 5 * time.Second

// Load reads the configuration from environment variables.
// All missing required variables are reported together
func Load() (Config, error) {

	cfg := Config{
		DiscordToken:       os.Getenv("DISCORD_TOKEN"),
		ServerUrl:          getenvDefault("SERVER_URL", defaultServerUrl),
		ApiKey:             os.Getenv("DISCORD_BOT_API_KEY"),
		TrackerChannelName: getenvDefault("OFFICE_TRACKER_CHANNEL_NAME", defaultTrackerChannelName),
		CommunityGuildId:   os.Getenv("COMMUNITY_GUILD_ID"),
		ExecGuildId:        os.Getenv("EXEC_GUILD_ID"),
		RefreshCooldown:    defaultRefreshCooldown,
		MainCycle:          defaultMainCycle,
		AutoRefreshPeriod:  defaultAutoRefreshPeriod,
		LogLevel:           getenvDefault("LOG_LEVEL", "info"),
	}

	missing := []string{}
	if cfg.DiscordToken == "" {
		missing = append(missing, "DISCORD_TOKEN")
	}
	if cfg.CommunityGuildId == "" {
		missing = append(missing, "COMMUNITY_GUILD_ID")
	}
	if cfg.ExecGuildId == "" {
		missing = append(missing, "EXEC_GUILD_ID")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getenvDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
