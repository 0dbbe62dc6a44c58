package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("COMMUNITY_GUILD_ID", "100")
	t.Setenv("EXEC_GUILD_ID", "200")
	t.Setenv("SERVER_URL", "")
	t.Setenv("OFFICE_TRACKER_CHANNEL_NAME", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, defaultServerUrl, cfg.ServerUrl)
	assert.Equal(t, defaultTrackerChannelName, cfg.TrackerChannelName)
	assert.Equal(t, defaultRefreshCooldown, cfg.RefreshCooldown)
	assert.Equal(t, defaultAutoRefreshPeriod, cfg.AutoRefreshPeriod)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ReportsAllMissingVariablesTogether(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("COMMUNITY_GUILD_ID", "")
	t.Setenv("EXEC_GUILD_ID", "200")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
	assert.Contains(t, err.Error(), "COMMUNITY_GUILD_ID")
	assert.NotContains(t, err.Error(), "EXEC_GUILD_ID")
}

func TestLoad_ReadsOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("COMMUNITY_GUILD_ID", "100")
	t.Setenv("EXEC_GUILD_ID", "200")
	t.Setenv("SERVER_URL", "http://backend:9999")
	t.Setenv("DISCORD_BOT_API_KEY", "secret")
	t.Setenv("OFFICE_TRACKER_CHANNEL_NAME", "presence")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://backend:9999", cfg.ServerUrl)
	assert.Equal(t, "secret", cfg.ApiKey)
	assert.Equal(t, "presence", cfg.TrackerChannelName)
	assert.Equal(t, "100", cfg.CommunityGuildId)
	assert.Equal(t, "200", cfg.ExecGuildId)
}
