package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Bounds for user provided values. Interactive listings are capped at
// what a single embed can comfortably show; the raw visit fetch for
// the leaderboard is capped by the backend
const (
	HISTORY_LIMIT_DEFAULT = 10
	HISTORY_LIMIT_MAX     = 25

	LEADERBOARD_DAYS_DEFAULT = 7
	LEADERBOARD_DAYS_MAX     = 365

	LEADERBOARD_TOP_DEFAULT = 10
	LEADERBOARD_TOP_MAX     = 25
)

// How many scan events the backend reports
const SCAN_HISTORY_SIZE = 10

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func parseOptions(data discordgo.ApplicationCommandInteractionData) options {
	opts := make(options, len(data.Options))
	for _, opt := range data.Options {
		opts[opt.Name] = opt
	}
	return opts
}

func (opts options) Int(name string, fallback int) int {
	opt, ok := opts[name]
	if !ok {
		return fallback
	}
	return int(opt.IntValue())
}

func (opts options) String(name string, fallback string) string {
	opt, ok := opts[name]
	if !ok {
		return fallback
	}
	return opt.StringValue()
}

func (opts options) User(discord *discordgo.Session, name string) *discordgo.User {
	opt, ok := opts[name]
	if !ok {
		return nil
	}
	return opt.UserValue(discord)
}

func clamp(value int, min int, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// The name a user goes by in the guild the interaction came from:
// their nickname if set, then their global display name, then the
// plain account name
func displayName(data discordgo.ApplicationCommandInteractionData, user *discordgo.User) string {
	if user == nil {
		return ""
	}
	if data.Resolved != nil {
		if member, ok := data.Resolved.Members[user.ID]; ok && member.Nick != "" {
			return member.Nick
		}
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// The user behind an interaction, regardless of whether it arrived
// from a guild or a direct message
func interactionUser(interaction *discordgo.InteractionCreate) *discordgo.User {
	if interaction.Member != nil {
		return interaction.Member.User
	}
	return interaction.User
}
