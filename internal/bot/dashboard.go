package bot

import (
	"errors"
	"fmt"
	"math"

	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/common"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/officeapi"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Button custom ids. These are persistent: a click on a dashboard
// posted before a restart still routes here
const RO_REFRESH_BUTTON = "ro_refresh_button"
const CTRL_REFRESH_BUTTON = "ctrl_refresh_button"
const CTRL_LEAVE_BUTTON = "ctrl_leave_button"

// How many recent messages to scrape when looking for the dashboard
const dashboardScrapeLimit = 10

// The buttons attached to the dashboard, depending on what the guild
// is allowed to do. The community guild only gets to refresh; the exec
// guild can also sign themselves out
func viewComponents(mode GuildMode) []discordgo.MessageComponent {

	refresh := func(customid string) discordgo.Button {
		return discordgo.Button{
			Label:    "Refresh 🔄",
			Style:    discordgo.SecondaryButton,
			CustomID: customid,
		}
	}

	switch mode {
	case MODE_CONTROL:
		return []discordgo.MessageComponent{discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Leaving 🟥",
					Style:    discordgo.DangerButton,
					CustomID: CTRL_LEAVE_BUTTON,
				},
				refresh(CTRL_REFRESH_BUTTON),
			},
		}}
	default:
		return []discordgo.MessageComponent{discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				refresh(RO_REFRESH_BUTTON),
			},
		}}
	}
}

// Update the dashboard in ALL configured guilds.
// Scheduled refreshes are not vital: when the rate limiter sheds one,
// the dashboard is simply left as it is
func (bot *Bot) globalRefresh(discord *discordgo.Session, vital bool) {

	log.Info().Msg("Triggering global dashboard refresh")
	bot.cooldownMu.Lock()
	bot.refreshCooldown.Start()
	bot.cooldownMu.Unlock()

	// Build the embed content, shared across guilds
	attendees, err := bot.api.GetCurrent(vital)
	if errors.Is(err, common.ErrRateLimited) {
		log.Warn().Msg("Dashboard refresh shed by the rate limiter")
		return
	}
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Error fetching current office attendees: %s", err))
	}
	embed := DashboardEmbed(attendees, err)

	for guildid, mode := range bot.guildModes {
		bot.refreshGuildDashboard(discord, guildid, mode, embed)
	}
}

func (bot *Bot) refreshGuildDashboard(discord *discordgo.Session, guildid string, mode GuildMode, embed *discordgo.MessageEmbed) {

	channelid, err := bot.getChannelId(discord, guildid, bot.trackerChannelName)
	if err != nil {
		// Bot might not be in the guild yet, or the channel is missing
		log.Debug().Msg(fmt.Sprintf("No dashboard channel in guild %s: %s", guildid, err))
		return
	}

	// Find the last message by the bot and edit it
	messageid, err := bot.findDashboardMessage(discord, channelid)
	if err != nil {
		log.Debug().Msg(fmt.Sprintf("No dashboard message found in guild %s: %s", guildid, err))
		return
	}

	embeds := []*discordgo.MessageEmbed{embed}
	components := viewComponents(mode)
	_, err = discord.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelid,
		ID:         messageid,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Failed to edit dashboard message in guild %s: %s", guildid, err))
	}
}

func (bot *Bot) findDashboardMessage(discord *discordgo.Session, channelid string) (string, error) {

	messages, err := discord.ChannelMessages(channelid, dashboardScrapeLimit, "", "", "")
	if err != nil {
		return "", fmt.Errorf("could not read messages of channel id %s: %w", channelid, err)
	}
	for _, message := range messages {
		if message.Author != nil && message.Author.ID == discord.State.User.ID {
			return message.ID, nil
		}
	}
	return "", fmt.Errorf("no dashboard message among the last %d messages", dashboardScrapeLimit)
}

// Handle a click on any of the refresh buttons.
// Refreshes are shared across guilds, so the cooldown is global
func (bot *Bot) doRefresh(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	// Acknowledge the click immediately to prevent "Interaction Failed"
	bot.deferUpdate(discord, interaction)

	bot.cooldownMu.Lock()
	stopped, remaining := bot.refreshCooldown.Stopped()
	bot.cooldownMu.Unlock()
	if !stopped {
		wait := int(math.Ceil(remaining.Seconds()))
		response := ResponseFollowupText{fmt.Sprintf("Please wait %d second(s) before refreshing.", wait)}
		response.Send(discord, interaction.Interaction)
		return
	}

	bot.globalRefresh(discord, true)
}

// Handle a click on the "Leaving" button: sign the clicking user out
// and refresh everywhere
func (bot *Bot) leave(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	// Acknowledge the click immediately to prevent "Interaction Failed"
	bot.deferUpdate(discord, interaction)

	user := interactionUser(interaction)
	if user == nil {
		log.Error().Msg("Leave button clicked but no user attached to the interaction")
		return
	}

	if _, err := bot.api.SignOutDiscord(officeapi.DiscordId(user.ID)); err != nil {
		log.Error().Msg(fmt.Sprintf("Error signing out user %s: %s", user.ID, err))
		return
	}

	bot.globalRefresh(discord, true)
}

func (bot *Bot) deferUpdate(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {
	err := discord.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not acknowledge component interaction: %s", err))
	}
}
