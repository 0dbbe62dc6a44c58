package bot

import (
	"fmt"
	"time"

	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/leaderboard"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/officeapi"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

var adminPermission int64 = discordgo.PermissionAdministrator

// Commands available everywhere the bot lives
func globalCommands() []*discordgo.ApplicationCommand {

	minOne := float64(1)
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "setup",
			Description:              "[Admin] Create the office presence dashboard",
			DefaultMemberPermissions: &adminPermission,
		},
		{
			Name:        "leaderboard",
			Description: "Show the office attendance leaderboard",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "days",
					Description: fmt.Sprintf("Lookback window in days (default %d)", LEADERBOARD_DAYS_DEFAULT),
					MinValue:    &minOne,
					MaxValue:    LEADERBOARD_DAYS_MAX,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "top",
					Description: fmt.Sprintf("Number of members to show (default %d)", LEADERBOARD_TOP_DEFAULT),
					MinValue:    &minOne,
					MaxValue:    LEADERBOARD_TOP_MAX,
				},
			},
		},
		{
			Name:                     "signout_all",
			Description:              "[Admin] Sign out all members from the office",
			DefaultMemberPermissions: &adminPermission,
		},
		{
			Name:                     "signin",
			Description:              "[Admin] Sign in a member to the office",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "The member to sign in",
					Required:    true,
				},
			},
		},
		{
			Name:        "signout",
			Description: "Sign out a member from the office",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "The member to sign out",
					Required:    true,
				},
			},
		},
	}
}

// Commands only registered against the exec guild
func execCommands() []*discordgo.ApplicationCommand {

	minOne := float64(1)
	return []*discordgo.ApplicationCommand{
		{
			Name:        "add_member",
			Description: "Add a member to the backend",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "The Discord member to add",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "uid",
					Description: "The unique identifier for the member (e.g. student ID)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Optional name; defaults to the Discord display name",
				},
			},
		},
		{
			Name:        "list_members",
			Description: "List all members in the backend",
		},
		{
			Name:        "scan_history",
			Description: fmt.Sprintf("List last %d scan events", SCAN_HISTORY_SIZE),
		},
		{
			Name:        "history",
			Description: "View recent office visit history",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: fmt.Sprintf("Number of recent sessions to display (default %d, max %d)", HISTORY_LIMIT_DEFAULT, HISTORY_LIMIT_MAX),
					MinValue:    &minOne,
					MaxValue:    HISTORY_LIMIT_MAX,
				},
			},
		},
	}
}

// Acknowledge a slash command right away. Discord voids interactions
// that get no response within a few seconds, so handlers that talk to
// the backend defer first and deliver the real reply as a followup
func (bot *Bot) deferReply(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {
	err := discord.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not acknowledge command interaction: %s", err))
	}
}

func (bot *Bot) setup(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	mode, ok := bot.guildModes[interaction.GuildID]
	if !ok {
		response := ResponseText{fmt.Sprintf("⚠️ This server (ID: %s) is not configured for the office dashboard.", interaction.GuildID)}
		response.Send(discord, interaction.Interaction)
		return
	}

	// Post the dashboard publicly, then immediately refresh it so it
	// shows real data instead of the placeholder
	response := ResponsePublicEmbed{InitialDashboardEmbed(), viewComponents(mode)}
	response.Send(discord, interaction.Interaction)
	bot.globalRefresh(discord, true)
}

func (bot *Bot) addMember(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	bot.deferReply(discord, interaction)

	data := interaction.ApplicationCommandData()
	opts := parseOptions(data)
	user := opts.User(discord, "member")
	if user == nil {
		response := ResponseFollowupText{"❌ No member provided."}
		response.Send(discord, interaction.Interaction)
		return
	}
	uid := opts.String("uid", "")
	name := opts.String("name", "")
	if name == "" {
		name = displayName(data, user)
	}

	member := officeapi.Member{Name: name, Uid: uid, DiscordId: officeapi.DiscordId(user.ID)}
	if err := bot.api.AddMember(member); err != nil {
		log.Error().Msg(fmt.Sprintf("Error adding member %s: %s", user.ID, err))
		response := ResponseFollowupText{fmt.Sprintf("❌ Failed to add member: %s", err)}
		response.Send(discord, interaction.Interaction)
		return
	}

	response := ResponseFollowupText{fmt.Sprintf("✅ Successfully added %s with UID `%s`.", user.Mention(), uid)}
	response.Send(discord, interaction.Interaction)
}

func (bot *Bot) listMembers(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	bot.deferReply(discord, interaction)

	members, err := bot.api.GetMembers()
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Error fetching members: %s", err))
		response := ResponseFollowupText{fmt.Sprintf("❌ Failed to fetch members: %s", err)}
		response.Send(discord, interaction.Interaction)
		return
	}

	if len(members) == 0 {
		response := ResponseFollowupText{"No members found in the backend."}
		response.Send(discord, interaction.Interaction)
		return
	}

	response := ResponseFollowupEmbed{MembersEmbed(members)}
	response.Send(discord, interaction.Interaction)
}

func (bot *Bot) scanHistory(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	bot.deferReply(discord, interaction)

	scans, err := bot.api.GetScanHistory()
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Error fetching scan history: %s", err))
		response := ResponseFollowupText{fmt.Sprintf("❌ Failed to fetch scan history: %s", err)}
		response.Send(discord, interaction.Interaction)
		return
	}

	if len(scans) == 0 {
		response := ResponseFollowupText{"No scan history found."}
		response.Send(discord, interaction.Interaction)
		return
	}

	response := ResponseFollowupEmbed{ScanHistoryEmbed(scans)}
	response.Send(discord, interaction.Interaction)
}

func (bot *Bot) history(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	bot.deferReply(discord, interaction)

	opts := parseOptions(interaction.ApplicationCommandData())
	limit := clamp(opts.Int("limit", HISTORY_LIMIT_DEFAULT), 1, HISTORY_LIMIT_MAX)

	sessions, err := bot.api.GetHistory()
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Error fetching history: %s", err))
		response := ResponseFollowupText{fmt.Sprintf("❌ Failed to fetch history: %s", err)}
		response.Send(discord, interaction.Interaction)
		return
	}

	if len(sessions) == 0 {
		response := ResponseFollowupText{"No visit history available yet."}
		response.Send(discord, interaction.Interaction)
		return
	}

	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	response := ResponseFollowupEmbed{HistoryEmbed(sessions)}
	response.Send(discord, interaction.Interaction)
}

func (bot *Bot) leaderboard(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	// The visits fetch can outlast the initial response window,
	// so acknowledge before touching the backend
	bot.deferReply(discord, interaction)

	opts := parseOptions(interaction.ApplicationCommandData())
	days := clamp(opts.Int("days", LEADERBOARD_DAYS_DEFAULT), 1, LEADERBOARD_DAYS_MAX)
	top := clamp(opts.Int("top", LEADERBOARD_TOP_DEFAULT), 1, LEADERBOARD_TOP_MAX)

	entries, errMessage := bot.computeLeaderboard(days, top)
	if errMessage != "" {
		response := ResponseFollowupText{errMessage}
		response.Send(discord, interaction.Interaction)
		return
	}

	if len(entries) == 0 {
		response := ResponseFollowupText{"No visit data available for this period."}
		response.Send(discord, interaction.Interaction)
		return
	}

	response := ResponseFollowupEmbed{LeaderboardEmbed(entries, days)}
	response.Send(discord, interaction.Interaction)
}

// Fetch the raw visits for the lookback window and aggregate them.
// A failed fetch comes back as a user facing error message; malformed
// individual records are dropped inside the aggregation instead
func (bot *Bot) computeLeaderboard(days int, top int) (entries []leaderboard.Entry, errMessage string) {

	defer func() {
		if r := recover(); r != nil {
			log.Error().Msg(fmt.Sprintf("Error processing visit data: %v", r))
			entries = nil
			errMessage = fmt.Sprintf("Error processing data: %v", r)
		}
	}()

	to := time.Now()
	from := to.AddDate(0, 0, -days)
	visits, err := bot.api.GetVisits(from, to, officeapi.MAX_VISITS_LIMIT)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Error fetching visits: %s", err))
		return nil, fmt.Sprintf("Failed to fetch data: %s", err)
	}

	return leaderboard.Compute(visits, top), ""
}

func (bot *Bot) signoutAll(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	bot.deferReply(discord, interaction)

	if err := bot.api.SignOutAll(); err != nil {
		log.Error().Msg(fmt.Sprintf("Error signing out all members: %s", err))
		response := ResponseFollowupText{fmt.Sprintf("❌ Failed to sign out all members: %s", err)}
		response.Send(discord, interaction.Interaction)
		return
	}

	response := ResponseFollowupText{"✅ All members have been signed out from the office."}
	response.Send(discord, interaction.Interaction)
	bot.globalRefresh(discord, true)
}

func (bot *Bot) signin(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	bot.deferReply(discord, interaction)

	user := parseOptions(interaction.ApplicationCommandData()).User(discord, "member")
	if user == nil {
		response := ResponseFollowupText{"❌ No member provided."}
		response.Send(discord, interaction.Interaction)
		return
	}

	if _, err := bot.api.SignInDiscord(officeapi.DiscordId(user.ID)); err != nil {
		log.Error().Msg(fmt.Sprintf("Error signing in member %s: %s", user.ID, err))
		response := ResponseFollowupText{fmt.Sprintf("❌ Failed to sign in member: %s", err)}
		response.Send(discord, interaction.Interaction)
		return
	}

	response := ResponseFollowupText{fmt.Sprintf("✅ %s has been signed in to the office.", user.Mention())}
	response.Send(discord, interaction.Interaction)
	bot.globalRefresh(discord, true)
}

func (bot *Bot) signout(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	bot.deferReply(discord, interaction)

	user := parseOptions(interaction.ApplicationCommandData()).User(discord, "member")
	if user == nil {
		response := ResponseFollowupText{"❌ No member provided."}
		response.Send(discord, interaction.Interaction)
		return
	}

	if _, err := bot.api.SignOutDiscord(officeapi.DiscordId(user.ID)); err != nil {
		log.Error().Msg(fmt.Sprintf("Error signing out member %s: %s", user.ID, err))
		response := ResponseFollowupText{fmt.Sprintf("❌ Failed to sign out member: %s", err)}
		response.Send(discord, interaction.Interaction)
		return
	}

	response := ResponseFollowupText{fmt.Sprintf("✅ %s has been signed out from the office.", user.Mention())}
	response.Send(discord, interaction.Interaction)
	bot.globalRefresh(discord, true)
}
