package bot

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/common"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/config"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/officeapi"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// GuildMode decides which buttons a guild's dashboard carries
type GuildMode int

const (
	MODE_VIEW_ONLY GuildMode = iota
	MODE_CONTROL
)

type Bot struct {
	token               string
	api                 *officeapi.OfficeApi
	guildModes          map[string]GuildMode
	execGuildId         string
	trackerChannelName  string
	cooldownMu          sync.Mutex
	refreshCooldown     common.Stopwatch
	autoRefreshExecutor common.TimedExecutor
	mainCycle           time.Duration
	discord             *discordgo.Session
}

func NewBot(cfg config.Config, api *officeapi.OfficeApi) *Bot {

	bot := &Bot{}

	bot.token = cfg.DiscordToken
	bot.api = api
	// The exec guild gets the control dashboard, the community guild
	// the view only one
	bot.guildModes = map[string]GuildMode{
		cfg.ExecGuildId:      MODE_CONTROL,
		cfg.CommunityGuildId: MODE_VIEW_ONLY,
	}
	bot.execGuildId = cfg.ExecGuildId
	bot.trackerChannelName = cfg.TrackerChannelName
	// The refresh cooldown is checked by interaction handlers and the
	// main loop alike, hence the mutex. It is deliberately lost on
	// restart
	bot.refreshCooldown = common.NewStopwatch(cfg.RefreshCooldown)
	bot.autoRefreshExecutor = common.NewTimedExecutor(cfg.AutoRefreshPeriod, bot.autoRefresh)
	// Main loop cycle
	bot.mainCycle = cfg.MainCycle

	return bot
}

func (bot *Bot) Run() error {

	// Create session
	discord, err := discordgo.New("Bot " + bot.token)
	if err != nil {
		return fmt.Errorf("could not create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	// Event handlers
	discord.AddHandler(bot.ready)
	discord.AddHandler(bot.receive)

	// Open session
	if err := discord.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer discord.Close()
	bot.discord = discord

	// Keep the bot running until there is an os interruption,
	// checking the timed tasks every cycle
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(bot.mainCycle)
	defer ticker.Stop()
	log.Info().Msg("Bot is running. Press Ctrl+C to exit")
	for {
		select {
		case <-ticker.C:
			bot.autoRefreshExecutor.Execute()
		case <-interrupt:
			log.Info().Msg("Shutting down")
			return nil
		}
	}
}

func (bot *Bot) ready(discord *discordgo.Session, ready *discordgo.Ready) {

	log.Info().Msg(fmt.Sprintf("Logged in as %s", ready.User.String()))

	// Sync global commands
	appid := discord.State.User.ID
	if _, err := discord.ApplicationCommandBulkOverwrite(appid, "", globalCommands()); err != nil {
		log.Error().Msg(fmt.Sprintf("Failed to sync global commands: %s", err))
	} else {
		log.Info().Msg("Global commands synced")
	}

	// Sync exec guild commands
	if _, err := discord.ApplicationCommandBulkOverwrite(appid, bot.execGuildId, execCommands()); err != nil {
		log.Error().Msg(fmt.Sprintf("Failed to sync exec guild commands: %s", err))
	} else {
		log.Info().Msg(fmt.Sprintf("Exec guild (%s) commands synced", bot.execGuildId))
	}
}

func (bot *Bot) receive(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		data := interaction.ApplicationCommandData()
		log.Debug().Msg(fmt.Sprintf("Received command: %s", data.Name))
		switch data.Name {
		case "setup":
			bot.setup(discord, interaction)
		case "add_member":
			bot.addMember(discord, interaction)
		case "list_members":
			bot.listMembers(discord, interaction)
		case "scan_history":
			bot.scanHistory(discord, interaction)
		case "history":
			bot.history(discord, interaction)
		case "leaderboard":
			bot.leaderboard(discord, interaction)
		case "signout_all":
			bot.signoutAll(discord, interaction)
		case "signin":
			bot.signin(discord, interaction)
		case "signout":
			bot.signout(discord, interaction)
		default:
			log.Error().Msg(fmt.Sprintf("Command %s is not one of the possible ones", data.Name))
		}
	case discordgo.InteractionMessageComponent:
		customid := interaction.MessageComponentData().CustomID
		log.Debug().Msg(fmt.Sprintf("Received component interaction: %s", customid))
		switch customid {
		case RO_REFRESH_BUTTON, CTRL_REFRESH_BUTTON:
			bot.doRefresh(discord, interaction)
		case CTRL_LEAVE_BUTTON:
			bot.leave(discord, interaction)
		default:
			log.Error().Msg(fmt.Sprintf("Component id %s is not one of the possible ones", customid))
		}
	}
}

func (bot *Bot) getChannelId(discord *discordgo.Session, guildid string, channelName string) (string, error) {

	channels, err := discord.GuildChannels(guildid)
	if err != nil {
		return "", fmt.Errorf("could not extract list of channels of guild id %s: %w", guildid, err)
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == channelName {
			return ch.ID, nil
		}
	}
	return "", fmt.Errorf("no channel id found for channel name %s", channelName)
}

// Scheduled dashboard refresh. Skipped while the manual refresh
// cooldown is still running
func (bot *Bot) autoRefresh() {

	if bot.discord == nil {
		return
	}
	bot.cooldownMu.Lock()
	stopped, _ := bot.refreshCooldown.Stopped()
	bot.cooldownMu.Unlock()
	if !stopped {
		return
	}
	log.Info().Msg("Running scheduled auto-refresh")
	bot.globalRefresh(bot.discord, false)
}
