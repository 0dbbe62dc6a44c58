package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// A Response knows how to deliver itself for a given interaction
type Response interface {
	Send(discord *discordgo.Session, interaction *discordgo.Interaction)
}

// Plain text reply, visible only to the invoking user
type ResponseText struct {
	content string
}

// Public reply carrying an embed plus message components.
// Used for the dashboard, which everyone should see
type ResponsePublicEmbed struct {
	embed      *discordgo.MessageEmbed
	components []discordgo.MessageComponent
}

// Text sent as a followup after the interaction has been deferred
type ResponseFollowupText struct {
	content string
}

// Embed sent as a followup after the interaction has been deferred
type ResponseFollowupEmbed struct {
	embed *discordgo.MessageEmbed
}

func (response ResponseText) Send(discord *discordgo.Session, interaction *discordgo.Interaction) {
	err := discord.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: response.content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not respond to interaction: %s", err))
	}
}

func (response ResponsePublicEmbed) Send(discord *discordgo.Session, interaction *discordgo.Interaction) {
	err := discord.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{response.embed},
			Components: response.components,
		},
	})
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not respond to interaction: %s", err))
	}
}

func (response ResponseFollowupText) Send(discord *discordgo.Session, interaction *discordgo.Interaction) {
	_, err := discord.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
		Content: response.content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not send followup message: %s", err))
	}
}

func (response ResponseFollowupEmbed) Send(discord *discordgo.Session, interaction *discordgo.Interaction) {
	_, err := discord.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{response.embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not send followup message: %s", err))
	}
}
