package discordapi

import (
	"github.com/bwmarrin/discordgo"
)

// RespondToInteraction func
func (c *Client) RespondToInteraction(interaction *discordgo.Interaction, response *discordgo.InteractionResponse) *Error {
	err := c.Session.InteractionRespond(interaction, response)

	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}

// RegisterCommand registers an application command globally
func (c *Client) RegisterCommand(appID string, command *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, *Error) {
	created, err := c.Session.ApplicationCommandCreate(appID, "", command)

	if err != nil {
		return nil, ParseDiscordError(err)
	}

	return created, nil
}
