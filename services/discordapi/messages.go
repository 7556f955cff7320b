package discordapi

import (
	"github.com/bwmarrin/discordgo"
)

// SendMessage func
func (c *Client) SendMessage(channelID string, content *string, embed *discordgo.MessageEmbed) (*discordgo.Message, *Error) {
	messageSend := &discordgo.MessageSend{}
	if embed != nil {
		messageSend.Embeds = []*discordgo.MessageEmbed{embed}
	}
	if content != nil {
		messageSend.Content = *content
	}

	message, err := c.Session.ChannelMessageSendComplex(channelID, messageSend)

	if err != nil {
		return nil, ParseDiscordError(err)
	}

	return message, nil
}
