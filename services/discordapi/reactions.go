package discordapi

import (
	"fmt"
	"strings"
)

// AddReaction func
func (c *Client) AddReaction(channelID string, messageID string, emoji string) *Error {
	err := c.Session.MessageReactionAdd(channelID, messageID, emoji)

	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}

// FormatEmoji renders a stored emoji for message display. Custom emoji are
// stored as name:id and need the <:name:id> wrapper; unicode emoji render
// as-is.
func FormatEmoji(emoji string) string {
	if strings.Contains(emoji, ":") {
		return fmt.Sprintf("<:%s>", emoji)
	}

	return emoji
}
