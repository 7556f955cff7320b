package discordapi

import (
	"github.com/bwmarrin/discordgo"
)

// Client wraps a Discord session with the REST operations this bot uses.
// Callers should depend on the subset of methods they need.
type Client struct {
	Session *discordgo.Session
}
