package models

// ReactionDirection string
type ReactionDirection string

const (
	// ReactionAdd direction
	ReactionAdd ReactionDirection = "ADD"
	// ReactionRemove direction
	ReactionRemove ReactionDirection = "REMOVE"
)

// ReactionEvent is a normalized reaction add/remove notification
type ReactionEvent struct {
	GuildID    string
	ChannelID  string
	MessageID  string
	Emoji      string
	UserID     string
	UserName   string
	ActorIsBot bool
	Direction  ReactionDirection
}
