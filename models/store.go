package models

// RoleBinding is one emoji choice attached to one message for one role.
// Bindings are immutable once appended.
type RoleBinding struct {
	Emoji  string `json:"emoji"`
	RoleID string `json:"role_id"`
}

// Store is the durable reaction role state. Role emoji and message bindings
// live in separate tables so role and message identifiers can never collide.
type Store struct {
	RoleEmoji       map[string]string        `json:"role_emoji"`
	MessageBindings map[string][]RoleBinding `json:"message_bindings"`
	MessageChannels map[string]string        `json:"message_channels"`
}

// NewStore func
func NewStore() *Store {
	return &Store{
		RoleEmoji:       make(map[string]string),
		MessageBindings: make(map[string][]RoleBinding),
		MessageChannels: make(map[string]string),
	}
}

// EmojiForRole returns the emoji configured for a role
func (st *Store) EmojiForRole(roleID string) (string, bool) {
	emoji, ok := st.RoleEmoji[roleID]
	return emoji, ok
}

// SetRoleEmoji stores the emoji choice for a role
func (st *Store) SetRoleEmoji(roleID string, emoji string) {
	st.RoleEmoji[roleID] = emoji
}

// AppendBinding appends a binding to a message. Bindings only ever grow.
func (st *Store) AppendBinding(messageID string, channelID string, binding RoleBinding) {
	st.MessageBindings[messageID] = append(st.MessageBindings[messageID], binding)
	st.MessageChannels[messageID] = channelID
}

// FindBinding returns the earliest-inserted binding on a message matching
// the emoji
func (st *Store) FindBinding(messageID string, emoji string) (RoleBinding, bool) {
	for _, binding := range st.MessageBindings[messageID] {
		if binding.Emoji == emoji {
			return binding, true
		}
	}

	return RoleBinding{}, false
}
