package viewmodels

import "gitlab.com/BIC_Dev/reaction-role-manager/models"

// MessageBindings struct
type MessageBindings struct {
	MessageID string               `json:"message_id"`
	ChannelID string               `json:"channel_id,omitempty"`
	Bindings  []models.RoleBinding `json:"bindings"`
}

// GetBindingsResponse response struct for the binding table
type GetBindingsResponse struct {
	Messages []MessageBindings `json:"messages"`
}

// GetRolesResponse response struct for the role emoji table
type GetRolesResponse struct {
	RoleEmoji map[string]string `json:"role_emoji"`
}
