package controllers

import (
	"net/http"
	"sort"

	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"gitlab.com/BIC_Dev/reaction-role-manager/viewmodels"
	"go.uber.org/zap"
)

// GetBindings responds with every message binding in the live store
func (c *Controller) GetBindings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	bindings := c.Storage.Bindings(ctx)

	messageIDs := make([]string, 0, len(bindings))
	for messageID := range bindings {
		messageIDs = append(messageIDs, messageID)
	}
	sort.Strings(messageIDs)

	response := viewmodels.GetBindingsResponse{
		Messages: []viewmodels.MessageBindings{},
	}

	for _, messageID := range messageIDs {
		channelID, _ := c.Storage.ChannelForMessage(ctx, messageID)
		response.Messages = append(response.Messages, viewmodels.MessageBindings{
			MessageID: messageID,
			ChannelID: channelID,
			Bindings:  bindings[messageID],
		})
	}

	Response(ctx, w, response, http.StatusOK)
}

// GetRoles responds with the role to emoji lookup table
func (c *Controller) GetRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	response := viewmodels.GetRolesResponse{
		RoleEmoji: c.Storage.RoleEmoji(ctx),
	}

	Response(ctx, w, response, http.StatusOK)
}
