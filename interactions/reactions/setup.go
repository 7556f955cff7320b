package reactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/BIC_Dev/reaction-role-manager/models"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"go.uber.org/zap"
)

// SetupBoundOutput struct
type SetupBoundOutput struct {
	Emoji  string
	RoleID string
}

// CompleteSetup finishes the emoji phase of the configuration workflow. The
// reacting emoji is final; the pending gate was already consumed by the
// dispatcher, so later reactions on the same prompt never reach this point.
func (r *Reactions) CompleteSetup(ctx context.Context, event models.ReactionEvent, pending PendingSetup) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	var setupReaction *models.SetupReaction
	cacheKey := setupReaction.CacheKey(r.Config.CacheSettings.PendingSetup.Base, event.MessageID)
	cErr := r.Cache.GetStruct(ctx, cacheKey, &setupReaction)
	if cErr != nil {
		r.ErrorOutput(ctx, "Failed to configure reaction role", event.ChannelID, Error{
			Message: cErr.Message,
			Err:     cErr,
		})
		return
	} else if setupReaction == nil {
		r.ErrorOutput(ctx, "Failed to configure reaction role", event.ChannelID, Error{
			Message: "Setup prompt has expired",
			Err:     errors.New("please run the add-reaction-role command again"),
		})
		return
	}

	ctx = logging.AddValues(ctx, zap.String("role_id", setupReaction.RoleID))

	if sErr := r.Storage.SetRoleEmoji(ctx, setupReaction.RoleID, event.Emoji); sErr != nil {
		// In-memory state stays authoritative for the session; the failed
		// flush is operator-visible only.
		newCtx := logging.AddValues(ctx, zap.NamedError("error", sErr.Err), zap.String("error_message", sErr.Message))
		logger := logging.Logger(newCtx)
		logger.Error("error_log")
	}

	if exErr := r.Cache.Expire(ctx, cacheKey); exErr != nil {
		newCtx := logging.AddValues(ctx, zap.NamedError("error", exErr.Err), zap.String("error_message", exErr.Message))
		logger := logging.Logger(newCtx)
		logger.Error("error_log")
	}

	executedBy := ""
	if setupReaction.User != nil {
		executedBy = setupReaction.User.Name
	}

	params := discordapi.EmbeddableParams{
		Title:        "Reaction Role Configured",
		Description:  fmt.Sprintf("<@&%s> is now bound to %s. Use the set-reaction-role command to attach it to a message.", setupReaction.RoleID, discordapi.FormatEmoji(event.Emoji)),
		TitleURL:     r.Config.Bot.DocumentationURL,
		Footer:       fmt.Sprintf("Executed by %s", executedBy),
		ThumbnailURL: r.Config.Bot.OkThumbnail,
	}

	var embeddableFields []discordapi.EmbeddableField
	embeddableFields = append(embeddableFields, &SetupBoundOutput{
		Emoji:  event.Emoji,
		RoleID: setupReaction.RoleID,
	})

	r.Output(ctx, event.ChannelID, params, embeddableFields, nil)
}

// ConvertToEmbedField for SetupBoundOutput struct
func (out *SetupBoundOutput) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	return &discordgo.MessageEmbedField{
		Name:   "Emoji Choice",
		Value:  fmt.Sprintf("%s grants <@&%s>", discordapi.FormatEmoji(out.Emoji), out.RoleID),
		Inline: false,
	}, nil
}
