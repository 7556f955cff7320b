package reactions

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/BIC_Dev/reaction-role-manager/configs"
	"gitlab.com/BIC_Dev/reaction-role-manager/models"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/cache"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/storage"
	"go.uber.org/zap"
)

// DiscordAPI is the subset of Discord operations reaction handling needs
type DiscordAPI interface {
	SendMessage(channelID string, content *string, embed *discordgo.MessageEmbed) (*discordgo.Message, *discordapi.Error)
	GrantRole(guildID string, userID string, roleID string) *discordapi.Error
	RevokeRole(guildID string, userID string, roleID string) *discordapi.Error
}

// PendingCache reads and expires cached setup payloads
type PendingCache interface {
	GetStruct(ctx context.Context, key string, output interface{}) *cache.CacheError
	Expire(ctx context.Context, key string) *cache.CacheError
}

// Reactions struct
type Reactions struct {
	Discord       DiscordAPI
	Config        *configs.Config
	Cache         PendingCache
	Storage       *storage.Storage
	PendingSetups *PendingSetups
}

// Error struct
type Error struct {
	Message string `json:"message"`
	Err     error  `json:"error"`
}

// Error func
func (e *Error) Error() string {
	return e.Err.Error()
}

// Dispatch routes a reaction event either into the configuration workflow
// or into a role grant/revoke against the Discord API
func (r *Reactions) Dispatch(ctx context.Context, event models.ReactionEvent) {
	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("emoji", event.Emoji),
		zap.String("direction", string(event.Direction)),
	)

	// The bot's own confirmation reactions must never re-trigger grants
	if event.ActorIsBot {
		return
	}

	if event.Direction == models.ReactionAdd {
		if pending, ok := r.PendingSetups.Consume(event.MessageID); ok {
			r.CompleteSetup(ctx, event, pending)
			return
		}
	}

	binding, found := r.Storage.FindBinding(ctx, event.MessageID, event.Emoji)
	if !found {
		if event.Direction == models.ReactionRemove {
			newCtx := logging.AddValues(ctx, zap.String("reaction_message", "No reaction role configuration for message"))
			logger := logging.Logger(newCtx)
			logger.Info("reaction_log")
		}
		return
	}

	ctx = logging.AddValues(ctx, zap.String("role_id", binding.RoleID))

	// Fire-and-forget: one attempt, both outcomes logged, no user feedback
	switch event.Direction {
	case models.ReactionAdd:
		if grErr := r.Discord.GrantRole(event.GuildID, event.UserID, binding.RoleID); grErr != nil {
			newCtx := logging.AddValues(ctx, zap.NamedError("error", grErr.Err), zap.String("error_message", grErr.Message), zap.Int("status_code", grErr.Code))
			logger := logging.Logger(newCtx)
			logger.Error("error_log")
			return
		}

		newCtx := logging.AddValues(ctx, zap.String("reaction_message", "Granted role"))
		logger := logging.Logger(newCtx)
		logger.Info("reaction_log")
	case models.ReactionRemove:
		if rvErr := r.Discord.RevokeRole(event.GuildID, event.UserID, binding.RoleID); rvErr != nil {
			newCtx := logging.AddValues(ctx, zap.NamedError("error", rvErr.Err), zap.String("error_message", rvErr.Message), zap.Int("status_code", rvErr.Code))
			logger := logging.Logger(newCtx)
			logger.Error("error_log")
			return
		}

		newCtx := logging.AddValues(ctx, zap.String("reaction_message", "Revoked role"))
		logger := logging.Logger(newCtx)
		logger.Info("reaction_log")
	}
}

// ErrorOutput func
func (r *Reactions) ErrorOutput(ctx context.Context, content string, channelID string, err Error) ([]*discordgo.Message, *Error) {
	newCtx := logging.AddValues(ctx, zap.NamedError("error", err.Err), zap.String("error_message", err.Message))
	logger := logging.Logger(newCtx)
	logger.Error("error_log")

	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	params := discordapi.EmbeddableParams{
		Title:        "Error",
		Description:  "`" + content + "`",
		Color:        r.Config.Bot.ErrorColor,
		TitleURL:     r.Config.Bot.DocumentationURL,
		Footer:       "Error",
		ThumbnailURL: r.Config.Bot.ErrorThumbnail,
	}

	var embeddableFields []discordapi.EmbeddableField

	embeddableFields = append(embeddableFields, &err)

	embeds := discordapi.CreateEmbeds(params, embeddableFields)

	var messages []*discordgo.Message
	for _, embed := range embeds {
		embed := embed
		message, smErr := r.Discord.SendMessage(channelID, nil, &embed)
		if smErr != nil {
			ctx = logging.AddValues(ctx, zap.NamedError("error", smErr.Err), zap.String("error_message", smErr.Message), zap.Int("status_code", smErr.Code))
			logger := logging.Logger(ctx)
			logger.Error("error_log")

			return nil, &Error{
				Message: smErr.Message,
				Err:     smErr.Err,
			}
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// Output func
func (r *Reactions) Output(ctx context.Context, channelID string, params discordapi.EmbeddableParams, embeddableFields []discordapi.EmbeddableField, embeddableErrors []discordapi.EmbeddableField) ([]*discordgo.Message, *Error) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if len(embeddableErrors) > 0 {
		params.Color = r.Config.Bot.WarnColor
		params.ThumbnailURL = r.Config.Bot.WarnThumbnail
	} else if params.Color == 0 {
		params.Color = r.Config.Bot.OkColor
	}

	combinedFields := append(embeddableFields, embeddableErrors...)
	embeds := discordapi.CreateEmbeds(params, combinedFields)

	var messages []*discordgo.Message
	for _, embed := range embeds {
		embed := embed
		message, smErr := r.Discord.SendMessage(channelID, nil, &embed)
		if smErr != nil {
			ctx = logging.AddValues(ctx, zap.NamedError("error", smErr.Err), zap.String("error_message", smErr.Message), zap.Int("status_code", smErr.Code))
			logger := logging.Logger(ctx)
			logger.Error("error_log")

			return nil, &Error{
				Message: smErr.Message,
				Err:     smErr.Err,
			}
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// ConvertToEmbedField for Error struct
func (e *Error) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	return &discordgo.MessageEmbedField{
		Name:   e.Message,
		Value:  e.Error(),
		Inline: false,
	}, nil
}
