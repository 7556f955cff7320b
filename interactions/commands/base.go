package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/BIC_Dev/reaction-role-manager/configs"
	"gitlab.com/BIC_Dev/reaction-role-manager/interactions/reactions"
	"gitlab.com/BIC_Dev/reaction-role-manager/models"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/cache"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/storage"
	"go.uber.org/zap"
)

// DiscordAPI is the subset of Discord operations commands need
type DiscordAPI interface {
	SendMessage(channelID string, content *string, embed *discordgo.MessageEmbed) (*discordgo.Message, *discordapi.Error)
	AddReaction(channelID string, messageID string, emoji string) *discordapi.Error
	RespondToInteraction(interaction *discordgo.Interaction, response *discordgo.InteractionResponse) *discordapi.Error
}

// PendingCache stores cached setup payloads
type PendingCache interface {
	SetStruct(ctx context.Context, key string, val interface{}, ttl string) *cache.CacheError
}

// Commands struct
type Commands struct {
	Discord       DiscordAPI
	Config        *configs.Config
	Cache         PendingCache
	Storage       *storage.Storage
	PendingSetups *reactions.PendingSetups
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

// Factory func
func (c *Commands) Factory(ctx context.Context, ic *discordgo.InteractionCreate) {
	data := ic.ApplicationCommandData()

	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("command", data.Name),
	)

	command, gcErr := getCommandConfig(c.Config.Commands, data.Name)
	if gcErr != nil {
		c.ErrorOutput(ctx, ic, *gcErr)
		return
	}

	if !command.Enabled {
		c.ErrorOutput(ctx, ic, Error{
			Message: "This command has not been enabled for use",
			Err:     errors.New("command not enabled"),
		})
		return
	}

	if ic.GuildID == "" {
		c.ErrorOutput(ctx, ic, Error{
			Message: "This command cannot be used through DM",
			Err:     errors.New("must be used in discord server"),
		})
		return
	}

	logger := logging.Logger(ctx)
	logger.Info("command_log")

	switch command.Name {
	case "Add Reaction Role":
		c.AddReactionRole(ctx, ic, command)
	case "Set Reaction Role":
		c.SetReactionRole(ctx, ic, command)
	default:
		c.ErrorOutput(ctx, ic, Error{
			Message: "Command is not handled by this bot",
			Err:     errors.New("unhandled command"),
		})
	}
}

// getCommandConfig func
func getCommandConfig(commands []configs.Command, command string) (configs.Command, *Error) {
	for _, val := range commands {
		if val.Long == command {
			return val, nil
		}
	}

	return configs.Command{}, &Error{
		Message: fmt.Sprintf("No command found with name: %s", command),
		Err:     errors.New("invalid command"),
	}
}

// optionString extracts a string-valued option by name
func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, bool) {
	for _, option := range options {
		if option == nil || option.Name != name {
			continue
		}

		if val, ok := option.Value.(string); ok && val != "" {
			return val, true
		}
	}

	return "", false
}

// invokingUser func
func invokingUser(ic *discordgo.InteractionCreate) *models.User {
	if ic.Member != nil && ic.Member.User != nil {
		return &models.User{
			ID:   ic.Member.User.ID,
			Name: ic.Member.User.Username,
		}
	}

	if ic.User != nil {
		return &models.User{
			ID:   ic.User.ID,
			Name: ic.User.Username,
		}
	}

	return &models.User{}
}

// ErrorOutput replies to the interaction with an ephemeral error embed
func (c *Commands) ErrorOutput(ctx context.Context, ic *discordgo.InteractionCreate, err Error) *Error {
	newCtx := logging.AddValues(ctx, zap.NamedError("error", err.Err), zap.String("error_message", err.Message))
	logger := logging.Logger(newCtx)
	logger.Error("error_log")

	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	params := discordapi.EmbeddableParams{
		Title:        "Error",
		Description:  err.Message,
		Color:        c.Config.Bot.ErrorColor,
		TitleURL:     c.Config.Bot.DocumentationURL,
		Footer:       "Error",
		ThumbnailURL: c.Config.Bot.ErrorThumbnail,
	}

	var embeddableFields []discordapi.EmbeddableField
	embeddableFields = append(embeddableFields, &err)

	embeds := discordapi.CreateEmbeds(params, embeddableFields)

	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: embedPointers(embeds),
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}

	if rErr := c.Discord.RespondToInteraction(ic.Interaction, response); rErr != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", rErr.Err), zap.String("error_message", rErr.Message), zap.Int("status_code", rErr.Code))
		logger := logging.Logger(ctx)
		logger.Error("error_log")

		return &Error{
			Message: rErr.Message,
			Err:     rErr.Err,
		}
	}

	return nil
}

// Respond replies to the interaction with a confirmation embed
func (c *Commands) Respond(ctx context.Context, ic *discordgo.InteractionCreate, params discordapi.EmbeddableParams, embeddableFields []discordapi.EmbeddableField, embeddableErrors []discordapi.EmbeddableField) *Error {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if len(embeddableErrors) > 0 {
		params.Color = c.Config.Bot.WarnColor
		params.ThumbnailURL = c.Config.Bot.WarnThumbnail
	} else if params.Color == 0 {
		params.Color = c.Config.Bot.OkColor
	}

	combinedFields := append(embeddableFields, embeddableErrors...)
	embeds := discordapi.CreateEmbeds(params, combinedFields)

	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: embedPointers(embeds),
		},
	}

	if rErr := c.Discord.RespondToInteraction(ic.Interaction, response); rErr != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", rErr.Err), zap.String("error_message", rErr.Message), zap.Int("status_code", rErr.Code))
		logger := logging.Logger(ctx)
		logger.Error("error_log")

		return &Error{
			Message: rErr.Message,
			Err:     rErr.Err,
		}
	}

	return nil
}

// embedPointers func
func embedPointers(embeds []discordgo.MessageEmbed) []*discordgo.MessageEmbed {
	pointers := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for i := range embeds {
		pointers = append(pointers, &embeds[i])
	}

	return pointers
}

// ConvertToEmbedField for Error struct
func (e *Error) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	return &discordgo.MessageEmbedField{
		Name:   e.Message,
		Value:  e.Error(),
		Inline: false,
	}, nil
}
