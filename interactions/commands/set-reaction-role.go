package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/BIC_Dev/reaction-role-manager/configs"
	"gitlab.com/BIC_Dev/reaction-role-manager/models"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"go.uber.org/zap"
)

// SetReactionRoleCommand struct
type SetReactionRoleCommand struct {
	Params SetReactionRoleCommandParams
}

// SetReactionRoleCommandParams struct
type SetReactionRoleCommandParams struct {
	MessageID string
	RoleID    string
}

// BindingOutput struct
type BindingOutput struct {
	MessageID string
	Emoji     string
	RoleID    string
}

// SetReactionRole attaches a configured role to a message. The persisted
// binding is the durable source of truth; the reaction added to the target
// message is a decorative confirmation and is never rolled back on failure.
func (c *Commands) SetReactionRole(ctx context.Context, ic *discordgo.InteractionCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	parsedCommand, pErr := parseSetReactionRoleCommand(command, ic)
	if pErr != nil {
		c.ErrorOutput(ctx, ic, *pErr)
		return
	}

	ctx = logging.AddValues(ctx,
		zap.String("role_id", parsedCommand.Params.RoleID),
		zap.String("target_message_id", parsedCommand.Params.MessageID),
	)

	emoji, ok := c.Storage.EmojiForRole(ctx, parsedCommand.Params.RoleID)
	if !ok {
		c.ErrorOutput(ctx, ic, Error{
			Message: fmt.Sprintf("No completed emoji setup found for <@&%s>. Run the add-reaction-role command first.", parsedCommand.Params.RoleID),
			Err:     errors.New("no setup found"),
		})
		return
	}

	binding := models.RoleBinding{
		Emoji:  emoji,
		RoleID: parsedCommand.Params.RoleID,
	}

	if aErr := c.Storage.AppendBinding(ctx, parsedCommand.Params.MessageID, ic.ChannelID, binding); aErr != nil {
		// The binding is live in memory for this session; only the flush
		// failed.
		newCtx := logging.AddValues(ctx, zap.NamedError("error", aErr.Err), zap.String("error_message", aErr.Message))
		logger := logging.Logger(newCtx)
		logger.Error("error_log")
	}

	user := invokingUser(ic)

	var embeddableFields []discordapi.EmbeddableField
	embeddableFields = append(embeddableFields, &BindingOutput{
		MessageID: parsedCommand.Params.MessageID,
		Emoji:     emoji,
		RoleID:    parsedCommand.Params.RoleID,
	})

	c.Respond(ctx, ic, discordapi.EmbeddableParams{
		Title:        "Reaction Role Attached",
		Description:  fmt.Sprintf("Reacting with %s on the target message now grants <@&%s>.", discordapi.FormatEmoji(emoji), parsedCommand.Params.RoleID),
		TitleURL:     c.Config.Bot.DocumentationURL,
		Footer:       fmt.Sprintf("Executed by %s", user.Name),
		ThumbnailURL: c.Config.Bot.OkThumbnail,
	}, embeddableFields, nil)

	// Decorative react on the target message, best effort
	go func() {
		if arErr := c.Discord.AddReaction(ic.ChannelID, parsedCommand.Params.MessageID, emoji); arErr != nil {
			newCtx := logging.AddValues(ctx, zap.NamedError("error", arErr.Err), zap.String("error_message", arErr.Message), zap.Int("status_code", arErr.Code))
			logger := logging.Logger(newCtx)
			logger.Error("error_log")
		}
	}()
}

// parseSetReactionRoleCommand func
func parseSetReactionRoleCommand(command configs.Command, ic *discordgo.InteractionCreate) (*SetReactionRoleCommand, *Error) {
	data := ic.ApplicationCommandData()

	messageID, ok := optionString(data.Options, "message_id")
	if !ok {
		return nil, &Error{
			Message: "Command is missing the required message_id argument",
			Err:     errors.New("missing message_id"),
		}
	}

	roleID, ok := optionString(data.Options, "role")
	if !ok {
		return nil, &Error{
			Message: "Command is missing the required role argument",
			Err:     errors.New("missing role"),
		}
	}

	return &SetReactionRoleCommand{
		Params: SetReactionRoleCommandParams{
			MessageID: messageID,
			RoleID:    roleID,
		},
	}, nil
}

// ConvertToEmbedField for BindingOutput struct
func (out *BindingOutput) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	return &discordgo.MessageEmbedField{
		Name:   "New Binding",
		Value:  fmt.Sprintf("Message `%s`: %s grants <@&%s>", out.MessageID, discordapi.FormatEmoji(out.Emoji), out.RoleID),
		Inline: false,
	}, nil
}
