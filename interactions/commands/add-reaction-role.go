package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/BIC_Dev/reaction-role-manager/configs"
	"gitlab.com/BIC_Dev/reaction-role-manager/interactions/reactions"
	"gitlab.com/BIC_Dev/reaction-role-manager/models"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"go.uber.org/zap"
)

// AddReactionRoleCommand struct
type AddReactionRoleCommand struct {
	Params AddReactionRoleCommandParams
}

// AddReactionRoleCommandParams struct
type AddReactionRoleCommandParams struct {
	RoleID string
}

// AddReactionRole begins the configuration workflow for a role: it posts a
// prompt message and registers a pending setup keyed by that message's own
// ID, to be consumed by the first qualifying reaction.
func (c *Commands) AddReactionRole(ctx context.Context, ic *discordgo.InteractionCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	parsedCommand, pErr := parseAddReactionRoleCommand(command, ic)
	if pErr != nil {
		c.ErrorOutput(ctx, ic, *pErr)
		return
	}

	ctx = logging.AddValues(ctx, zap.String("role_id", parsedCommand.Params.RoleID))

	if existing, ok := c.Storage.EmojiForRole(ctx, parsedCommand.Params.RoleID); ok && !c.Config.Bot.AllowEmojiOverwrite {
		c.ErrorOutput(ctx, ic, Error{
			Message: fmt.Sprintf("Role is already bound to %s and emoji overwrite is disabled", discordapi.FormatEmoji(existing)),
			Err:     errors.New("emoji overwrite disabled"),
		})
		return
	}

	user := invokingUser(ic)

	promptParams := discordapi.EmbeddableParams{
		Title:        "Configure Reaction Role",
		Description:  fmt.Sprintf("React to this message with the emoji you want for <@&%s>. The first reaction is final.", parsedCommand.Params.RoleID),
		Color:        c.Config.Bot.OkColor,
		TitleURL:     c.Config.Bot.DocumentationURL,
		Footer:       fmt.Sprintf("Executed by %s", user.Name),
		ThumbnailURL: c.Config.Bot.WorkingThumbnail,
	}

	embeds := discordapi.CreateEmbeds(promptParams, nil)
	promptMessage, smErr := c.Discord.SendMessage(ic.ChannelID, nil, &embeds[0])
	if smErr != nil {
		c.ErrorOutput(ctx, ic, Error{
			Message: smErr.Message,
			Err:     smErr.Err,
		})
		return
	}

	setupReaction := models.SetupReaction{
		RoleID: parsedCommand.Params.RoleID,
		User:   user,
	}

	cacheKey := setupReaction.CacheKey(c.Config.CacheSettings.PendingSetup.Base, promptMessage.ID)
	if scErr := c.Cache.SetStruct(ctx, cacheKey, &setupReaction, c.Config.CacheSettings.PendingSetup.TTL); scErr != nil {
		c.ErrorOutput(ctx, ic, Error{
			Message: scErr.Message,
			Err:     scErr.Err,
		})
		return
	}

	ttl, ttlErr := strconv.ParseInt(c.Config.CacheSettings.PendingSetup.TTL, 10, 64)
	if ttlErr != nil {
		c.ErrorOutput(ctx, ic, Error{
			Message: "Failed to convert pending setup TTL to int64",
			Err:     ttlErr,
		})
		return
	}

	c.PendingSetups.Add(promptMessage.ID, reactions.PendingSetup{
		Expires: time.Now().Unix() + ttl,
		UserID:  user.ID,
	})

	c.Respond(ctx, ic, discordapi.EmbeddableParams{
		Title:        "Awaiting Emoji",
		Description:  fmt.Sprintf("A prompt has been posted below. React to it to pick the emoji for <@&%s>.", parsedCommand.Params.RoleID),
		TitleURL:     c.Config.Bot.DocumentationURL,
		Footer:       fmt.Sprintf("Executed by %s", user.Name),
		ThumbnailURL: c.Config.Bot.WorkingThumbnail,
	}, nil, nil)
}

// parseAddReactionRoleCommand func
func parseAddReactionRoleCommand(command configs.Command, ic *discordgo.InteractionCreate) (*AddReactionRoleCommand, *Error) {
	data := ic.ApplicationCommandData()

	roleID, ok := optionString(data.Options, "role")
	if !ok {
		return nil, &Error{
			Message: "Command is missing the required role argument",
			Err:     errors.New("missing role"),
		}
	}

	return &AddReactionRoleCommand{
		Params: AddReactionRoleCommandParams{
			RoleID: roleID,
		},
	}, nil
}
