package interactions

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"gitlab.com/BIC_Dev/reaction-role-manager/configs"
	"gitlab.com/BIC_Dev/reaction-role-manager/interactions/commands"
	"gitlab.com/BIC_Dev/reaction-role-manager/interactions/reactions"
	"gitlab.com/BIC_Dev/reaction-role-manager/models"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/cache"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/storage"
	"go.uber.org/zap"
)

// Interactions struct
type Interactions struct {
	Session       *discordgo.Session
	Config        *configs.Config
	Cache         *cache.Cache
	Storage       *storage.Storage
	Discord       *discordapi.Client
	PendingSetups *reactions.PendingSetups
}

// SetupHandlers func
func (i *Interactions) SetupHandlers() {
	i.PendingSetups = reactions.NewPendingSetups()

	go reactions.ExpirePendingSetups(i.PendingSetups)

	i.Session.AddHandler(i.InteractionCreate)
	i.Session.AddHandler(i.ReactionAdd)
	i.Session.AddHandler(i.ReactionRemove)
}

// InteractionCreate func
func (i *Interactions) InteractionCreate(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Type != discordgo.InteractionApplicationCommand {
		return
	}

	requestID := uuid.New()

	ctx := context.Background()
	ctx = logging.AddValues(
		ctx,
		zap.String("request_id", requestID.String()),
		zap.String("scope", logging.GetFuncName()),
		zap.String("guild_id", ic.GuildID),
		zap.String("channel_id", ic.ChannelID),
	)

	if ic.Member != nil && ic.Member.User != nil {
		ctx = logging.AddValues(ctx,
			zap.String("user_id", ic.Member.User.ID),
			zap.String("user_name", ic.Member.User.Username),
		)
	}

	cmds := commands.Commands{
		Discord:       i.Discord,
		Config:        i.Config,
		Cache:         i.Cache,
		Storage:       i.Storage,
		PendingSetups: i.PendingSetups,
	}
	cmds.Factory(ctx, ic)
}

// ReactionAdd func
func (i *Interactions) ReactionAdd(s *discordgo.Session, mra *discordgo.MessageReactionAdd) {
	requestID := uuid.New()

	ctx := context.Background()
	ctx = logging.AddValues(
		ctx,
		zap.String("request_id", requestID.String()),
		zap.String("scope", logging.GetFuncName()),
		zap.String("guild_id", mra.GuildID),
		zap.String("message_id", mra.MessageID),
		zap.String("user_id", mra.UserID),
	)

	// Ignore reaction if user is self
	if mra.UserID == s.State.User.ID {
		return
	}

	event := models.ReactionEvent{
		GuildID:    mra.GuildID,
		ChannelID:  mra.ChannelID,
		MessageID:  mra.MessageID,
		Emoji:      mra.Emoji.APIName(),
		UserID:     mra.UserID,
		ActorIsBot: mra.Member != nil && mra.Member.User != nil && mra.Member.User.Bot,
		Direction:  models.ReactionAdd,
	}

	if mra.Member != nil && mra.Member.User != nil {
		event.UserName = mra.Member.User.Username
	}

	rx := reactions.Reactions{
		Discord:       i.Discord,
		Config:        i.Config,
		Cache:         i.Cache,
		Storage:       i.Storage,
		PendingSetups: i.PendingSetups,
	}
	rx.Dispatch(ctx, event)
}

// ReactionRemove func
func (i *Interactions) ReactionRemove(s *discordgo.Session, mrr *discordgo.MessageReactionRemove) {
	requestID := uuid.New()

	ctx := context.Background()
	ctx = logging.AddValues(
		ctx,
		zap.String("request_id", requestID.String()),
		zap.String("scope", logging.GetFuncName()),
		zap.String("guild_id", mrr.GuildID),
		zap.String("message_id", mrr.MessageID),
		zap.String("user_id", mrr.UserID),
	)

	// Ignore reaction if user is self
	if mrr.UserID == s.State.User.ID {
		return
	}

	event := models.ReactionEvent{
		GuildID:   mrr.GuildID,
		ChannelID: mrr.ChannelID,
		MessageID: mrr.MessageID,
		Emoji:     mrr.Emoji.APIName(),
		UserID:    mrr.UserID,
		Direction: models.ReactionRemove,
	}

	rx := reactions.Reactions{
		Discord:       i.Discord,
		Config:        i.Config,
		Cache:         i.Cache,
		Storage:       i.Storage,
		PendingSetups: i.PendingSetups,
	}
	rx.Dispatch(ctx, event)
}
