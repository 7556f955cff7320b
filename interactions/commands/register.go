package commands

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/BIC_Dev/reaction-role-manager/configs"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"go.uber.org/zap"
)

// Registrar creates application commands
type Registrar interface {
	RegisterCommand(appID string, command *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, *discordapi.Error)
}

// commandDefinitions maps the config Long name to the registration payload
func commandDefinitions() map[string]*discordgo.ApplicationCommand {
	return map[string]*discordgo.ApplicationCommand{
		"add-reaction-role": {
			Name:        "add-reaction-role",
			Description: "Start configuring a reaction role by picking its emoji",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to configure",
					Required:    true,
				},
			},
		},
		"set-reaction-role": {
			Name:        "set-reaction-role",
			Description: "Attach a configured reaction role to a message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message_id",
					Description: "Message the reaction role is attached to",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to attach",
					Required:    true,
				},
			},
		},
	}
}

// RegisterCommands registers the enabled application commands. Registration
// failures are logged and skipped; the bot keeps serving whatever commands
// Discord already knows about.
func RegisterCommands(ctx context.Context, registrar Registrar, appID string, config *configs.Config) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()), zap.String("application_id", appID))

	definitions := commandDefinitions()

	for _, command := range config.Commands {
		if !command.Enabled {
			continue
		}

		definition, ok := definitions[command.Long]
		if !ok {
			continue
		}

		if command.Description != "" {
			definition.Description = command.Description
		}

		cCtx := logging.AddValues(ctx, zap.String("command", command.Name))

		if _, rErr := registrar.RegisterCommand(appID, definition); rErr != nil {
			newCtx := logging.AddValues(cCtx, zap.NamedError("error", rErr.Err), zap.String("error_message", rErr.Message), zap.Int("status_code", rErr.Code))
			logger := logging.Logger(newCtx)
			logger.Error("error_log")
			continue
		}

		logger := logging.Logger(cCtx)
		logger.Info("command_log")
	}
}
