package main

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env"
	"gitlab.com/BIC_Dev/reaction-role-manager/configs"
	"gitlab.com/BIC_Dev/reaction-role-manager/controllers"
	"gitlab.com/BIC_Dev/reaction-role-manager/interactions"
	"gitlab.com/BIC_Dev/reaction-role-manager/interactions/commands"
	"gitlab.com/BIC_Dev/reaction-role-manager/routes"
	"gitlab.com/BIC_Dev/reaction-role-manager/runners"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/cache"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/storage"
	"go.uber.org/zap"
)

// Environment struct
type Environment struct {
	Environment   string `env:"ENVIRONMENT,required"`
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID,required"`
	ListenerPort  string `env:"LISTENER_PORT,required"`
	ServiceToken  string `env:"SERVICE_TOKEN,required"`
	BasePath      string `env:"BASE_PATH"`
}

func main() {
	ctx := context.Background()
	environment := Environment{}
	if err := env.Parse(&environment); err != nil {
		log.Fatal("FAILED TO LOAD CONFIG")
	}

	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("env", environment.Environment),
		zap.String("listener_port", environment.ListenerPort),
		zap.String("base_path", environment.BasePath),
	)

	config := configs.GetConfig(ctx, environment.Environment)
	cache := InitCache(ctx, config)
	store := storage.Load(ctx, config.Storage.Path)

	// Instantiate Discord client
	dg, discErr := discordgo.New("Bot " + environment.DiscordToken)
	if discErr != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", discErr), zap.String("error_message", "Failed to create Discord client"))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessageReactions

	// Deadline for every REST call the bot makes (grant/revoke/react/send)
	if config.Bot.RequestTimeout > 0 {
		dg.Client.Timeout = config.Bot.RequestTimeout * time.Second
	}

	defer dg.Close()

	// Open a websocket connection to Discord and begin listening.
	openErr := dg.Open()
	if openErr != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", openErr), zap.String("error_message", "Failed to open Discord web socket"))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	discord := &discordapi.Client{
		Session: dg,
	}

	comm := interactions.Interactions{
		Session: dg,
		Config:  config,
		Cache:   cache,
		Storage: store,
		Discord: discord,
	}

	comm.SetupHandlers()

	commands.RegisterCommands(ctx, discord, environment.ApplicationID, config)

	run := runners.Runners{
		Discord: discord,
		Config:  config,
		Storage: store,
	}

	run.StartRunners()

	router := routes.GetRouter(ctx)
	controller := controllers.Controller{
		Config:  config,
		Storage: store,
	}

	r := routes.Router{
		ServiceToken: environment.ServiceToken,
		Port:         environment.ListenerPort,
		BasePath:     environment.BasePath,
		Controller:   &controller,
	}

	routes.AddRoutes(ctx, router, r)

}

// InitCache initializes the Redis cache
func InitCache(ctx context.Context, config *configs.Config) *cache.Cache {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))
	pool, err := cache.GetClient(ctx, config.Redis.Host, config.Redis.Port, config.Redis.Pool)

	if err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err), zap.String("error_message", err.Message))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	return &cache.Cache{
		Client: pool,
	}
}
