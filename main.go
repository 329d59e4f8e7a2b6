package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/michaeljabbour/openai-images-mcp/config"
	"github.com/michaeljabbour/openai-images-mcp/controllers"
	"github.com/michaeljabbour/openai-images-mcp/routes"
	"github.com/michaeljabbour/openai-images-mcp/services"
)

func main() {
	config.Load()

	level, err := zerolog.ParseLevel(config.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	apiKey := config.GetOpenAIKey()
	if apiKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY is required")
	}

	store, err := openStore(log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open conversation store")
	}

	prompts := services.NewPromptService()
	turns := services.NewTurnService(
		store,
		prompts,
		services.NewDialogueService(),
		services.NewEnhanceService(prompts),
		services.NewVerificationService(),
		services.NewOpenAIService(apiKey),
		services.NewDownloadsSink(config.DownloadsDir()),
		log,
	)

	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRouter(controllers.NewImageController(turns, store, log), log)

	port := config.Port()
	log.Info().
		Str("port", port).
		Str("store", config.StorageBackend()).
		Msg("server starting")
	if err := router.Run(port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func openStore(log zerolog.Logger) (services.ConversationStore, error) {
	backend := config.StorageBackend()
	switch backend {
	case "bolt":
		return services.NewBoltStore(config.BoltPath())
	case "dynamo":
		return services.NewDynamoStore(config.DynamoEndpoint(), config.DynamoRegion(), config.DynamoTable())
	case "memory":
		log.Warn().Msg("memory store selected, conversations will not survive restart")
		return services.NewMemoryStore(), nil
	default:
		return services.NewFileStore(config.StorageDir())
	}
}
