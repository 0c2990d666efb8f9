package app

import (
	"log/slog"
	"os"

	"github.com/shivampatadiya-ai-hub/nutrigenie/config"
	in_memory "github.com/shivampatadiya-ai-hub/nutrigenie/internal/storage/in-memory"
	"github.com/shivampatadiya-ai-hub/nutrigenie/internal/usecase"
)

func Run(cfg *config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if cfg.Gemini.APIKey == "" {
		// Not fatal: the app serves the page and fails AI calls gracefully.
		logger.Warn("GEMINI_API_KEY is not set, AI requests will fail until it is provided")
	}

	conversationStorage := in_memory.NewConversationStorage()

	sessionUsecase := usecase.NewSessionUsecase(cfg.Gemini, logger)

	conversationUsecase := usecase.NewConversationUsecase(
		usecase.ConversationUsecaseDeps{
			Storage: conversationStorage,
			Session: sessionUsecase,
			Logger:  logger,
		},
	)

	webUsecase := usecase.NewWebUsecase(
		cfg.Server, usecase.WebUsecaseDeps{
			Conversation: conversationUsecase,
			Logger:       logger,
		},
	)

	return webUsecase.Run()
}
