// Package main runs the FinScoreAI engine as a local HTTP server exposing
// the session, dashboard, switch-offer, wizard and advisory endpoints used
// by the frontend.
package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/config"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/handlers"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/orchestrator"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/services/advisory"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/services/avatar"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/services/ses"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/utils"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/wizard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	ctx := context.Background()

	advisorySvc := advisory.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AdvisoryTimeout)

	store, err := newAvatarStore(ctx, cfg)
	if err != nil {
		utils.Logger.Warn("Avatar store unavailable, using in-memory cache", zap.Error(err))
		store = avatar.NewMemoryStore()
	}
	avatarGen := avatar.NewGenerator(cfg.GeminiAPIKey, store)

	notifier, err := ses.NewService(ctx, cfg.SESSenderEmail, cfg.SESOpsEmail)
	if err != nil {
		utils.Logger.Warn("SES unavailable, application notifications disabled", zap.Error(err))
	}

	sessions := handlers.NewSessionManager(orchestrator.MockBureau{}, orchestrator.Config{
		Wizard: wizard.Config{
			StepDelay:   cfg.StepDelay,
			SubmitDelay: cfg.SubmitDelay,
		},
		SwitchDelay: cfg.SwitchDelay,
	})

	server := handlers.NewServer(sessions, advisorySvc, avatarGen, notifier)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", handlers.SessionHeader},
	})

	utils.Logger.Info("Starting server",
		zap.String("addr", cfg.ListenAddr),
		zap.String("stage", cfg.Stage),
		zap.String("avatar_store", cfg.AvatarStore),
		zap.Bool("advisory_configured", cfg.GeminiAPIKey != ""),
	)

	if err := http.ListenAndServe(cfg.ListenAddr, corsHandler.Handler(server.Routes())); err != nil {
		utils.Logger.Fatal("Server failed", zap.Error(err))
	}
}

// newAvatarStore selects the avatar cache backend from configuration.
func newAvatarStore(ctx context.Context, cfg *config.Config) (avatar.Store, error) {
	switch strings.ToLower(cfg.AvatarStore) {
	case "s3":
		return avatar.NewS3Store(ctx, cfg.S3Bucket)
	case "redis":
		return avatar.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	default:
		return avatar.NewMemoryStore(), nil
	}
}
