package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Talynk/talynk-backend-sub002/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using system environment")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.JWTService{},
		&services.AuthService{},
		&services.RateLimitService{},

		&services.CategoryService{},
		&services.SearchService{},
		&services.ModerationService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service runtime terminated")
	}
}
