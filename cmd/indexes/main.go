// Command indexes creates the MongoDB indexes the service relies on: the
// unique email and token indexes on users, and the owner index on chats.
// Run once per environment before starting the server.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nexodus/nexodus-api/internal/config"
	"github.com/nexodus/nexodus-api/internal/repository/mongodb"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongodb.NewDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Close(context.Background())

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create user indexes")
	}
	log.Info().Msg("User indexes created")

	if err := mongodb.NewChatRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create chat indexes")
	}
	log.Info().Msg("Chat indexes created")
}
