package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bookmarks-api/config"
	"github.com/oksasatya/go-bookmarks-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		logger.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hasher, err := helpers.NewPasswordHasher(cfg.PasswordHashAlgo)
	if err != nil {
		logger.Fatalf("hasher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := seed(ctx, db, hasher, demo)
	if err != nil {
		logger.Fatalf("seed failed: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"user_id":          res.UserID,
		"email":            demo.Email,
		"password":         demo.Password,
		"bookmark_created": res.BookmarkCreated,
	}).Info("seeded demo account")
}
