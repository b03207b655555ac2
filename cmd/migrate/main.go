package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"aiadoption/internal/config"
	"aiadoption/internal/logger"
	"aiadoption/internal/repo"
)

// demoUserID is fixed so repeated seeding hits the same rows.
var demoUserID = uuid.MustParse("6f1c2a54-0d3e-4b8a-9a51-3f7e2c9d8b10")

func main() {
	seed := flag.Bool("seed", false, "insert the demo user and sample survey data")
	email := flag.String("demo-email", "ada@example.com", "demo account email")
	password := flag.String("demo-password", "", "demo account password (required with -seed)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := repo.Open(ctx, cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("unable to connect to database")
	}
	defer pool.Close()

	if err := repo.Migrate(ctx, pool); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	log.Info("schema is up to date")

	if !*seed {
		return
	}
	if *password == "" {
		log.Fatal("-demo-password is required with -seed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("hash demo password")
	}

	err = repo.SeedDemo(ctx, pool, repo.DemoUser{
		ID:           demoUserID,
		Email:        *email,
		PasswordHash: string(hash),
		FullName:     "Ada",
	})
	if err != nil {
		log.WithError(err).Fatal("seed demo data")
	}
	log.WithField("email", *email).Info("demo data inserted")
}
