package main

import (
	"errors"
	"flag"
	"os"

	"github.com/SkyVence/project-avims-sub001/internal/config"
	"github.com/SkyVence/project-avims-sub001/internal/infra"
	"github.com/SkyVence/project-avims-sub001/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedadmin creates the initial admin account. Idempotent: if the email
// already exists, nothing is written.
func main() {
	email := flag.String("email", "admin@example.com", "admin email")
	name := flag.String("name", "Administrator", "admin display name")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Error().Msg("-password is required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	var existing model.User
	err = db.Where("email = ?", *email).First(&existing).Error
	if err == nil {
		log.Info().Str("email", *email).Msg("admin already exists, nothing to do")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("lookup failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	admin := &model.User{
		Email:        *email,
		Name:         *name,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatal().Err(err).Msg("create admin")
	}
	log.Info().Str("email", *email).Str("id", admin.ID.String()).Msg("admin created")
}
