package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/edustack/campus-backend/internal/config"
	"github.com/edustack/campus-backend/internal/database"
	"github.com/edustack/campus-backend/internal/logger"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/repository"
)

// create-developer bootstraps the first cross-tenant account. Everything else
// can be provisioned through the API once a developer can log in.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	actorRepo := repository.NewActorRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Developer Account ===")

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	developer := &model.Actor{
		Email:        email,
		Role:         model.RoleDeveloper,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := actorRepo.Create(ctx, developer); err != nil {
		log.Fatal().Err(err).Msg("Failed to create developer")
	}

	fmt.Printf("\nSuccess! Developer '%s' created with ID: %s\n", developer.Email, developer.ID)
}
