package main

import (
	"context"
	"errors"
	"log"
	"os"

	"taskmanager/internal/db"
	"taskmanager/internal/domain"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"
)

// Seeds a local user and prints a usable bearer token.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	service.InitJWT(secret)

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	username := "testuser"
	if v := os.Getenv("TEST_USERNAME"); v != "" {
		username = v
	}
	password := "test-password"
	if v := os.Getenv("TEST_PASSWORD"); v != "" {
		password = v
	}

	u, err := repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		log.Printf("user already exists id=%d\n", u.ID)
	case errors.Is(err, repository.ErrNotFound):
		hash, err := service.HashPassword(password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		u = &domain.User{Username: username, PasswordHash: hash}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%d\n", u.ID)
	default:
		log.Fatalf("get user failed: %v", err)
	}

	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
