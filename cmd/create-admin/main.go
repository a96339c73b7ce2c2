package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Creates an administrator account: create-admin <username> <email> <password>
func main() {
	if len(os.Args) != 4 {
		fmt.Println("usage: create-admin <username> <email> <password>")
		os.Exit(1)
	}
	username, email, password := os.Args[1], os.Args[2], os.Args[3]

	if len(password) < 8 {
		fmt.Println("password must be at least 8 characters")
		os.Exit(1)
	}

	_ = godotenv.Load()
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		fmt.Printf("Failed to connect to DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var id int
	err = pool.QueryRow(ctx, `
		INSERT INTO admins (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`,
		username, email, string(hash)).Scan(&id)
	if err != nil {
		fmt.Printf("Failed to create admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created admin %s (id=%d)\n", username, id)
}
