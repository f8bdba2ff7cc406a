package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// One-off backfill: older portfolio rows were created before the contact
// email column existed. Copy the owning account's email into every
// portfolio that still has a blank one.
func main() {
	fmt.Println("backfilling portfolio contact emails...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		UPDATE portfolios p
		SET email = u.email, updated_at = NOW()
		FROM users u
		WHERE u.id = p.owner_id AND (p.email IS NULL OR p.email = '')
	`
	tag, err := pool.Exec(context.Background(), query)
	if err != nil {
		log.Fatalf("cannot backfill emails: %v", err)
	}

	fmt.Printf("backfilled %d portfolio(s) successfully!\n", tag.RowsAffected())
}
