package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"seized-page/internal/config"
	"seized-page/internal/repository"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/migrate [up|drop|count]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	connConfig, err := cfg.Database.ConnConfig()
	if err != nil {
		log.Fatalf("Invalid database configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	if err := run(ctx, conn, os.Args[1]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, conn repository.DBTX, command string) error {
	repo := repository.NewVisitRepository(conn)

	switch command {
	case "up":
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
		fmt.Println("✅ criminal_ips table ready")

	case "drop":
		if _, err := conn.Exec(ctx, repository.DropVisitsTableSQL); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
		fmt.Println("✅ criminal_ips table dropped")

	case "count":
		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("criminal_ips: %d rows\n", count)

	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	return nil
}
