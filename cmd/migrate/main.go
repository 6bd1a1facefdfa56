package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"masterboxer.com/project-social-blog/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := database.ConnectDB(dsn)
	if err != nil {
		log.Fatal("Migrate: DB connection failed:", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Running schema migrations")
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Migrate: %v", err)
	}
	log.Println("Schema migrations finished")
}
