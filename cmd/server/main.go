package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"masterboxer.com/project-social-blog/auth"
	"masterboxer.com/project-social-blog/config"
	"masterboxer.com/project-social-blog/database"
	"masterboxer.com/project-social-blog/repository"
	"masterboxer.com/project-social-blog/repository/memory"
	"masterboxer.com/project-social-blog/repository/postgres"
	"masterboxer.com/project-social-blog/routes"
	"masterboxer.com/project-social-blog/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	var store repository.Store
	switch cfg.Store {
	case config.StoreMemory:
		log.Println("Using in-memory store")
		store = memory.New()
	default:
		db, err := database.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Server: DB connection failed:", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err = database.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("Server: migrations failed: %v", err)
		}
		store = postgres.New(db)
	}

	opts := []services.Option{}
	if len(cfg.RedisAddrs) > 0 {
		rdb := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    cfg.RedisAddrs,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Server: redis unreachable: %v", err)
		}
		log.Printf("Post sequence backed by redis at %v", cfg.RedisAddrs)
		opts = append(opts, services.WithSequence(
			services.NewRedisSequence(rdb, services.DefaultSequenceKey, store.Posts().Count)))
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	svc := services.New(store, auth.BcryptHasher{Cost: cfg.BcryptCost}, tokens, opts...)
	router := routes.NewRouter(svc, auth.NewAuthenticator(tokens, svc))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
