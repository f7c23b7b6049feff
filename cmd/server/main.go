package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitcoach/fitcoach-be/internal/auth"
	"github.com/fitcoach/fitcoach-be/internal/coach"
	"github.com/fitcoach/fitcoach-be/internal/config"
	"github.com/fitcoach/fitcoach-be/internal/logging"
	"github.com/fitcoach/fitcoach-be/internal/server"
	"github.com/fitcoach/fitcoach-be/internal/session"
	"github.com/fitcoach/fitcoach-be/internal/storage"
	"github.com/fitcoach/fitcoach-be/internal/storage/memory"
	"github.com/fitcoach/fitcoach-be/internal/storage/postgres"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Init(cfg.LogLevel, cfg.Environment)
	defer logging.Sync()

	ctx := context.Background()

	var users storage.UserStore
	var conversations storage.ConversationStore
	if cfg.DatabaseURL != "" {
		store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatalf("init database: %v", err)
		}
		defer store.Close()
		users, conversations = store, store
		logging.Info("using postgres-backed stores")
	} else {
		store := memory.NewStore()
		users, conversations = store, store
		logging.Info("using in-memory stores")
	}

	var denylist auth.Denylist = auth.NewMemoryDenylist()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logging.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		denylist = auth.NewRedisDenylist(client)
		logging.Info("using redis-backed token denylist")
	}

	var hasher auth.Hasher = auth.NewSaltedHasher(cfg.PasswordSalt)
	if cfg.PasswordScheme == config.SchemeBcrypt {
		hasher = auth.NewBcryptHasher()
	}

	generator := coach.NewKeywordGenerator()
	sessions := session.NewService(
		users, conversations, hasher,
		auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		denylist, generator,
	)

	srv := server.New(cfg, sessions, generator)

	go func() {
		logging.Infof("fitcoach backend listening on %s (env=%s)", cfg.HTTPAddress(), cfg.Environment)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logging.Info("shutdown signal received")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logging.Errorf("graceful shutdown error: %v", err)
	}
	logging.Info("server stopped")
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
