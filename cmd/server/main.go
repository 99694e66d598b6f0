package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rogalski/gamedex/internal/api"
	"github.com/rogalski/gamedex/internal/auth"
	"github.com/rogalski/gamedex/internal/config"
	"github.com/rogalski/gamedex/internal/developers"
	"github.com/rogalski/gamedex/internal/games"
	"github.com/rogalski/gamedex/internal/players"
	"github.com/rogalski/gamedex/internal/store"
	"github.com/rogalski/gamedex/internal/users"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.JWTPrivateKey == "" {
		log.Fatal("FATAL ERROR: JWT_PRIVATE_KEY is not defined.")
	}
	issuer := auth.NewIssuer(cfg.JWTPrivateKey, cfg.TokenTTL)

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDB)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}

	playerStore := store.NewMongoPlayers(db)
	gameStore := store.NewMongoGames(db)
	developerStore := store.NewMongoDevelopers(db)
	userStore := store.NewMongoUsers(db)

	// ── Redis (optional list cache) ──────────────────────────
	var cache *store.Cache
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer rdb.Close()
		cache = store.NewCache(rdb)
	}

	// ── PostgreSQL (optional audit log) ──────────────────────
	var audit *store.AuditLog
	if cfg.PostgresDSN != "" {
		pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pgPool.Close()
		audit = store.NewAuditLog(pgPool)
		if err := audit.Migrate(ctx); err != nil {
			log.Fatalf("postgres migrate: %v", err)
		}
	}

	// ── Router ───────────────────────────────────────────────
	router := api.New(issuer, api.Handlers{
		Players:    players.NewHandler(playerStore, gameStore, developerStore, issuer, audit),
		Games:      games.NewHandler(gameStore, developerStore, cache, audit),
		Developers: developers.NewHandler(developerStore, cache, audit),
		Users:      users.NewHandler(userStore, issuer, audit),
		Auth:       auth.NewHandler(playerStore, issuer),
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Listening on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
