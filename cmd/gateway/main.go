package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	api "github.com/studiemaatje/huiswerkcoach/internal/api/http"
	auth "github.com/studiemaatje/huiswerkcoach/internal/auth/middleware"
	"github.com/studiemaatje/huiswerkcoach/internal/chatimport"
	"github.com/studiemaatje/huiswerkcoach/internal/config"
	"github.com/studiemaatje/huiswerkcoach/internal/db"
	"github.com/studiemaatje/huiswerkcoach/internal/grading"
	"github.com/studiemaatje/huiswerkcoach/internal/importlock"
	"github.com/studiemaatje/huiswerkcoach/internal/quiz"
	"github.com/studiemaatje/huiswerkcoach/internal/quizimport"
	"github.com/studiemaatje/huiswerkcoach/internal/storage"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh, cfg.DBDriver, cfg.ImportMaxItems)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Import guard: redis when configured, in-process otherwise ---
	locker := importlock.NewMemoryLocker()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping %s: %v", cfg.RedisAddr, err)
		}
		locker = importlock.NewRedisLocker(rdb)
	}

	// --- Chat block importer: remote service when configured, local parser otherwise ---
	var chat chatimport.Importer = chatimport.NewLocalImporter(store)
	if cfg.ChatImportURL != "" {
		hc := &http.Client{Timeout: time.Duration(cfg.ChatImportTimeoutMS) * time.Millisecond}
		c, err := chatimport.NewClient(cfg.ChatImportURL, cfg.ChatImportToken, hc)
		if err != nil {
			log.Fatalf("chat import client: %v", err)
		}
		chat = c
	}

	history := quizimport.NewSQLImportLog(dbh)
	svc := quizimport.NewService(store,
		quizimport.WithChatImporter(chat),
		quizimport.WithLocker(locker),
		quizimport.WithBlobStore(bs),
		quizimport.WithImportLog(history),
		quizimport.WithLockTTL(time.Duration(cfg.ImportLockTTLSec)*time.Second),
	)

	r := api.NewRouter(api.Deps{
		DB:       dbh,
		Auth:     auth.NewAuthService(cfg.AuthHMACSecret),
		Store:    store,
		Importer: svc,
		History:  history,
		Blobs:    bs,
		Checker:  grading.NewChecker(),
		Defaults: api.ImportDefaults{
			DefaultType:     quizimport.ParseType(cfg.ImportDefaultType),
			AutoDistractors: cfg.ImportAutoDistractors,
		},
		CORSOrigins: cfg.CORSOrigins(),
		LocalAuth:   cfg.EnableLocalAuth,
		StrictRoles: cfg.Mode == config.ModeOnline,
	})

	log.Printf("listening on %s (mode=%s, db=%s, redis=%t, chat_import=%q)",
		cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.RedisAddr != "", cfg.ChatImportURL)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
