package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/henokhm/ride-hailing-bot/internal/bot"
	"github.com/henokhm/ride-hailing-bot/internal/config"
	"github.com/henokhm/ride-hailing-bot/internal/db"
	"github.com/henokhm/ride-hailing-bot/internal/dispatch"
	"github.com/henokhm/ride-hailing-bot/internal/realtime"
	"github.com/henokhm/ride-hailing-bot/internal/session"
	"github.com/henokhm/ride-hailing-bot/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal("connecting to database: ", err)
	}

	st, err := store.New(gdb)
	if err != nil {
		log.Fatal("initializing store: ", err)
	}
	log.Println("database ready:", cfg.DBPath)

	var sessions session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("redis unreachable: ", err)
		}
		sessions = session.NewRedisStore(rdb)
		log.Println("using redis session store:", cfg.RedisAddr)
	}

	hub := realtime.NewHub()
	go hub.Run()

	tb, err := bot.New(cfg.BotToken, bot.NewFlow(st, sessions))
	if err != nil {
		log.Fatal("creating telegram bot: ", err)
	}

	app := fiber.New()
	dispatch.Register(app, dispatch.NewHandler(st, hub), &dispatch.AuthHandler{
		JWTSecret:    cfg.JWTSecret,
		Expires:      cfg.JWTExpiresMin,
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
	})

	go func() {
		log.Fatal(app.Listen(":" + cfg.AppPort))
	}()

	log.Println("bot polling started")
	tb.Start()
}
