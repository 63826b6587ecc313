package config

import (
	"os"
	"strconv"
)

type Config struct {
	BotToken          string
	DBPath            string
	AppPort           string
	JWTSecret         string
	JWTExpiresMin     int
	AdminUsername     string
	AdminPasswordHash string
	RedisAddr         string
	RedisPassword     string
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	return Config{
		BotToken:          must("BOT_TOKEN"),
		DBPath:            get("DB_PATH", "ride-hailing.db"),
		AppPort:           get("APP_PORT", "8080"),
		JWTSecret:         must("JWT_SECRET"),
		JWTExpiresMin:     expires,
		AdminUsername:     get("ADMIN_USERNAME", "dispatch"),
		AdminPasswordHash: must("ADMIN_PASSWORD_HASH"),
		RedisAddr:         get("REDIS_ADDR", ""),
		RedisPassword:     get("REDIS_PASSWORD", ""),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
