package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func Load() App {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using process env")
	}
	cfg := App{
		Port:      getenv("APP_PORT", "8080"),
		MongoURI:  must("MONGO_URI"),
		MongoDB:   getenv("MONGO_DB", "car_rental"),
		JWTSecret: getenv("JWT_SECRET", "local_dev_secret"),
		Env:       getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
