package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/erhancapar/kuzgun-backend/internal/database"
	"github.com/erhancapar/kuzgun-backend/internal/handlers"
	"github.com/erhancapar/kuzgun-backend/internal/jwt"
	"github.com/erhancapar/kuzgun-backend/internal/keyValue"
	"github.com/erhancapar/kuzgun-backend/internal/models"
	"github.com/erhancapar/kuzgun-backend/internal/snowflake"
)

func setupLogger() (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"app.log", "stdout"}
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

func readConfigFile() (models.ConfigFile, error) {
	var cfg models.ConfigFile

	configFile, err := os.Open("config.json")
	if err != nil {
		return cfg, err
	}
	defer configFile.Close()

	bytes, err := io.ReadAll(configFile)
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(bytes, &cfg)
	if err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg)

	if cfg.TokenLifetimeHours == 0 {
		cfg.TokenLifetimeHours = 720 // 30 days
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.RedisAddress == "" {
		cfg.RedisAddress = "localhost:6379"
	}

	return cfg, nil
}

// Secrets can live in the environment (or a .env file) instead of
// config.json.
func applyEnvOverrides(cfg *models.ConfigFile) {
	// a missing .env file is fine
	_ = godotenv.Load()

	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JwtSecret = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DbPassword = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
}

func setupRedis(cfg *models.ConfigFile) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	err := rdb.Ping(context.Background()).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func main() {
	fmt.Println("Setting up logger...")
	sugar, err := setupLogger()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer sugar.Sync()

	fmt.Println("Reading config file...")
	cfg, err := readConfigFile()
	if err != nil {
		sugar.Fatal(err)
	}

	if cfg.JwtSecret == "" {
		sugar.Fatal("JwtSecret is not set in config.json or JWT_SECRET")
	}

	fmt.Println("Connecting to database...")
	db, err := database.Setup(&cfg)
	if err != nil {
		sugar.Fatal(err)
	}

	var redisClient *redis.Client
	if !cfg.SelfContained {
		fmt.Println("Connecting to redis...")
		redisClient, err = setupRedis(&cfg)
		if err != nil {
			sugar.Fatal(err)
		}
	}

	keyValue.Setup(sugar, redisClient, cfg.SelfContained)

	err = snowflake.Setup(cfg.SnowflakeWorkerID)
	if err != nil {
		sugar.Fatal(err)
	}

	jwt.Setup(cfg.JwtSecret, time.Duration(cfg.TokenLifetimeHours)*time.Hour)

	fmt.Printf("Server is running on %s:%s\n", cfg.Address, cfg.Port)

	err = handlers.Setup(&cfg, sugar, db)
	if err != nil {
		sugar.Fatal(err)
	}
}
