package app

import (
	"context"

	"classroom-auth/internal/config"
	"classroom-auth/internal/db"
	"classroom-auth/internal/logger"
	"classroom-auth/internal/redis"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	database, err := db.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx, database); err != nil {
		return nil, err
	}

	logger.Info("database ready")

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready")

	return &Infra{
		DB:    database,
		Redis: redisClient,
	}, nil
}
