package main

import (
	"log"
	"os"

	"mlhub-go/internal/config"
	"mlhub-go/internal/models"
	"mlhub-go/internal/router"
	"mlhub-go/internal/storage"
	"mlhub-go/internal/utils"
	"mlhub-go/pkg/session_store"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("initializing database: %v", err)
	}
	db := models.GetDB()

	modelBlobs, err := storage.NewBlobStore(cfg.Storage.ModelsDir)
	if err != nil {
		log.Fatalf("initializing model storage: %v", err)
	}
	datasetBlobs, err := storage.NewBlobStore(cfg.Storage.DatasetsDir)
	if err != nil {
		log.Fatalf("initializing dataset storage: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	sessionStore := session_store.NewRedisStore(redisClient, "mlhub:session:")

	tokenManager := utils.NewTokenManager(cfg.Session.SecretKey)

	r := router.SetupRouter(cfg, tokenManager, sessionStore, logger, db, modelBlobs, datasetBlobs)

	addr := cfg.Server.GetAddress()
	logger.Infof("server listening on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("starting server: %v", err)
	}
}
