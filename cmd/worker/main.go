package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/techfolio/backend/adapters/event"
	"github.com/techfolio/backend/adapters/persistence"
	portfolioUC "github.com/techfolio/backend/internal/application/usecase/portfolio"
	"github.com/techfolio/backend/internal/config"
	"github.com/techfolio/backend/pkg/logger"
)

func main() {
	fmt.Println("Starting Techfolio Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	// Redis
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories and cache
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)
	previewCache := persistence.NewRedisPreviewCache(redisClient, cfg.Auth.SessionTTL)

	// Worker Use Case
	processEventUC := portfolioUC.NewProcessPortfolioEventUseCase(portfolioRepo, previewCache)

	// Kafka Consumer
	portfolioConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPortfolioEvents,
		GroupID:  "portfolio-preview-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer portfolioConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicPortfolioEvents)

	ctx := context.Background()
	for {
		msg, err := portfolioConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload event.PortfolioEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(portfolioConsumer, msg)
			continue
		}

		err = processEventUC.Execute(ctx, payload)
		if err != nil {
			log.Printf("ERROR: Failed to process event for OwnerID %s: %v", payload.OwnerID, err)
			continue
		}

		commitMessage(portfolioConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
