package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bootcamp/internal/config"
	"bootcamp/internal/queue"
	"bootcamp/internal/store"
)

// Notifier consumes broadcast events published by the API and logs delivery.
// Downstream push channels (mail, chat webhooks) hang off this loop.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)
	if !redisClient.Healthy(ctx) {
		log.Fatalf("redis not reachable at %s", cfg.RedisAddr)
	}

	q := queue.NewRedisQueue(redisClient.Client, "bootcamp:notifications")

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("notifier started, waiting for messages...")
	for msg := range messages {
		if msg.Type != "notification" {
			continue
		}
		log.Printf("delivering notification %s: %s", msg.ID, string(msg.Body))
	}

	log.Println("notifier stopped")
}
