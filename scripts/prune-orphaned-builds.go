package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Only the field needed to find the document
type buildData struct {
	DocumentID string `json:"document_id"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for builds whose document is gone...")

	iter := client.Scan(ctx, 0, "build:*", 0).Iterator()

	var orphanedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			// Expired between SCAN and GET
			if err == redis.Nil {
				continue
			}
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var b buildData
		if err := json.Unmarshal(data, &b); err != nil || b.DocumentID == "" {
			fmt.Printf("✗ Unreadable build %s\n", key)
			orphanedKeys = append(orphanedKeys, key)
			continue
		}

		exists, err := client.Exists(ctx, "document:"+b.DocumentID).Result()
		if err != nil {
			fmt.Printf("Error checking document for %s: %v\n", key, err)
			continue
		}
		if exists == 0 {
			fmt.Printf("✗ %s references missing document %s\n", key, b.DocumentID)
			orphanedKeys = append(orphanedKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d builds, found %d orphaned\n", checkedCount, len(orphanedKeys))

	if len(orphanedKeys) == 0 {
		return
	}

	fmt.Print("\nDelete these builds? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	deleted, err := client.Del(ctx, orphanedKeys...).Result()
	if err != nil {
		log.Fatal("Failed to delete builds:", err)
	}
	fmt.Printf("Deleted %d builds\n", deleted)
}
