package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix = "seed_report:"
	reportIndexKey  = "seed_reports"
)

// Only the fields every stored report must have
type reportData struct {
	RunID   string          `json:"run_id"`
	Results json.RawMessage `json:"results"`
}

func main() {
	redisURL := os.Getenv("SEEDER_REPORTS_REDIS_URL")
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
	fmt.Println("Scanning run reports...")

	var corruptedKeys []string
	var checkedCount int

	iter := client.Scan(ctx, 0, reportKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var report reportData
		if err := json.Unmarshal([]byte(data), &report); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}
		if reportKeyPrefix+report.RunID != key {
			fmt.Printf("✗ Run id %q does not match key %s\n", report.RunID, key)
			corruptedKeys = append(corruptedKeys, key)
		}
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	// index entries whose report expired or was never written
	runIDs, err := client.ZRange(ctx, reportIndexKey, 0, -1).Result()
	if err != nil {
		log.Fatal("Error reading report index:", err)
	}
	var danglingIDs []string
	for _, runID := range runIDs {
		n, err := client.Exists(ctx, reportKeyPrefix+runID).Result()
		if err != nil {
			fmt.Printf("Error checking %s: %v\n", runID, err)
			continue
		}
		if n == 0 {
			danglingIDs = append(danglingIDs, runID)
		}
	}

	fmt.Printf("\nChecked %d reports, found %d corrupted and %d dangling index entries\n",
		checkedCount, len(corruptedKeys), len(danglingIDs))

	if len(corruptedKeys) == 0 && len(danglingIDs) == 0 {
		fmt.Println("Nothing to fix!")
		return
	}

	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}
	for _, runID := range danglingIDs {
		fmt.Printf("  - %s (index only)\n", runID)
	}

	fmt.Print("\nDo you want to DELETE these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range corruptedKeys {
		runID := key[len(reportKeyPrefix):]
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
			continue
		}
		danglingIDs = append(danglingIDs, runID)
		fmt.Printf("Deleted %s\n", key)
	}
	for _, runID := range danglingIDs {
		if err := client.ZRem(ctx, reportIndexKey, runID).Err(); err != nil {
			fmt.Printf("Failed to unindex %s: %v\n", runID, err)
		}
	}
	fmt.Println("\nCleanup complete!")
}
