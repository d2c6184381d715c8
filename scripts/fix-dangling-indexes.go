package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

// index describes one family of SET indexes and how a member maps to the
// record it points at
type index struct {
	pattern string
	prefix  string
	record  func(indexKey, member string) string
}

var indexes = []index{
	{pattern: "player:game:*", prefix: "player:game:", record: byID("player:")},
	{pattern: "character:game:*", prefix: "character:game:", record: byID("character:")},
	{pattern: "character:player:*", prefix: "character:player:", record: byID("character:")},
	{pattern: "card:player:*", prefix: "card:player:", record: byID("card:")},
	{pattern: "card:pending:*", prefix: "card:pending:", record: byID("card:")},
	{pattern: "battle:active:*", prefix: "battle:active:", record: byID("battle:")},
	{pattern: "battle:completed:*", prefix: "battle:completed:", record: byID("battle:")},
	{
		pattern: "hex:game:*",
		prefix:  "hex:game:",
		record: func(indexKey, member string) string {
			return "hex:" + strings.TrimPrefix(indexKey, "hex:game:") + ":" + member
		},
	},
}

func byID(prefix string) func(string, string) string {
	return func(_, member string) string {
		return prefix + member
	}
}

type dangling struct {
	indexKey string
	member   string
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
	fmt.Println("Scanning game indexes for members without a record...")

	var found []dangling
	var checkedCount int

	for _, idx := range indexes {
		iter := client.ScanType(ctx, 0, idx.pattern, 0, "set").Iterator()
		for iter.Next(ctx) {
			indexKey := iter.Val()
			members, err := client.SMembers(ctx, indexKey).Result()
			if err != nil {
				fmt.Printf("Error reading %s: %v\n", indexKey, err)
				continue
			}

			for _, member := range members {
				checkedCount++
				n, err := client.Exists(ctx, idx.record(indexKey, member)).Result()
				if err != nil {
					fmt.Printf("Error checking %s in %s: %v\n", member, indexKey, err)
					continue
				}
				if n == 0 {
					fmt.Printf("✗ %s lists %s, which has no record\n", indexKey, member)
					found = append(found, dangling{indexKey: indexKey, member: member})
				}
			}
		}
		if err := iter.Err(); err != nil {
			log.Fatal("Error during scan:", err)
		}
	}

	fmt.Printf("\nChecked %d index members, found %d dangling entries\n", checkedCount, len(found))

	if len(found) == 0 {
		fmt.Println("No dangling index entries found!")
		return
	}

	// Ask for confirmation before removal
	fmt.Print("\nDo you want to REMOVE these index entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, d := range found {
		if err := client.SRem(ctx, d.indexKey, d.member).Err(); err != nil {
			fmt.Printf("Failed to remove %s from %s: %v\n", d.member, d.indexKey, err)
		} else {
			fmt.Printf("Removed %s from %s\n", d.member, d.indexKey)
		}
	}
	fmt.Println("\nCleanup complete!")
}
