package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/nightfall/internal/repositories/runs"
)

func main() {
	limit := flag.Int("limit", 20, "maximum number of runs to list; 0 lists all")
	verbose := flag.Bool("v", false, "also print every seat of each run")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	repo := runs.NewRedisRepository(&runs.RedisRepoConfig{Client: client})
	list, err := repo.List(ctx, *limit)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}

	fmt.Printf("Found %d runs:\n", len(list))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tPLAYERS\tSEED\tDISTRIBUTION")
	for _, r := range list {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), r.PlayerCount, r.Seed, r.Realized)
		if *verbose {
			for _, c := range r.Characters {
				fmt.Fprintf(w, "\t  %d. %s\t%s\t%s\t%s\n",
					c.Player.Seat, c.Player.Name, c.Profession.Name, c.Role.Name, c.Role.Alignment)
			}
		}
	}
	_ = w.Flush()
}
