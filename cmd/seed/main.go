// Command main populates the store file with demo data for Driftline.
package main

import (
	"flag"
	"log"
	"os"

	"driftline/internal/config"
	"driftline/internal/seed"
	"driftline/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 8, "Number of users to create")
	postsPerUser := flag.Int("posts", 6, "Posts per user")
	commentsPerPost := flag.Int("comments", 3, "Comments per post")
	maxDays := flag.Int("days", 30, "Spread timestamps over this many days back")
	fast := flag.Bool("fast", false, "Skip bcrypt hashing for demo accounts")
	clean := flag.Bool("clean", true, "Start from an empty store file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("🌱 Store Seeder")
	log.Printf("Target: %d users, %d posts each, %d comments per post -> %s\n",
		*numUsers, *postsPerUser, *commentsPerPost, cfg.StorePath)

	if *clean {
		if err := os.Remove(cfg.StorePath); err != nil && !os.IsNotExist(err) {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	opts := seed.Options{
		Users:           *numUsers,
		PostsPerUser:    *postsPerUser,
		CommentsPerPost: *commentsPerPost,
		MaxDays:         *maxDays,
		SkipBcrypt:      *fast,
	}
	if err := seed.Run(st, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! The store file is populated with demo data.")
	log.Println("📧 All demo users have the password: Password123!demo")
}
