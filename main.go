package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/naseemhussainn/news-aggregator-api/cache"
	"github.com/naseemhussainn/news-aggregator-api/config"
	"github.com/naseemhussainn/news-aggregator-api/controllers"
	"github.com/naseemhussainn/news-aggregator-api/logger"
	"github.com/naseemhussainn/news-aggregator-api/models"
	"github.com/naseemhussainn/news-aggregator-api/services"
)

var providerLabels = map[string]string{
	"newsapi":  "NewsAPI",
	"guardian": "The Guardian",
	"nytimes":  "New York Times",
}

func main() {
	// Load the .env file if present
	_ = godotenv.Load()

	logger.Init()
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "fetch" {
		os.Exit(runFetch(db, cfg, os.Args[2:]))
	}

	r := gin.Default()
	controllers.RegisterRoutes(r, db, cfg, cache.New())

	logger.Info("server listening", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// runFetch ingests from one named provider, or all three in order when no
// name is given, and prints the per-provider saved counts.
func runFetch(db *gorm.DB, cfg *config.Config, args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("news fetch command failed", "error", r)
			fmt.Fprintf(os.Stderr, "Error fetching news: %v\n", r)
			code = 1
		}
	}()

	var only string
	if len(args) > 0 {
		only = args[0]
	}
	if only != "" {
		if _, ok := providerLabels[only]; !ok {
			fmt.Fprintf(os.Stderr, "unknown provider %q (expected newsapi, guardian or nytimes)\n", only)
			return 1
		}
	}

	providers := []services.Provider{
		services.NewNewsAPIClient(cfg),
		services.NewGuardianClient(cfg),
		services.NewNYTimesClient(cfg),
	}
	ingester := services.NewIngester(db)
	ctx := context.Background()

	for _, p := range providers {
		if only != "" && only != p.Name() {
			continue
		}
		label := providerLabels[p.Name()]
		fmt.Printf("Fetching articles from %s...\n", label)
		saved := ingester.Ingest(p.Name(), p.Fetch(ctx))
		fmt.Printf("Saved %d articles from %s\n", saved, label)
	}

	fmt.Println("News fetch completed successfully.")
	return 0
}
