package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"dr-baseline/internal/api/handlers"
	"dr-baseline/internal/api/middleware"
	"dr-baseline/internal/baseline"
	"dr-baseline/internal/config"
	"dr-baseline/internal/reward"
	"dr-baseline/internal/store"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = loaded
		log.Printf("Loaded config from %s", path)
	}

	blCfg, err := cfg.BaselineEngineConfig()
	if err != nil {
		log.Fatalf("Invalid baseline config: %v", err)
	}

	st := store.NewMemoryStore()

	if path := os.Getenv("METER_DATA_PATH"); path != "" {
		file, err := store.LoadMeterJSON(path)
		if err != nil {
			log.Fatalf("Failed to load meter data %s: %v", path, err)
		}
		n, err := st.Put(file.Records...)
		if err != nil {
			log.Fatalf("Failed to ingest meter data %s: %v", path, err)
		}
		log.Printf("Preloaded %d samples from %s", n, path)
	}

	blEngine, err := baseline.New(st, blCfg)
	if err != nil {
		log.Fatalf("Failed to build baseline engine: %v", err)
	}
	rwEngine, err := reward.New(blEngine, cfg.RewardEngineConfig())
	if err != nil {
		log.Fatalf("Failed to build reward engine: %v", err)
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	meterHandler := handlers.NewMeterHandler(st)
	cblHandler := handlers.NewCBLHandler(blEngine)
	rewardHandler := handlers.NewRewardHandler(rwEngine)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/meter-data/batch", meterHandler.IngestBatch)
		api.GET("/customers", meterHandler.ListCustomers)

		api.POST("/dr/day-select/cbl", cblHandler.ComputeCBL)
		api.POST("/dr/day-select/eligibility", cblHandler.ScanEligibility)
		api.POST("/dr/day-select/reward", rewardHandler.ComputeReward)

		api.GET("/tariffs", rewardHandler.ListTariffs)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s (timezone %s)", addr, cfg.Timezone)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
