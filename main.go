package main

import (
	"flag"
	"log"
	"os"

	"github.com/CardLedger/CardLedger-Backend/src/config"
	"github.com/CardLedger/CardLedger-Backend/src/db"
	"github.com/CardLedger/CardLedger-Backend/src/middleware"
	"github.com/CardLedger/CardLedger-Backend/src/routes"
	"github.com/CardLedger/CardLedger-Backend/src/seed"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/CardLedger/CardLedger-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "optional config file (yaml, json, toml or env)")
	dev := flag.Bool("dev", false, "use a local SQLite database and debug logging")
	seedData := flag.Bool("seed", false, "fill an empty inventory with demo data")
	flag.Parse()

	cfg, err := config.Load(*configFile, *dev)
	if err != nil {
		log.Fatalf("Error loading config: %v\n", err)
	}

	logger := utils.NewLogger(os.Stderr, cfg.LogLevel)

	// Database connection
	conn, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	// Auto-migrate models
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	// Services setup
	cache := services.NewCache()
	itemService := services.NewItemService(conn, cache, logger)
	submissionService := services.NewSubmissionService(conn, cache, logger)
	gradingRecordService := services.NewGradingRecordService(conn, cache, logger)
	exportService := services.NewExportService(itemService, submissionService)
	driveDownloader := utils.NewDriveDownloader(cfg.Drive, logger)

	if *seedData {
		seed.Seed(itemService, submissionService, gradingRecordService)
	}

	// Gin router setup
	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.SetupCORS(cfg.CORSAllowedOrigins))

	// Routes setup
	routes.SetupItemRoutes(router, itemService, exportService, driveDownloader, cfg.PageLimit)
	routes.SetupSubmissionRoutes(router, submissionService, cfg.PageLimit)
	routes.SetupGradingRecordRoutes(router, gradingRecordService, cfg.PageLimit)

	router.GET("/", func(c *gin.Context) {
		c.String(200, "CardLedger inventory API")
	})

	log.Printf("Server is running on %s\n", cfg.ServerHost)

	// Server run
	if err := router.Run(cfg.ServerHost); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", cfg.ServerHost, err)
	}
}
