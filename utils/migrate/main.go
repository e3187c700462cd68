// Command migrate creates or updates the inventory tables without starting the API.
package main

import (
	"flag"
	"log"

	"github.com/CardLedger/CardLedger-Backend/src/config"
	"github.com/CardLedger/CardLedger-Backend/src/db"
)

func main() {
	configFile := flag.String("config", "", "optional config file")
	dev := flag.Bool("dev", false, "migrate the local SQLite dev database")
	flag.Parse()

	cfg, err := config.Load(*configFile, *dev)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	conn, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("failed to migrate inventory tables: %v", err)
	}
	log.Println("Inventory tables migrated")
}
