package main

import (
	"flag"
	"fmt"
	"log"

	"valet_parking/internal/config"
	"valet_parking/internal/repository/postgresql"
	"valet_parking/migrations"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	switch args[0] {
	case "up":
		if err := migrations.Up(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrations.Down(db); err != nil {
			log.Fatalf("Failed to roll back migration: %v", err)
		}
		fmt.Println("Last migration rolled back")
	case "status":
		if err := migrations.Status(db); err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", args[0])
		flag.Usage()
	}
}

func usage() {
	fmt.Println("Usage: migrator [command]")
	fmt.Println("Commands:")
	fmt.Println("  up      - apply all pending migrations")
	fmt.Println("  down    - roll back the last migration")
	fmt.Println("  status  - show migration status")
}
