package main

import (
	"job-board-api/infra"
	"log"
)

func main() {
	infra.Initialize()

	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := infra.SetupDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := infra.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// トークンブラックリスト用のSQLiteデータベースのマイグレーション
	tokenDB, err := infra.SetupTokenDB(cfg.Database.TokenDBPath)
	if err != nil {
		log.Fatalf("Failed to connect to token blacklist database: %v", err)
	}
	if err := infra.MigrateTokenDB(tokenDB); err != nil {
		log.Fatalf("Failed to migrate token blacklist database: %v", err)
	}

	if cfg.SeedData {
		if err := infra.SeedDB(db, cfg.Auth.BcryptCost); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}
	log.Println("Migration completed")
}
