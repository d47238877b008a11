package infra

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Initialize .envを読み込む。ENV_FILEで読み込むファイルを切り替えられる
func Initialize() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file found; using environment variables", envFile)
	}
}
