package utils

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// ErrNoDatabaseURL is returned when DATABASE_URL is missing from both .env and the environment.
var ErrNoDatabaseURL = errors.New("DATABASE_URL not set (in .env or environment)")

// LoadEnv loads .env from the working directory when present. Variables
// already set in the environment win.
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("ℹ️  No .env file found, continuing...")
	}
}

func GetDatabaseURL() (string, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return "", ErrNoDatabaseURL
	}
	return url, nil
}
