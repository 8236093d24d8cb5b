package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the current working directory if one exists.
// A missing file is not an error; explicit environment variables win either way.
func LoadEnv() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(envPath)
}
