package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/meetsearch/internal/adapters/driving/cli"
)

func main() {
	// Load .env if present (for API keys).
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
