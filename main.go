package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"figrelay/pkg/cli"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
