// Package main provides the entry point for the pdf-automation CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"pdf-edit-automation/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	app := cli.New()
	if err := app.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
