package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ecommerce-adminapp/adminctl/internal/cli"
	"github.com/ecommerce-adminapp/adminctl/internal/config"
)

var version = "dev"

func main() {
	// ADMINCTL_* variables may come from a local .env
	_ = godotenv.Load()

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
