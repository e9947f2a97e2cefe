package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/gca-community/gcapi-go/internal/cli"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, buildTime)
	cli.Execute()
}
