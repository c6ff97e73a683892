package main

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/altekov/authorsite"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	var opts authorsite.Options
	if err := env.Parse(&opts); err != nil {
		log.Fatalf("parse environment: %v", err)
	}

	app := authorsite.New(opts)
	defer app.Close()
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
