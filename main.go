package main

import (
	"context"
	"log"

	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/app"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/config"
)

func main() {
	// Load config from .env file
	cfg := config.LoadFromEnv()

	// Create and run the pricing pipeline
	application := app.New(cfg)
	if err := application.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
}
