package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/cache"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/config"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/helpers"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/llm"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/pricing"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/telemetry"
)

// App represents the main application
type App struct {
	config       *config.Config
	redis        *cache.RedisClient
	spec         llm.StaticSpec
	orchestrator *pricing.Orchestrator
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

// Start runs the batch pipeline: telemetry in, aggregate CSVs out, then the
// fleet pricing table. Display collaborators (dashboards) reuse the same
// App methods instead of this entry point.
func (a *App) Start(ctx context.Context) error {
	spec, err := llm.LoadStaticSpec(a.config.BatterySpecFile)
	if err != nil {
		return fmt.Errorf("battery spec: %w", err)
	}
	a.spec = spec

	fmt.Println("🧠 Connecting to Redis...")
	a.redis = cache.NewRedisClient(a.config.RedisHost, a.config.RedisPort, a.config.RedisPassword)
	if a.redis == nil {
		fmt.Println("⚠️  Redis unavailable, price reports cached in-memory only")
	}
	defer a.redis.Close()

	client := llm.NewClient(a.config.LLM.Endpoint, a.config.LLM.APIKey, a.config.LLM.Model)
	a.orchestrator = pricing.NewOrchestrator(
		client,
		a.spec,
		cache.NewPriceCache(a.redis),
		a.config.Pricing.Workers,
		time.Duration(a.config.LLM.TimeoutSeconds)*time.Second,
	)

	if a.config.SourceFile == "" {
		return fmt.Errorf("TELEMETRY_FILE not set")
	}

	fmt.Printf("🔋 Loading telemetry from %s...\n", a.config.SourceFile)
	table, err := telemetry.LoadCSVFile(a.config.SourceFile)
	if err != nil {
		return err
	}

	summaries := telemetry.Summarize(table.Records)
	fmt.Printf("🚙 %d vehicles in the source data\n", len(summaries))

	if err := telemetry.WriteAggregates(table, a.config.OutputDir); err != nil {
		return fmt.Errorf("aggregates: %w", err)
	}
	fmt.Printf("📊 Daily and hourly aggregates written to %s\n", a.config.OutputDir)

	fmt.Println("💰 Pricing all vehicles...")
	prices := a.orchestrator.PriceAllVehicles(ctx, summaries)
	printPricingTable(prices)

	if a.config.Pricing.MarketNews {
		if news, err := a.orchestrator.MarketNewsHeadlines(ctx); err == nil {
			fmt.Println("💹 Battery pricing market trends:")
			fmt.Println(news)
		}
	}

	return nil
}

// Orchestrator exposes the pricing pipeline to display collaborators.
func (a *App) Orchestrator() *pricing.Orchestrator {
	return a.orchestrator
}

// StaticSpec returns the loaded battery datasheet.
func (a *App) StaticSpec() llm.StaticSpec {
	return a.spec
}

func printPricingTable(prices []pricing.VehiclePrice) {
	for _, p := range prices {
		current := "not available"
		if p.CurrentPrice != nil {
			current = helpers.FormatRupee(*p.CurrentPrice)
		}
		soh := "not available"
		if p.Summary.MeanSOH != nil {
			soh = fmt.Sprintf("%.2f%%", *p.Summary.MeanSOH)
		}
		fmt.Printf("  %-16s SOH %-14s excursions %-4d price %s\n",
			p.Summary.VehicleID, soh, p.Summary.TemperatureExcursions, current)
	}
}
