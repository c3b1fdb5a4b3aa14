package pricing

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/cache"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/llm"
	"github.com/jmuskaan72/GenAI-powered-Battery-Pricing-Indicator/telemetry"
)

// Analyst is the model-call boundary: one synchronous text generation per
// prompt. *llm.Client satisfies it; tests substitute fakes.
type Analyst interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

const (
	// DefaultWorkers bounds the pricing pool width.
	DefaultWorkers = 5
	// DefaultCallTimeout bounds each model call so a hung batch cannot
	// block forever.
	DefaultCallTimeout = 45 * time.Second
	// DefaultForecastVehicles caps the comparison chart fan-out.
	DefaultForecastVehicles = 5

	reportTTL = 6 * time.Hour
)

// Orchestrator prices a fleet: for each vehicle it builds the prompt, calls
// the model, extracts values, and merges the rows back into one table. The
// whole-batch result is memoized by the content hash of the summary table;
// singleflight collapses concurrent requests for the same upload into a
// single computation.
type Orchestrator struct {
	analyst Analyst
	spec    llm.StaticSpec
	reports *cache.PriceCache
	workers int
	timeout time.Duration

	group   singleflight.Group
	mu      sync.Mutex
	memoKey string
	memo    []VehiclePrice
}

// NewOrchestrator creates a pricing orchestrator. Zero workers or timeout
// select the defaults.
func NewOrchestrator(analyst Analyst, spec llm.StaticSpec, reports *cache.PriceCache, workers int, timeout time.Duration) *Orchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	if reports == nil {
		reports = cache.NewPriceCache(nil)
	}
	return &Orchestrator{
		analyst: analyst,
		spec:    spec,
		reports: reports,
		workers: workers,
		timeout: timeout,
	}
}

// PriceAllVehicles produces one VehiclePrice per summary, sorted by vehicle
// identifier. One vehicle's failure never fails the batch; its row simply
// carries no current price. The call blocks until every vehicle finishes.
func (o *Orchestrator) PriceAllVehicles(ctx context.Context, summaries []telemetry.UsageSummary) []VehiclePrice {
	if len(summaries) == 0 {
		return nil
	}

	hash := cache.DataHash(summaries)
	o.mu.Lock()
	if o.memoKey == hash {
		memo := o.memo
		o.mu.Unlock()
		return memo
	}
	o.mu.Unlock()

	v, _, _ := o.group.Do(hash, func() (interface{}, error) {
		prices := o.priceBatch(ctx, summaries)
		o.mu.Lock()
		o.memoKey = hash
		o.memo = prices
		o.mu.Unlock()
		return prices, nil
	})
	return v.([]VehiclePrice)
}

func (o *Orchestrator) priceBatch(ctx context.Context, summaries []telemetry.UsageSummary) []VehiclePrice {
	workers := o.workers
	if workers > len(summaries) {
		workers = len(summaries)
	}

	jobs := make(chan int)
	results := make([]VehiclePrice, len(summaries))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = o.PriceVehicle(ctx, summaries[i])
			}
		}()
	}
	for i := range summaries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Summary.VehicleID < results[j].Summary.VehicleID
	})
	return results
}

// PriceVehicle prices a single vehicle. Model-call and parse failures are
// logged here and degrade to a row without a current price; they never
// propagate.
func (o *Orchestrator) PriceVehicle(ctx context.Context, summary telemetry.UsageSummary) VehiclePrice {
	price := VehiclePrice{Summary: summary, Values: PriceValues{}}

	report, err := o.priceReport(ctx, summary)
	if err != nil {
		log.Printf("⚠️  Pricing %s: no report produced: %v", summary.VehicleID, err)
		return price
	}

	price.Values = ExtractPriceValues(report)
	if v, ok := price.Values.Float(KeyCurrentValue); ok {
		price.CurrentPrice = &v
	}
	return price
}

// priceReport returns the raw pricing response for one vehicle, serving from
// the report cache while the summary content is unchanged.
func (o *Orchestrator) priceReport(ctx context.Context, summary telemetry.UsageSummary) (string, error) {
	hash := cache.DataHash(summary)
	if cached, ok := o.reports.Get(ctx, summary.VehicleID, hash); ok {
		return cached.Report, nil
	}

	prompt := llm.BuildPricingPrompt(o.spec, summary)
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	report, err := o.analyst.Analyze(callCtx, prompt)
	if err != nil {
		return "", err
	}

	o.reports.Set(ctx, summary.VehicleID, hash, cache.PriceReport{
		VehicleID:   summary.VehicleID,
		Report:      report,
		GeneratedAt: time.Now(),
	}, reportTTL)
	return report, nil
}

// ForecastAllVehicles builds forecast curves for the first maxVehicles
// summaries (default 5), one goroutine per vehicle. Horizons the model never
// mentioned stay nil in the curve.
func (o *Orchestrator) ForecastAllVehicles(ctx context.Context, summaries []telemetry.UsageSummary, maxVehicles int) []VehicleForecast {
	if maxVehicles <= 0 {
		maxVehicles = DefaultForecastVehicles
	}
	if len(summaries) > maxVehicles {
		summaries = summaries[:maxVehicles]
	}

	results := make([]VehicleForecast, len(summaries))
	var wg sync.WaitGroup
	for i := range summaries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			price := o.PriceVehicle(ctx, summaries[i])
			forecast := VehicleForecast{
				VehicleID: summaries[i].VehicleID,
				Curve:     price.Values.ForecastCurve(),
			}
			if c, ok := price.Values.Float(KeyConfidenceLevel); ok {
				forecast.Confidence = &c
			}
			results[i] = forecast
		}(i)
	}
	wg.Wait()
	return results
}

// DetailedReport bundles the raw response with everything recoverable from
// it for a single vehicle's assessment view.
type DetailedReport struct {
	VehicleID string
	Report    string
	Values    PriceValues
	Breakdown *PricingBreakdown
}

// DetailedPriceReport produces the full single-vehicle assessment: the raw
// report, the pattern-scanned values, and the nested breakdown when the
// response happened to be well-formed JSON.
func (o *Orchestrator) DetailedPriceReport(ctx context.Context, summary telemetry.UsageSummary) (*DetailedReport, error) {
	report, err := o.priceReport(ctx, summary)
	if err != nil {
		log.Printf("⚠️  Detailed pricing %s: no report produced: %v", summary.VehicleID, err)
		return nil, err
	}

	detail := &DetailedReport{
		VehicleID: summary.VehicleID,
		Report:    report,
		Values:    ExtractPriceValues(report),
	}
	if breakdown, err := ParsePricingBreakdown(report); err == nil {
		detail.Breakdown = breakdown
	}
	return detail, nil
}

// RepurposeOptions asks for second-life product options for one vehicle.
// The strict parser rejects malformed payloads wholesale; callers surface
// that as "no options found".
func (o *Orchestrator) RepurposeOptions(ctx context.Context, summary telemetry.UsageSummary, currentPrice float64) ([]RepurposeOption, error) {
	prompt := llm.BuildRepurposePrompt(summary, currentPrice)
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	report, err := o.analyst.Analyze(callCtx, prompt)
	if err != nil {
		log.Printf("⚠️  Repurposing %s: no report produced: %v", summary.VehicleID, err)
		return nil, err
	}
	return ParseRepurposeOptions(report)
}

// MarketNewsHeadlines fetches the fleet battery price headlines.
func (o *Orchestrator) MarketNewsHeadlines(ctx context.Context) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	news, err := o.analyst.Analyze(callCtx, llm.MarketNewsPrompt)
	if err != nil {
		log.Printf("⚠️  Market news: no report produced: %v", err)
		return "", err
	}
	return news, nil
}
