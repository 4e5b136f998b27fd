package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"dr-baseline/internal/baseline"
	"dr-baseline/internal/config"
	"dr-baseline/internal/model"
	"dr-baseline/internal/reward"
	"dr-baseline/internal/store"
)

// Demo:
// - Seed an in-memory store with 15-minute interval readings for the
//   trailing 90 days (flat base load with an evening trough)
// - Compute the day-select CBL for a 16:00-20:00 event
// - Compute the reward for a committed 25 kW reduction
func main() {
	customer := flag.String("customer", "demo-customer", "Customer id to seed")
	committed := flag.Float64("committed", 25, "Committed reduction capacity kW")
	seed := flag.Int64("seed", 42, "Random seed for generated readings")
	flag.Parse()

	cfg := config.Default()
	loc, err := cfg.Location()
	if err != nil {
		panic(err)
	}
	blCfg, err := cfg.BaselineEngineConfig()
	if err != nil {
		panic(err)
	}

	// A Monday in season; the trailing 90 days stay inside it too.
	eventStart := time.Date(2024, time.July, 15, 16, 0, 0, 0, loc)
	eventEnd := time.Date(2024, time.July, 15, 20, 0, 0, 0, loc)

	rng := rand.New(rand.NewSource(*seed))
	st := store.NewMemoryStore()
	if _, err := st.Put(generateReadings(rng, *customer, eventStart, loc)...); err != nil {
		panic(err)
	}

	blEngine, err := baseline.New(st, blCfg)
	if err != nil {
		panic(err)
	}
	rwEngine, err := reward.New(blEngine, cfg.RewardEngineConfig())
	if err != nil {
		panic(err)
	}

	event := model.Event{CustomerID: *customer, Start: eventStart, End: eventEnd}
	result, err := rwEngine.ComputeReward(event, *committed)
	if err != nil {
		panic(err)
	}

	bl := result.Baseline
	fmt.Printf("event:             %s to %s\n",
		eventStart.Format(time.RFC3339), eventEnd.Format(time.RFC3339))
	fmt.Printf("baseline days:     %d (first %s, last %s)\n",
		len(bl.BaselineSourceDays),
		bl.BaselineSourceDays[0], bl.BaselineSourceDays[len(bl.BaselineSourceDays)-1])
	fmt.Printf("cbl1:              %.3f kW\n", bl.CBL1KW)
	fmt.Printf("adjustment factor: %.3f kW\n", bl.AdjustmentFactorKW)
	fmt.Printf("cbl:               %.3f kW\n", bl.CBLKW)
	fmt.Printf("actual avg:        %.3f kW\n", result.ActualAvgKW)
	fmt.Printf("actual reduction:  %.3f kW\n", result.ActualReductionKW)
	fmt.Printf("execution rate:    %.3f\n", result.ExecutionRate)
	fmt.Printf("reduction ratio:   %.1f\n", result.ReductionRatio)
	fmt.Printf("reward:            %.2f (%.1fh at %.2f)\n",
		result.RewardAmount, result.DurationHours, result.TariffRate)
}

// generateReadings produces 15-minute samples for the 90 days before the
// event plus the event day itself. Historical days run a ~100 kW base
// load; on the event day the customer curtails to ~75 kW during the
// event window.
func generateReadings(rng *rand.Rand, customer string, eventStart time.Time, loc *time.Location) []model.DemandSample {
	var out []model.DemandSample

	eventDay := time.Date(eventStart.Year(), eventStart.Month(), eventStart.Day(), 0, 0, 0, 0, loc)
	for offset := 90; offset >= 0; offset-- {
		day := eventDay.AddDate(0, 0, -offset)
		base := 100 + float64(rng.Intn(11)-5)
		curtailed := 75 + float64(rng.Intn(7)-3)

		for slot := time.Duration(0); slot < 24*time.Hour; slot += 15 * time.Minute {
			ts := day.Add(slot)
			kw := base
			if offset == 0 && ts.Hour() >= eventStart.Hour() && ts.Hour() < 20 {
				kw = curtailed
			}
			out = append(out, model.DemandSample{
				CustomerID: customer,
				Timestamp:  ts,
				DemandKW:   kw,
			})
		}
	}
	return out
}
