package reward

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"dr-baseline/internal/baseline"
	"dr-baseline/internal/model"
)

// Tariff maps an event duration to a currency rate per kW of committed
// reduction per hour.
type Tariff struct {
	DurationHours float64
	Rate          float64
}

// Config holds the reward parameters. Duration matching is exact up to
// DurationToleranceHours.
type Config struct {
	Tariffs                []Tariff
	DurationToleranceHours float64
}

// DefaultTariffs is the contractual duration-rate table.
func DefaultTariffs() []Tariff {
	return []Tariff{
		{DurationHours: 2, Rate: 2.47},
		{DurationHours: 4, Rate: 1.84},
		{DurationHours: 6, Rate: 1.69},
	}
}

func (c Config) Validate() error {
	if len(c.Tariffs) == 0 {
		return errors.New("reward config: at least one tariff is required")
	}
	for _, t := range c.Tariffs {
		if t.DurationHours <= 0 || t.Rate <= 0 {
			return errors.New("reward config: tariff durations and rates must be > 0")
		}
	}
	if c.DurationToleranceHours < 0 {
		return errors.New("reward config: DurationToleranceHours must be >= 0")
	}
	return nil
}

// Result is the reward derivation with the full baseline detail embedded.
type Result struct {
	Baseline *baseline.Result

	ActualAvgKW       float64
	ActualReductionKW float64
	ExecutionRate     float64
	ReductionRatio    float64
	TariffRate        float64
	DurationHours     float64
	RewardAmount      float64
}

// Engine monetizes DR events. It always recomputes the baseline through
// the baseline engine first; it never takes a CBL from the caller.
type Engine struct {
	baseline *baseline.Engine
	cfg      Config
}

func New(bl *baseline.Engine, cfg Config) (*Engine, error) {
	if bl == nil {
		return nil, errors.New("baseline engine is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{baseline: bl, cfg: cfg}, nil
}

func (e *Engine) Tariffs() []Tariff { return e.cfg.Tariffs }

// ComputeReward derives the incentive payment for one event. Baseline
// failures propagate unchanged.
func (e *Engine) ComputeReward(event model.Event, committedCapacityKW float64) (*Result, error) {
	bl, err := e.baseline.ComputeCBL(event)
	if err != nil {
		return nil, err
	}

	if committedCapacityKW <= 0 {
		return nil, model.NewFailure(model.InvalidCommitment,
			"committed capacity must be positive, got %.3f kW", committedCapacityKW)
	}

	actualAvg := e.baseline.EventDayAverage(event)

	reduction := bl.CBLKW - actualAvg
	if reduction < 0 {
		reduction = 0
	}

	rate := executionRate(reduction, committedCapacityKW)
	ratio := reductionRatio(rate)

	duration := event.DurationHours()
	tariff, err := e.lookupTariff(duration)
	if err != nil {
		return nil, err
	}

	// Money math in decimal so the published worked examples reproduce
	// exactly (e.g. 100 * 0.85 * 4 * 1.84 * 1.0 = 625.6).
	amount := decimal.NewFromFloat(committedCapacityKW).
		Mul(decimal.NewFromFloat(rate)).
		Mul(decimal.NewFromFloat(duration)).
		Mul(decimal.NewFromFloat(tariff.Rate)).
		Mul(decimal.NewFromFloat(ratio))

	return &Result{
		Baseline:          bl,
		ActualAvgKW:       actualAvg,
		ActualReductionKW: reduction,
		ExecutionRate:     rate,
		ReductionRatio:    ratio,
		TariffRate:        tariff.Rate,
		DurationHours:     duration,
		RewardAmount:      amount.InexactFloat64(),
	}, nil
}

// executionRate is achieved reduction over committed reduction, rounded
// as a percentage to one decimal place (half away from zero) and capped
// at 120%.
func executionRate(reductionKW, committedKW float64) float64 {
	pct := decimal.NewFromFloat(reductionKW).
		Div(decimal.NewFromFloat(committedKW)).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	rate := pct.Div(decimal.NewFromInt(100)).InexactFloat64()
	if rate > 1.2 {
		return 1.2
	}
	return rate
}

// reductionRatio applies the tier table: inclusive-lower, exclusive-upper
// except the top tier.
func reductionRatio(rate float64) float64 {
	switch {
	case rate < 0.6:
		return 0.0
	case rate < 0.8:
		return 0.8
	case rate < 0.95:
		return 1.0
	default:
		return 1.2
	}
}

func (e *Engine) lookupTariff(durationHours float64) (Tariff, error) {
	for _, t := range e.cfg.Tariffs {
		if math.Abs(durationHours-t.DurationHours) <= e.cfg.DurationToleranceHours {
			return t, nil
		}
	}
	return Tariff{}, model.NewFailure(model.UnsupportedDuration,
		"event duration %.2fh has no tariff; supported durations are %s",
		durationHours, supportedDurations(e.cfg.Tariffs))
}

func supportedDurations(tariffs []Tariff) string {
	out := ""
	for i, t := range tariffs {
		if i > 0 {
			out += ", "
		}
		out += decimal.NewFromFloat(t.DurationHours).String() + "h"
	}
	return out
}
