package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"dr-baseline/internal/baseline"
	"dr-baseline/internal/config"
	"dr-baseline/internal/model"
	"dr-baseline/internal/reward"
	"dr-baseline/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "cbl":
		cmdCBL(os.Args[2:])
	case "reward":
		cmdReward(os.Args[2:])
	case "eligibility":
		cmdEligibility(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli cbl --data meter_data.json --customer cust-1 --start 2024-07-15T16:00:00+08:00 --end 2024-07-15T20:00:00+08:00 [--contract 500]")
	fmt.Println("  cli reward --data meter_data.json --customer cust-1 --start ... --end ... --committed 100 [--contract 500]")
	fmt.Println("  cli eligibility --data meter_data.json --customer cust-1 --start ... --end ... [--out results/days.csv]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - timestamps are RFC3339; they are normalized to the configured timezone")
	fmt.Println("  - pass --config to override selection thresholds, season, off-peak days, tariffs")
}

type commonFlags struct {
	dataPath string
	cfgPath  string
	customer string
	start    string
	end      string
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.StringVar(&cf.dataPath, "data", "meter_data.json", "Path to meter readings JSON")
	fs.StringVar(&cf.cfgPath, "config", "", "Path to YAML config (optional)")
	fs.StringVar(&cf.customer, "customer", "", "Customer id")
	fs.StringVar(&cf.start, "start", "", "Event start (RFC3339)")
	fs.StringVar(&cf.end, "end", "", "Event end (RFC3339)")
	return cf
}

func (cf *commonFlags) event() model.Event {
	if cf.customer == "" || cf.start == "" || cf.end == "" {
		fmt.Println("--customer, --start and --end are required")
		os.Exit(2)
	}
	start, err := time.Parse(time.RFC3339, cf.start)
	if err != nil {
		fatalf("invalid --start: %v", err)
	}
	end, err := time.Parse(time.RFC3339, cf.end)
	if err != nil {
		fatalf("invalid --end: %v", err)
	}
	return model.Event{CustomerID: cf.customer, Start: start, End: end}
}

func (cf *commonFlags) loadConfig() *config.Config {
	if cf.cfgPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(cf.cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	return cfg
}

func (cf *commonFlags) buildBaseline(cfg *config.Config) *baseline.Engine {
	blCfg, err := cfg.BaselineEngineConfig()
	if err != nil {
		fatalf("config: %v", err)
	}
	file, err := store.LoadMeterJSON(cf.dataPath)
	if err != nil {
		fatalf("load meter data: %v", err)
	}
	st := store.NewMemoryStore()
	if _, err := st.Put(file.Records...); err != nil {
		fatalf("ingest meter data: %v", err)
	}
	engine, err := baseline.New(st, blCfg)
	if err != nil {
		fatalf("build engine: %v", err)
	}
	return engine
}

func cmdCBL(args []string) {
	fs := flag.NewFlagSet("cbl", flag.ExitOnError)
	cf := addCommonFlags(fs)
	contract := fs.Float64("contract", 0, "Contract capacity kW (0 = no cap)")
	_ = fs.Parse(args)

	event := cf.event()
	if *contract > 0 {
		event.ContractCapacityKW = contract
	}

	engine := cf.buildBaseline(cf.loadConfig())
	result, err := engine.ComputeCBL(event)
	if err != nil {
		fatalf("%v", err)
	}

	printBaseline(result)
}

func cmdReward(args []string) {
	fs := flag.NewFlagSet("reward", flag.ExitOnError)
	cf := addCommonFlags(fs)
	committed := fs.Float64("committed", 0, "Committed reduction capacity kW")
	contract := fs.Float64("contract", 0, "Contract capacity kW (0 = no cap)")
	_ = fs.Parse(args)

	event := cf.event()
	if *contract > 0 {
		event.ContractCapacityKW = contract
	}

	cfg := cf.loadConfig()
	blEngine := cf.buildBaseline(cfg)
	engine, err := reward.New(blEngine, cfg.RewardEngineConfig())
	if err != nil {
		fatalf("build reward engine: %v", err)
	}

	result, err := engine.ComputeReward(event, *committed)
	if err != nil {
		fatalf("%v", err)
	}

	printBaseline(result.Baseline)
	fmt.Println("")
	fmt.Printf("actual avg:        %.3f kW\n", result.ActualAvgKW)
	fmt.Printf("actual reduction:  %.3f kW\n", result.ActualReductionKW)
	fmt.Printf("execution rate:    %.3f\n", result.ExecutionRate)
	fmt.Printf("reduction ratio:   %.1f\n", result.ReductionRatio)
	fmt.Printf("tariff rate:       %.2f (%.1fh event)\n", result.TariffRate, result.DurationHours)
	fmt.Printf("reward amount:     %.2f\n", result.RewardAmount)
}

func cmdEligibility(args []string) {
	fs := flag.NewFlagSet("eligibility", flag.ExitOnError)
	cf := addCommonFlags(fs)
	outPath := fs.String("out", "", "Optional path to write per-day CSV")
	_ = fs.Parse(args)

	engine := cf.buildBaseline(cf.loadConfig())
	rows, err := engine.ScanEligibility(cf.event())
	if err != nil {
		fatalf("%v", err)
	}

	qualified := baseline.QualifiedCount(rows)
	fmt.Printf("scanned %d days, %d qualified (need %d)\n",
		len(rows), qualified, engine.Config().MinBaselineDays)
	for _, r := range rows {
		fmt.Printf("  %s  %-13s samples=%-4d avg=%.3f kW\n",
			r.Date, r.Status, r.SampleCount, r.WindowAvgKW)
	}

	if *outPath != "" {
		if err := baseline.WriteEligibilityCSV(*outPath, rows); err != nil {
			fatalf("write csv: %v", err)
		}
		fmt.Printf("wrote %s\n", *outPath)
	}
}

func printBaseline(r *baseline.Result) {
	fmt.Printf("customer:          %s\n", r.CustomerID)
	fmt.Printf("event window:      %s to %s\n",
		r.EventStart.Format(time.RFC3339), r.EventEnd.Format(time.RFC3339))
	fmt.Printf("cbl:               %.3f kW\n", r.CBLKW)
	fmt.Printf("cbl1:              %.3f kW\n", r.CBL1KW)
	fmt.Printf("adjustment factor: %.3f kW (hist %.3f, today %.3f)\n",
		r.AdjustmentFactorKW, r.HistAdjustAvgKW, r.TodayAdjustAvgKW)
	fmt.Printf("cbl1 + af:         %.3f kW\n", r.CBL1PlusAFKW)
	fmt.Printf("cbl2 (cap):        %.3f kW\n", r.CBL2KW)
	fmt.Printf("baseline days:     ")
	for i, d := range r.BaselineSourceDays {
		if i > 0 {
			fmt.Printf(", ")
		}
		fmt.Printf("%s", d)
	}
	fmt.Println("")
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
