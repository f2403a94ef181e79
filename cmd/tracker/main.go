package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"BitcoinTracker/internal/chart"
	"BitcoinTracker/internal/collector"
	"BitcoinTracker/internal/config"
	"BitcoinTracker/internal/model"
	"BitcoinTracker/internal/pipeline"
	"BitcoinTracker/internal/recorder"
	"BitcoinTracker/internal/scheduler"
	"BitcoinTracker/internal/store"
)

func main() {
	os.Exit(run())
}

// run wires the tracker and returns the process exit code, so deferred
// cleanup (recorder close, scheduler stop) always happens before exit.
func run() int {
	once := flag.Bool("once", false, "run the pipeline once and exit")
	history := flag.Int("history", 0, "print the last N recorded runs and exit")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] BitcoinTracker starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	startDate, err := cfg.StartTime()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Storage.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Storage.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	if *history > 0 {
		if err := printHistory(os.Stdout, rec, *history); err != nil {
			log.Printf("[ERROR] read run history: %v", err)
			return 1
		}
		return 0
	}

	fetcher := collector.NewCoinGeckoFetcher(cfg.Source.URL, cfg.Source.Asset, cfg.Source.Currency, cfg.Proxy)
	log.Printf("[INFO] data source: %s (%s/%s)", fetcher.Name(), cfg.Source.Asset, cfg.Source.Currency)

	p := &pipeline.Pipeline{
		DAG:       cfg.Schedule.DAGID,
		Owner:     cfg.Schedule.Owner,
		Fetcher:   fetcher,
		Store:     store.NewParquetStore(cfg.Storage.StorePath),
		ImagePath: cfg.Storage.ImagePath,
		Chart:     chart.DefaultOptions(),
		Retry:     pipeline.RetryPolicy{Retries: cfg.Schedule.Retries, Delay: cfg.Schedule.RetryDelay},
		Recorder:  rec,
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		return runOnce(ctx, p)
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, p, startDate)
	if err := sched.Register(cfg.Schedule.Interval); err != nil {
		log.Printf("[FATAL] register pipeline: %v", err)
		return 1
	}
	sched.Start()
	defer sched.Stop()
	log.Printf("[INFO] next run at %s", sched.Next().Format("2006-01-02 15:04:05"))

	// Startup run is outside the cron chain; wait for it before the recorder closes.
	var wg sync.WaitGroup
	defer wg.Wait()
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing pipeline now")
		wg.Add(1)
		go func() {
			defer wg.Done()
			sched.RunNow()
		}()
	}

	log.Println("[INFO] BitcoinTracker is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Println("[INFO] shutdown signal received, stopping...")
	return 0
}

// runOnce executes a single pipeline run and maps its outcome to an exit code.
func runOnce(ctx context.Context, r scheduler.Runner) int {
	if _, err := r.Run(ctx); err != nil {
		log.Printf("[ERROR] run failed: %v", err)
		return 1
	}
	return 0
}

func printHistory(w io.Writer, rec recorder.Recorder, limit int) error {
	runs, err := rec.RecentRuns(limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		line := r.StartedAt.Format("2006-01-02 15:04:05") + "  " + string(r.Status)
		if r.Status == model.RunSucceeded {
			fmt.Fprintf(w, "%s  $%.2f  attempts=%d  %v\n", line, r.PriceUSD, r.Attempts, r.Duration())
		} else {
			fmt.Fprintf(w, "%s  attempts=%d  %s\n", line, r.Attempts, r.Error)
		}
	}
	return nil
}
