package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"warroom-monitor/internal/config"
	"warroom-monitor/internal/intel"
	"warroom-monitor/internal/logging"
	"warroom-monitor/internal/store"
	"warroom-monitor/internal/types"
)

func main() {
	log := logging.NewLogger("analyst")
	config.LoadEnv(log)

	critical := flag.Bool("critical", false, "brief recent high/critical alerts instead of the daily digest")
	flag.Parse()

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENROUTER_API_KEY is required")
	}

	paths := store.Paths{DataDir: config.GetEnv("MONITOR_DATA_DIR", "data")}
	intelDir := config.GetEnv("INTEL_DIR", "intel")

	var alerts []types.Alert
	var batches []types.FetchBatch
	if _, err := store.ReadJSON(paths.Alerts(), &alerts); err != nil {
		log.WithError(err).Fatal("load alert log")
	}
	if _, err := store.ReadJSON(paths.Tweets(), &batches); err != nil {
		log.WithError(err).Fatal("load tweet log")
	}
	log.Infof("loaded %d alerts, %d tweet batches", len(alerts), len(batches))

	if err := os.MkdirAll(intelDir, 0o755); err != nil {
		log.WithError(err).Fatal("create intel dir")
	}

	client := intel.NewOpenRouterClient(apiKey, config.GetEnv("OPENROUTER_MODEL", ""))
	ctx := context.Background()
	now := time.Now()

	if *critical {
		recent := intel.RecentCritical(alerts, now)
		if len(recent) == 0 {
			log.Info("no critical alerts in the last hour")
			return
		}
		for i, a := range recent {
			log.Infof("analyzing %s from %s", a.Type, a.Source)
			brief, err := intel.CriticalBrief(ctx, client, a)
			if err != nil {
				log.WithError(err).Error("critical brief failed")
				continue
			}
			name := fmt.Sprintf("critical-%s-%d.md", now.UTC().Format("2006-01-02T15-04-05"), i+1)
			path := filepath.Join(intelDir, name)
			if err := os.WriteFile(path, []byte(brief), 0o644); err != nil {
				log.WithError(err).Error("write critical brief")
				continue
			}
			log.Infof("critical brief written to %s", path)
			fmt.Println(brief)
		}
		return
	}

	log.Info("generating daily strategic brief")
	brief, err := intel.DailyBrief(ctx, client, alerts, batches, now)
	if err != nil {
		log.WithError(err).Fatal("daily brief failed")
	}

	path := filepath.Join(intelDir, fmt.Sprintf("brief-%s.md", now.UTC().Format("2006-01-02")))
	if err := os.WriteFile(path, []byte(brief), 0o644); err != nil {
		log.WithError(err).Fatal("write brief")
	}
	log.Infof("brief written to %s", path)
	fmt.Println(brief)
}
