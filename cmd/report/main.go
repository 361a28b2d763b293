package main

import (
	"context"
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
	log := logging.NewLogger("report")
	config.LoadEnv(log)

	paths := store.Paths{DataDir: config.GetEnv("MONITOR_DATA_DIR", "data")}

	var alerts []types.Alert
	var batches []types.FetchBatch
	if _, err := store.ReadJSON(paths.Alerts(), &alerts); err != nil {
		log.WithError(err).Fatal("load alert log")
	}
	if _, err := store.ReadJSON(paths.Tweets(), &batches); err != nil {
		log.WithError(err).Fatal("load tweet log")
	}
	log.Infof("loaded %d alerts, %d tweet batches", len(alerts), len(batches))

	var health map[string]int
	if statusURL := os.Getenv("STATUS_URL"); statusURL != "" {
		log.Infof("checking status server at %s", statusURL)
		health = intel.CheckHealth(context.Background(), statusURL)
	}

	report := intel.Report(alerts, batches, health, time.Now())

	if err := os.MkdirAll(paths.DataDir, 0o755); err != nil {
		log.WithError(err).Fatal("create data dir")
	}
	path := filepath.Join(paths.DataDir, "daily-report.md")
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		log.WithError(err).Fatal("write report")
	}
	log.Infof("report written to %s", path)
	fmt.Println(report)
}
