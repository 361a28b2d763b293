package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"warroom-monitor/internal/accounts"
	"warroom-monitor/internal/config"
	"warroom-monitor/internal/logging"
	"warroom-monitor/internal/monitor"
	"warroom-monitor/internal/store"
	"warroom-monitor/internal/twitter"
	"warroom-monitor/internal/types"
	"warroom-monitor/internal/xapi"
)

func main() {
	log := logging.NewLogger("monitor")
	config.LoadEnv(log)

	loop := flag.Bool("loop", false, "run continuously with a fixed delay between cycles")
	flag.Parse()

	apiKey := os.Getenv("X_API_KEY")
	if apiKey == "" {
		log.Fatal("X_API_KEY is required")
	}

	interval := config.GetEnvDuration("MONITOR_INTERVAL", 5*time.Minute)
	paths := store.Paths{DataDir: config.GetEnv("MONITOR_DATA_DIR", "data")}

	client := xapi.NewClient(config.GetEnv("X_API_BASE", ""), apiKey)
	m := monitor.New(client.UserTweets, paths, log)

	creds := twitter.Credentials{
		ConsumerKey:    os.Getenv("X_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("X_CONSUMER_SECRET"),
		AccessToken:    os.Getenv("X_ACCESS_TOKEN"),
		AccessSecret:   os.Getenv("X_ACCESS_SECRET"),
	}
	if creds.Complete() {
		post := twitter.NewPoster(config.GetEnv("X_POST_BASE", "https://api.twitter.com/2"), creds)
		m.PostAlert = func(ctx context.Context, a types.Alert) error {
			return post(ctx, a.Summary)
		}
		log.Info("critical alert posting enabled")
	}

	log.WithFields(logrus.Fields{
		"accounts": len(accounts.All()),
		"loop":     *loop,
		"interval": interval.String(),
	}).Info("war room monitor starting")

	if err := m.Run(context.Background(), *loop, interval); err != nil {
		log.WithError(err).Fatal("monitor failed")
	}
	log.Info("monitor complete")
}
