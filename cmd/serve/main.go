package main

import (
	"net/http"

	"warroom-monitor/internal/config"
	"warroom-monitor/internal/httpserver"
	"warroom-monitor/internal/logging"
	"warroom-monitor/internal/store"
)

func main() {
	log := logging.NewLogger("serve")
	config.LoadEnv(log)

	port := config.GetEnv("PORT", "8080")
	paths := store.Paths{DataDir: config.GetEnv("MONITOR_DATA_DIR", "data")}

	srv := httpserver.NewServer(port, paths)
	log.Infof("status server listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server error")
	}
}
