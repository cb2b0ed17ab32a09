package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/pvwatch/growatt-go"
)

func main() {
	log := logrus.New()

	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	client := growatt.New(growatt.Config{
		ServerURL: cfg.ServerURL,
		Token:     cfg.Token,
		Logger:    log,
	})

	plantIDs := cfg.PlantIDs
	if len(plantIDs) == 0 {
		plants, err := client.Plant.List(nil)
		if err != nil {
			log.WithError(err).Fatal("failed to discover plants")
		}
		for _, p := range plants.Data.Plants {
			plantIDs = append(plantIDs, p.PlantID)
		}
	}
	if len(plantIDs) == 0 {
		log.Fatal("no plants configured or discovered")
	}
	log.WithField("plants", plantIDs).Info("starting growatt exporter")

	collector := NewCollector(client, plantIDs, log)
	prometheus.MustRegister(collector)

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "<html><body><h1>Growatt Exporter</h1><p>Monitoring %d plant(s)</p><p><a href=\"/metrics\">Metrics</a></p></body></html>", len(plantIDs))
	})

	log.WithField("port", cfg.Port).Info("listening")
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
