package main

import (
	"cs-balancer/balancer"
	"cs-balancer/config"
	"cs-balancer/formatter"
	"cs-balancer/metrics"
	"cs-balancer/parser"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Define flags, defaulting to config values
	input := flag.String("input", "", "Input CSV file (required)")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "Output format: text|json|csv")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Address to expose Prometheus metrics (e.g., :9090)")
	flag.StringVar(&cfg.PushURL, "push-url", cfg.PushURL, "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("run_id", runID).Logger()

	// Start metrics server if address provided
	if cfg.MetricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics server listening on /metrics")
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				logger.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	// Validate required input flag
	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input flag is required")
		fmt.Fprintln(os.Stderr, "\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	file, err := os.Open(*input)
	if err != nil {
		logger.Fatal().Err(err).Str("input", *input).Msg("error opening file")
	}
	defer file.Close()

	data, err := parser.Parse(file)
	if err != nil {
		logger.Fatal().Err(err).Str("input", *input).Msg("error parsing file")
	}
	logger.Debug().
		Int("customer_success", len(data.CustomerSuccess)).
		Int("customers", len(data.Customers)).
		Int("away", len(data.Away)).
		Msg("input parsed")

	result := balancer.Balance(*data)
	logger.Info().
		Int("winner_id", result.WinnerID).
		Int("available", len(result.Available)).
		Int("unmatched", result.Unmatched).
		Msg("balancing complete")

	switch cfg.Format {
	case "json":
		fmt.Println(formatter.FormatJSON(result))
	case "csv":
		fmt.Print(formatter.FormatCSV(result))
	default: // "text"
		fmt.Print(formatter.FormatText(result))
	}

	// Handle metrics pushing or waiting
	if cfg.PushURL != "" {
		err := push.New(cfg.PushURL, cfg.PushJob).
			Gatherer(metrics.Registry).
			Grouping("run_id", runID).
			Push()
		if err != nil {
			logger.Error().Err(err).Str("push_url", cfg.PushURL).Msg("error pushing to Pushgateway")
		} else {
			logger.Info().Str("push_url", cfg.PushURL).Msg("metrics pushed to Pushgateway")
		}
	}

	if *wait && cfg.MetricsAddr != "" {
		logger.Info().Msg("process kept alive for metric scraping, press Ctrl+C to exit")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logger.Info().Msg("exiting")
	} else if cfg.MetricsAddr != "" && cfg.PushURL == "" {
		// Small delay to allow a final scrape; batch runs should push or wait
		time.Sleep(100 * time.Millisecond)
	}
}
