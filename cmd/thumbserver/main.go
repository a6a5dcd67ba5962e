package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mediawall/mediawall/internal/devserver"
)

const (
	DefaultAddr = ":8787"

	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
)

func main() {
	addr := flag.String("addr", DefaultAddr, "listen address")
	warmup := flag.Int("warmup", devserver.DefaultWarmupRequests, "202 responses before first 200 per thumbnail")
	rate := flag.Int("rate", devserver.DefaultRatePerSecond, "accepted requests per second before 429")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := log.InfoLevel
	if *verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	server := devserver.New(
		devserver.WithWarmup(*warmup),
		devserver.WithRate(*rate),
		devserver.WithLogger(logger),
	)

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server.Router(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	logger.Info("thumbnail dev server listening", "addr", *addr, "warmup", *warmup, "rate", *rate)
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
