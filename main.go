package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable detailed debug logging")
	headless := flag.Bool("headless", false, "Run the browser without a window")
	metricsFile := flag.String("metrics-file", "", "Write run metrics in Prometheus text format to this file")
	flag.Parse()

	if err := InitLocale(); err != nil {
		log.Printf("Warning: Locale initialization failed, using message keys: %v", err)
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *debug {
		config.DebugMode = true
	}
	if *headless {
		config.Headless = true
	}
	if *metricsFile != "" {
		config.MetricsFile = *metricsFile
	}

	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║             RobotSpareBin Order Automation                ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Order site: %s\n", config.OrderSiteURL)
	fmt.Printf("Order feed: %s\n", config.OrdersCSVURL)
	if config.DebugMode {
		fmt.Println("🔍 DEBUG MODE - Detailed logging enabled")
	}
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := NewRobotOrderRun(config).Run(ctx)
	if summary != nil && len(summary.Results) > 0 {
		summary.Print()
	}
	if err != nil {
		stop()
		log.Fatalf("Robot order run failed: %v", err)
	}
}
