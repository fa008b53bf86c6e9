// Command etl runs the order/catalog batch pipeline: it loads the raw sales
// and product exports, anonymizes sensitive columns, normalizes the sales
// feed into order-header and line-item tables, cleans the catalog, enforces
// referential integrity, and writes the three semicolon-delimited outputs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shopetl/internal/config"
	"shopetl/internal/metrics"
	"shopetl/internal/metrics/prompush"
	"shopetl/internal/pipeline"
)

func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "", "optional YAML config overriding the built-in job settings")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fatalf("%v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		fatalf("invalid configuration: %v", err)
	}
	if validate {
		log.Printf("configuration is valid")
		return
	}

	switch metricsBackendFlg {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend("shopetl", gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}
	case "", "none":
		// metrics disabled; nop backend remains
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", metricsBackendFlg)
	}

	start := time.Now()
	if err := pipeline.Run(cfg); err != nil {
		fatalf("%v", err)
	}
	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
