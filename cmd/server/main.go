// Package main - Entry point for the programme-cost API server
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"programme-cost/api"
	"programme-cost/core/refdata"
	"programme-cost/internal/config"
	"programme-cost/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := config.Get()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	listen := cfg.Server.Addr
	if *addr != "" {
		listen = *addr
	}

	store, err := refdata.OpenSQLite(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open reference snapshot %s: %v", cfg.Database.Path, err)
	}
	defer store.Close()

	server := api.NewServer(version, store, cfg)

	fmt.Printf("programme-cost server v%s listening on %s\n", version, listen)
	if err := server.ListenAndServe(listen); err != nil {
		log.Fatal(err)
	}
}
