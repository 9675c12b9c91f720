package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"PredVal/internal/di"
	"PredVal/pkg/config"
)

const usage = `usage: app [-config path] [-serve] <window-file> <actual-file> <predicted-file> <output-file>`

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a single batch")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Positional arguments take precedence over the config file.
	args := flag.Args()
	if !*serve {
		switch len(args) {
		case 0:
		case 4:
			cfg.Input.WindowFile = args[0]
			cfg.Input.ActualFile = args[1]
			cfg.Input.PredictedFile = args[2]
			cfg.Output.Path = args[3]
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	if *serve {
		err = app.Serve(ctx)
	} else {
		err = app.Run(ctx)
	}
	if err != nil {
		app.Close()
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
