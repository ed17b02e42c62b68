package config_test

import (
	"context"
	"fmt"
	"log"

	"github.com/pspdfkit/nudocs/config"
)

func ExampleLoad() {
	// Load with defaults only (no config file)
	cfg, err := config.Load(nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("URL: %s, Log level: %s\n", cfg.URL, cfg.Log.Level)
	// Output: URL: https://nudocs.ai, Log level: warn
}

func ExampleWithContext() {
	cfg, _ := config.Load(nil, nil)

	ctx := config.WithContext(context.Background(), cfg)

	retrieved, err := config.FromContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Retrieved URL: %s\n", retrieved.BaseURL())
	// Output: Retrieved URL: https://nudocs.ai
}

func ExamplePathsIn() {
	p := config.PathsIn("/home/alice/.config/nudocs")
	fmt.Println(p.StateFile)
	// Output: /home/alice/.config/nudocs/state.json
}
