// Command lookup runs the profile pipeline for each handle given on the
// command line and prints the reply the bot would send.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/adapter"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/app"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/config"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/service/region"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

func main() {
	asJSON := flag.Bool("json", false, "print the mapped record as JSON")
	proxyAddr := flag.String("proxy", "", "http, https or socks5 proxy URL (overrides TIKTOK_PROXY)")
	timeout := flag.Duration("timeout", 0, "per-lookup timeout (overrides TIKTOK_TIMEOUT_SECONDS)")
	verbose := flag.Bool("v", false, "log fetch details to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] handle...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	cfg, err := config.LoadTikTok()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *proxyAddr != "" {
		cfg.Proxy = *proxyAddr
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	profiles, err := app.BuildProfileService(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build lookup service: %v\n", err)
		os.Exit(1)
	}
	formatter := adapter.NewResponseFormatter("!", false, region.Lookup)

	failed := 0
	for i, raw := range flag.Args() {
		if i > 0 {
			fmt.Println()
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+5*time.Second)
		record, err := profiles.Lookup(ctx, raw)
		cancel()

		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %s (%v)\n", raw, errors.CodeOf(err), err)
		}

		if *asJSON && err == nil {
			out, _ := json.MarshalIndent(record, "", "  ")
			fmt.Println(string(out))
			continue
		}
		fmt.Println(formatter.FormatLookup(record, err))
	}

	if failed > 0 {
		os.Exit(1)
	}
}
