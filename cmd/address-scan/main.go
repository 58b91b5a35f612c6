// Command address-scan runs one nearby-address scan from the terminal:
// geocode the address given on the command line, search the configured
// backend, and print the normalized deduplicated address list.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"addressradar/internal/geocode"
	"addressradar/internal/mapview"
	"addressradar/internal/nearby"
	proximitysvc "addressradar/internal/proximity/service"
	"addressradar/internal/proximity/transport"
	"addressradar/platform/config"
	"addressradar/platform/logger"
)

func main() {
	radius := flag.Int("radius", 0, "search radius in meters [100, 2000]; 0 uses the configured default")
	backend := flag.String("backend", "", "search backend override: places or overpass")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: address-scan [-radius N] [-backend places|overpass] \"<address>\"")
		os.Exit(2)
	}
	addressArg := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	geocodeModule := geocode.NewModule(cfg, log)
	defer func() {
		_ = geocodeModule.Close()
	}()
	nearbyModule := nearby.NewModule(cfg, log)

	tiles, err := mapview.LoadCatalog(cfg.GetTileConfigPath())
	if err != nil {
		log.Error("failed to load tile catalog", "error", err)
		os.Exit(1)
	}

	svc := proximitysvc.New(geocodeModule, nearbyModule, mapview.NewBuilder(tiles, log), cfg, log)

	req := transport.NearbyRequest{
		Address: addressArg,
		Radius:  *radius,
		Backend: *backend,
	}

	result, err := svc.Nearby(context.Background(), req, "")
	if err != nil {
		log.Error("scan failed", "address", addressArg, "error", err)
		os.Exit(1)
	}

	fmt.Printf("center: %.6f, %.6f", result.Center.Lat, result.Center.Lng)
	if result.Postcode != "" {
		fmt.Printf("  (postcode hint: %s)", result.Postcode)
	}
	fmt.Printf("\n%d nearby addresses via %s:\n", result.Count, result.Backend)
	for _, addr := range result.Addresses {
		fmt.Println("  " + addr)
	}
}
