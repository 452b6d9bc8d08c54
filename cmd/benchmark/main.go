// Benchmark probe for TM1 REST latency. Runs a handful of read-only
// operations against a live server and prints per-call timings.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/planops/tm1-mcp-server/internal/rest"
	"github.com/planops/tm1-mcp-server/internal/tm1"
)

func main() {
	config, err := rest.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := tm1.NewClient(rest.NewClient(config, rest.WithLogger(logger)), logger)
	ctx := context.Background()

	fmt.Println("=== TM1 REST Latency Probe ===")
	fmt.Println()

	fmt.Println("1. List dimensions:")
	start := time.Now()
	names, err := client.Dimensions.GetAllNames(ctx)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("   %d dimensions in %v\n", len(names), time.Since(start))
	fmt.Println()

	if len(names) == 0 {
		fmt.Println("No dimensions to probe further")
		return
	}
	probe := names[0]

	fmt.Printf("2. Existence check (%s):\n", probe)
	start = time.Now()
	if _, err := client.Dimensions.Exists(ctx, probe); err != nil {
		fmt.Printf("   Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("   %v\n", time.Since(start))
	fmt.Println()

	fmt.Printf("3. Full dimension fetch (%s):\n", probe)
	start = time.Now()
	dim, err := client.Dimensions.Get(ctx, probe)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		os.Exit(1)
	}
	elements := 0
	for i := range dim.Hierarchies {
		elements += len(dim.Hierarchies[i].Elements)
	}
	fmt.Printf("   %d hierarchies, %d elements in %v\n", len(dim.Hierarchies), elements, time.Since(start))
	fmt.Println()

	fmt.Println("4. Repeated existence checks (10x, live each time):")
	start = time.Now()
	for i := 0; i < 10; i++ {
		if _, err := client.Dimensions.Exists(ctx, probe); err != nil {
			fmt.Printf("   Error: %v\n", err)
			os.Exit(1)
		}
	}
	total := time.Since(start)
	fmt.Printf("   total %v, avg %v\n", total, total/10)
}
