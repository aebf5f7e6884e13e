package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"datachat/internal/agent"
	"datachat/internal/capabilities"
	"datachat/internal/config"

	"github.com/joho/godotenv"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
)

func main() {
	sourceFlag := flag.String("source", "", "data source to query (flights, weather, database)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	logger, logFile, err := setupLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sfailed to initialize capability registry: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	ctx := context.Background()
	registry, cleanup, err := agent.SetupRegistry(ctx, cfg, capabilityRegistry, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sfailed to setup data sources: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
	defer cleanup()

	source := *sourceFlag
	if source == "" {
		source = cfg.DefaultSource
	}

	runner := registry.Get(source)
	if runner == nil {
		fmt.Fprintf(os.Stderr, "%sunknown data source %q; available: %s%s\n",
			colorRed, source, strings.Join(registry.Sources(), ", "), colorReset)
		os.Exit(1)
	}

	fmt.Printf("%sdatachat%s | source: %s%s%s (model %s)\n",
		colorCyan, colorReset, colorYellow, source, colorReset, cfg.Model)
	fmt.Printf("Available sources: %s\n", strings.Join(registry.Sources(), ", "))
	fmt.Println("Type a question, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> %s", colorGreen, colorReset)
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "exit") {
			break
		}

		answer, err := runner.Run(ctx, query)
		if err != nil {
			logger.Error("query failed", "source", source, "error", err)
			fmt.Printf("%serror: %v%s\n", colorRed, err, colorReset)
			continue
		}

		fmt.Println(answer)
	}
}

// setupLogger creates a logger that writes debug output to a timestamped
// file, keeping the console free for the conversation itself.
func setupLogger() (*slog.Logger, *os.File, error) {
	logFile, err := config.SetupLogFile("logs", 10)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return slog.New(handler), logFile, nil
}
