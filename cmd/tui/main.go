// Binary tui is a small operator console for tuning the bot between
// rounds: inspect and edit the trading knobs, save them, and launch
// the paper bot.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/config"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	reader := bufio.NewReader(os.Stdin)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	for {
		fmt.Println("\n=== Option Buyer Control ===")
		fmt.Println("1) Show configuration summary")
		fmt.Println("2) Edit trading knobs")
		fmt.Println("3) Save config")
		fmt.Println("4) Launch paper bot")
		fmt.Println("5) Reload config from disk")
		fmt.Println("0) Exit")
		fmt.Print("Select option: ")

		input, _ := reader.ReadString('\n')
		choice := strings.TrimSpace(input)

		switch choice {
		case "1":
			printSummary(cfg)
		case "2":
			editTrading(reader, cfg)
		case "3":
			if err := saveConfig(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
			} else {
				fmt.Println("config saved")
			}
		case "4":
			launchPaper(reader)
		case "5":
			reloaded, err := loadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			} else {
				cfg = reloaded
				fmt.Println("config reloaded")
			}
		case "0":
			return
		default:
			fmt.Println("unknown option")
		}
	}
}

func printSummary(cfg *config.Config) {
	fmt.Println("\n--- Configuration Summary ---")
	fmt.Printf("Alpha: %.4f\n", cfg.Trading.Alpha)
	fmt.Printf("Max expiry horizon: %d ticks\n", cfg.Trading.MaxExpiryHorizon)
	fmt.Printf("Premium cap per order: $%.2f (0 = uncapped)\n", cfg.Risk.MaxPremiumPerOrder)
	fmt.Printf("Exchange: %s (%s)\n", cfg.Exchange.URL, cfg.Exchange.Provider)
	fmt.Printf("Paper starting cash: $%.2f\n", cfg.Paper.StartingCash)
	fmt.Printf("Paper per-instrument cap: %d contracts\n", cfg.Paper.MaxContractsPerInstrument)
}

func editTrading(reader *bufio.Reader, cfg *config.Config) {
	fmt.Println("\n--- Edit Trading Knobs ---")
	cfg.Trading.Alpha = promptFloat(reader, "Alpha (0,1]", cfg.Trading.Alpha)
	cfg.Trading.MaxExpiryHorizon = int64(promptFloat(reader, "Max expiry horizon (ticks)", float64(cfg.Trading.MaxExpiryHorizon)))
	cfg.Risk.MaxPremiumPerOrder = promptFloat(reader, "Premium cap per order (USD)", cfg.Risk.MaxPremiumPerOrder)
	cfg.Paper.StartingCash = promptFloat(reader, "Paper starting cash", cfg.Paper.StartingCash)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (fix before saving)\n", err)
	}
}

func launchPaper(reader *bufio.Reader) {
	fmt.Println("Launching paper bot (Ctrl+C to stop)...")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", "run", "./cmd/paper")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start bot: %v\n", err)
		return
	}

	go func() {
		_ = cmd.Wait()
		cancel()
	}()

	fmt.Print("\nPress ENTER to stop the bot and return to menu...")
	_, _ = reader.ReadString('\n')
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func promptFloat(reader *bufio.Reader, label string, current float64) float64 {
	fmt.Printf("%s [%.2f]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	val, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Printf("invalid number, keeping %.2f\n", current)
		return current
	}
	return val
}

func loadConfig() (*config.Config, error) {
	return config.Load(locateConfig())
}

func saveConfig(cfg *config.Config) error {
	return config.Save(locateConfig(), cfg)
}

func locateConfig() string {
	if filepath.IsAbs(defaultConfigPath) {
		return defaultConfigPath
	}
	return filepath.Clean(defaultConfigPath)
}
