package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	screenProfile  string
	screenUniverse string
	screenJSON     bool
)

var screenCmd = &cobra.Command{
	Use:   "screen [symbols...]",
	Short: "Run the screening funnel once",
	Long: `Runs the five-stage funnel over a symbol universe and prints the
funnel summary. Symbols come from positional arguments, from --universe,
or from the universe file in the config, in that order of preference.`,
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringVarP(&screenProfile, "profile", "p", "", "strategy profile name")
	screenCmd.Flags().StringVarP(&screenUniverse, "universe", "u", "", "universe file (one symbol per line)")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "print the full report as JSON")
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(logger.Must(debug, ""))
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	defer log.Sync()

	universe := args
	if len(universe) == 0 {
		path := screenUniverse
		if path == "" {
			path = cfg.Data.Universe
		}
		universe, err = readUniverse(path)
		if err != nil {
			return err
		}
	}

	prof, profWarnings, err := loadNamedProfile(cfg, screenProfile, log)
	if err != nil {
		return err
	}

	runner, err := buildRunner(cfg, log)
	if err != nil {
		return err
	}

	report, err := runner.Run(context.Background(), universe, prof)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}
	report.Warnings = append(profWarnings, report.Warnings...)

	if screenJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(report.Summary())
	for _, warning := range report.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	if len(report.Candidates) > 0 {
		fmt.Println("\ncandidates:")
		for _, sym := range report.Candidates {
			signals := report.SignalsFor(sym)
			fmt.Printf("  %-8s daily signal %.2f\n", sym, signals[core.StageDaily])
		}
	}

	log.Info("screen finished",
		zap.String("run_id", report.ID),
		zap.Int("candidates", len(report.Candidates)),
	)
	return nil
}
