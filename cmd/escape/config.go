package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-escape/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect game configuration",
	Long: `Inspect the configuration Shadow Escape runs with.

Config search order:
  1. --config <path>
  2. ~/.escape/configs/escape.yaml
  3. ./configs/escape.yaml
  4. built-in defaults`,
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after the search order and --difficulty are
applied. Redirect it to a file to start a custom config.

Examples:
  escape config print > ~/.escape/configs/escape.yaml
  escape config print --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfigPrint,
}

var configCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate config files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConfigCheck,
}

func init() {
	configCmd.AddCommand(configPrintCmd)
	configCmd.AddCommand(configCheckCmd)
}

func runConfigPrint(_ *cobra.Command, _ []string) error {
	cfg, source, err := config.LoadEscapeFrom(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyEscapePreset(&cfg, preset)

	data, err := config.MarshalEscape(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s\n# difficulty: %s\n", source, preset)
	os.Stdout.Write(data)
	return nil
}

func runConfigCheck(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err == nil {
			_, err = config.ParseEscape(data)
		}
		if err != nil {
			fmt.Printf("INVALID  %s\n%v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("OK       %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d configs invalid", failed, len(args))
	}
	return nil
}
