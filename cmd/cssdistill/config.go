package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/cssdistill/cssdistill"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssdistill.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence — only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSDISTILL_* prefix)
	if err := k.Load(env.Provider("CSSDISTILL_", ".", func(s string) string {
		// CSSDISTILL_DISTILL_ROOT-PX -> distill.root-px
		// CSSDISTILL_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSDISTILL_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildDistillConfig constructs the library's Config struct from koanf state.
// The section is "distill" or "convert"; both share the unit bases.
func buildDistillConfig(section string) (cssdistill.Config, error) {
	cfg := cssdistill.Config{
		RootPx:           getFloat64WithFallback("root-px", section+".root-px", 16),
		ContextPx:        getFloat64WithFallback("context-px", section+".context-px", 16),
		ViewportWidthPx:  getFloat64WithFallback("viewport-width", section+".viewport-width", 1920),
		ViewportHeightPx: getFloat64WithFallback("viewport-height", section+".viewport-height", 1080),
		PercentBasePx:    getFloat64WithFallback("percent-base", section+".percent-base", 16),
		ChPx:             getFloat64WithFallback("ch-px", section+".ch-px", 8),
		Dark:             cssdistill.DarkAlgorithm(getStringWithFallback("dark", section+".dark", "flip")),
		StableNames:      getBoolWithFallback("stable-names", section+".stable-names", false),
	}

	for _, f := range getStringsWithFallback("features", section+".features") {
		cfg.Features = append(cfg.Features, cssdistill.Feature(f))
	}

	prefixes, err := parsePrefixOverrides(getStringsWithFallback("prefix", section+".prefix"))
	if err != nil {
		return cfg, err
	}
	cfg.Prefixes = prefixes

	pairs, err := parseConversionPairs(getStringsWithFallback("unit", section+".unit"))
	if err != nil {
		return cfg, err
	}
	cfg.Conversions = pairs

	return cfg, nil
}

// parseConversionPairs turns "from:to" strings into ordered pairs. Unknown
// units are left for the library to drop with a warning; only malformed
// syntax is an error here.
func parseConversionPairs(specs []string) ([]cssdistill.ConversionPair, error) {
	var pairs []cssdistill.ConversionPair
	for _, spec := range specs {
		from, to, ok := strings.Cut(spec, ":")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid unit pair %q (expected from:to)", spec)
		}
		pairs = append(pairs, cssdistill.ConversionPair{
			From: cssdistill.Unit(strings.TrimSpace(from)),
			To:   cssdistill.Unit(strings.TrimSpace(to)),
		})
	}
	return pairs, nil
}

// parsePrefixOverrides turns "category=name" strings into the prefix map.
func parsePrefixOverrides(specs []string) (map[cssdistill.Category]string, error) {
	overrides := make(map[cssdistill.Category]string)
	for _, spec := range specs {
		cat, name, ok := strings.Cut(spec, "=")
		if !ok || cat == "" || name == "" {
			return nil, fmt.Errorf("invalid prefix override %q (expected category=name)", spec)
		}
		overrides[cssdistill.Category(strings.TrimSpace(cat))] = strings.TrimSpace(name)
	}
	return overrides, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getFloat64WithFallback checks the flag key first, then the config file key, then returns the default.
func getFloat64WithFallback(flagKey, configKey string, defaultVal float64) float64 {
	if k.Exists(flagKey) && k.Float64(flagKey) != 0 {
		return k.Float64(flagKey)
	}
	if k.Exists(configKey) && k.Float64(configKey) != 0 {
		return k.Float64(configKey)
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key.
func getStringsWithFallback(flagKey, configKey string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	return k.Strings(configKey)
}
