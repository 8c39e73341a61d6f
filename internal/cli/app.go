package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/rashidk/tahqiq/internal/cache"
	"github.com/rashidk/tahqiq/internal/fetch"
	"github.com/rashidk/tahqiq/internal/llm"
	"github.com/rashidk/tahqiq/internal/model"
	"github.com/rashidk/tahqiq/internal/source"
	"github.com/rashidk/tahqiq/internal/verify"
)

// loadConfig merges the config file and environment over the defaults
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration ignored: %v\n", err)
	}
	return cfg
}

// buildAdapters constructs the fetcher, cache, and both source adapters
func buildAdapters(cfg *model.Config) (*source.DorarAdapter, *source.SunnahAdapter) {
	fetcher := fetch.New(cfg.HTTP)

	var c cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		c = cache.NewMemory(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	dorar := source.NewDorar(fetcher, c, cfg.Sources.DorarBaseURL)
	sunnah := source.NewSunnah(fetcher, c, cfg.Sources.SunnahBaseURL)
	return dorar, sunnah
}

// buildEngine constructs the verification engine, including the optional
// LLM commentator when one is configured
func buildEngine(cfg *model.Config) (*verify.Engine, error) {
	dorar, sunnah := buildAdapters(cfg)

	commentator, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("configure llm: %w", err)
	}

	// A nil *llm.Commentator must stay a nil interface
	if commentator != nil {
		return verify.NewEngine(dorar, sunnah, commentator), nil
	}
	return verify.NewEngine(dorar, sunnah, nil), nil
}

// writeJSON renders v as indented JSON to path, or stdout when path is empty
func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote: %s\n", path)
	}
	return nil
}
