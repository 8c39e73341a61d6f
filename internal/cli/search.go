package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rashidk/tahqiq/internal/model"
	"github.com/rashidk/tahqiq/internal/source"
)

var (
	searchSource  string
	searchPage    int
	searchOut     string
	searchTimeout time.Duration
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search a single source for hadiths matching a text fragment",
	Long: `Search queries one source site for hadiths matching the given text and
prints the normalized records as JSON.

Example:
  tahqiq search "إنما الأعمال بالنيات"
  tahqiq search "الأعمال بالنيات" --source sunnah --json results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchSource, "source", "dorar", "source to query (dorar, sunnah)")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page to request")
	searchCmd.Flags().StringVar(&searchOut, "json", "", "output JSON path (default: stdout)")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", time.Minute, "overall request timeout")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	cfg := loadConfig()
	dorar, sunnah := buildAdapters(cfg)

	var adapter source.Adapter
	switch model.SourceID(searchSource) {
	case model.SourceDorar:
		adapter = dorar
	case model.SourceSunnah:
		adapter = sunnah
	default:
		return fmt.Errorf("unknown source: %s (expected dorar or sunnah)", searchSource)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Searching %s: %s\n", adapter.ID(), args[0])
	}

	result, err := adapter.Search(ctx, args[0], searchPage)
	if err != nil {
		return err
	}

	return writeJSON(result, searchOut)
}
