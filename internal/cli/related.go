package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var (
	relatedOut     string
	relatedTimeout time.Duration
)

// similarCmd represents the similar command
var similarCmd = &cobra.Command{
	Use:   "similar <hadith-id>",
	Short: "Fetch narrations similar in wording to a known hadith",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), relatedTimeout)
		defer cancel()

		dorar, _ := buildAdapters(loadConfig())
		result, err := dorar.Similar(ctx, args[0])
		if err != nil {
			return err
		}
		return writeJSON(result, relatedOut)
	},
}

// alternateCmd represents the alternate command
var alternateCmd = &cobra.Command{
	Use:   "alternate <hadith-id>",
	Short: "Fetch the authentic alternate narration of a weak hadith",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), relatedTimeout)
		defer cancel()

		dorar, _ := buildAdapters(loadConfig())
		record, err := dorar.Alternate(ctx, args[0])
		if err != nil {
			return err
		}
		return writeJSON(record, relatedOut)
	},
}

// usulCmd represents the usul command
var usulCmd = &cobra.Command{
	Use:   "usul <hadith-id>",
	Short: "Fetch the foundational sources a hadith's wording derives from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), relatedTimeout)
		defer cancel()

		dorar, _ := buildAdapters(loadConfig())
		result, err := dorar.Foundational(ctx, args[0])
		if err != nil {
			return err
		}
		return writeJSON(result, relatedOut)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{similarCmd, alternateCmd, usulCmd} {
		cmd.Flags().StringVar(&relatedOut, "json", "", "output JSON path (default: stdout)")
		cmd.Flags().DurationVar(&relatedTimeout, "timeout", time.Minute, "overall request timeout")
		rootCmd.AddCommand(cmd)
	}
}
