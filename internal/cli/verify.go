package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	verifyOut     string
	verifyTimeout time.Duration
	llmEnabled    bool
	llmModel      string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <text>",
	Short: "Verify a hadith across all sources and derive a graded verdict",
	Long: `Verify queries dorar.net and sunnah.com concurrently for the given text,
collects the scholarly gradings, and consolidates them into one verdict
with a confidence rating and a human-readable narrative.

A source failing does not fail the verification; its error is recorded in
the verdict and the remaining sources still settle.

Example:
  tahqiq verify "من حسن إسلام المرء تركه ما لا يعنيه"
  tahqiq verify "الأعمال بالنيات" --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyOut, "json", "", "output JSON path (default: stdout)")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM commentary on the verdict")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (default from config)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	cfg := loadConfig()

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	} else {
		cfg.LLM.Provider = ""
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", args[0])
		fmt.Fprintf(os.Stderr, "Timeout: %v\n\n", verifyTimeout)
	}

	verdict, err := engine.Verify(ctx, args[0])
	if err != nil {
		return err
	}

	if verbose {
		for src, msg := range verdict.SourceErrors {
			fmt.Fprintf(os.Stderr, "Warning: %s failed: %s\n", src, msg)
		}
	}

	return writeJSON(verdict, verifyOut)
}
