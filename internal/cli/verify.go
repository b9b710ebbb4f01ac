package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/verify"
)

var (
	verifyFile    string
	verifyTimeout time.Duration
)

// verifyCmd checks that citation URLs still resolve
var verifyCmd = &cobra.Command{
	Use:   "verify [url ...]",
	Short: "Check that citation URLs still resolve",
	Long: `Verify issues HEAD requests against citation URLs, honoring robots.txt
and per-domain rate limits. It never fetches page content.

URLs come from arguments or, with --file, from a saved result document.

Example:
  veridex verify https://www.ohchr.org/en/instruments-listings
  veridex legal 19 > result.json && veridex verify --file result.json`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFile, "file", "", "JSON result file to read citation URLs from")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "overall verification timeout")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	uris := args

	if verifyFile != "" {
		fromFile, err := urisFromResultFile(verifyFile)
		if err != nil {
			return err
		}
		uris = append(uris, fromFile...)
	}

	if len(uris) == 0 {
		return fmt.Errorf("no URLs to verify; pass them as arguments or with --file")
	}

	cfg := loadConfig()
	checker := verify.NewChecker(cfg.Verify)

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	results := checker.Check(ctx, uris)

	accessible := 0
	for _, r := range results {
		if r.Accessible {
			accessible++
		}
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d/%d citation URLs accessible\n", accessible, len(results))
	}

	return printJSON(results)
}

// urisFromResultFile extracts citation URIs from a saved DialogueResult
func urisFromResultFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result file: %w", err)
	}

	var result model.DialogueResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse result file: %w", err)
	}

	var uris []string
	for _, c := range result.Sources {
		if c.URI != "" {
			uris = append(uris, c.URI)
		}
	}
	return uris, nil
}
