package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridex/veridex/internal/catalog"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/retrieve"
)

var (
	queryScope    string
	querySubScope string
	queryTimeout  time.Duration
)

// legalCmd retrieves the legal framework for a right
var legalCmd = &cobra.Command{
	Use:   "legal <right>",
	Short: "Retrieve legal instruments protecting a right",
	Long: `Retrieve citation-backed legal instruments (treaties, constitutions,
statutes, case law) protecting a human right at the chosen scope.

Example:
  veridex legal "Freedom of Opinion and Expression"
  veridex legal 19 --scope regional --sub-scope Europe
  veridex legal "Right to Education" --scope national --sub-scope Kenya`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvidence(args[0], func(ctx context.Context, o *retrieve.Orchestrator) model.DialogueResult {
			return o.GetLegalFramework(ctx, args[0], model.ParseScope(queryScope), querySubScope)
		})
	},
}

// statusCmd retrieves field-status reports for a right
var statusCmd = &cobra.Command{
	Use:   "status <right>",
	Short: "Retrieve recent monitoring reports on a right",
	Long: `Retrieve the most recent status reports on a human right from the named
monitoring organizations (OHCHR, Human Rights Watch, Amnesty International,
Freedom House, FIDH).

Example:
  veridex status "Freedom from Torture" --sub-scope "Sudan"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvidence(args[0], func(ctx context.Context, o *retrieve.Orchestrator) model.DialogueResult {
			return o.GetFieldStatus(ctx, args[0], model.ParseScope(queryScope), querySubScope)
		})
	},
}

// nexusCmd retrieves academic work connecting two rights
var nexusCmd = &cobra.Command{
	Use:   "nexus <rightA> <rightB>",
	Short: "Retrieve open-access research connecting two rights",
	Long: `Retrieve peer-reviewed or open-access academic work that explicitly
discusses two human rights together. Paywalled publishers and
abstract-only pages are excluded.

Example:
  veridex nexus "Right to Education" "Freedom from Discrimination"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvidence(args[0], func(ctx context.Context, o *retrieve.Orchestrator) model.DialogueResult {
			return o.GetNexus(ctx, args[0], args[1], model.ParseScope(queryScope), querySubScope)
		})
	},
}

// matchCmd selects catalog rights relevant to a term
var matchCmd = &cobra.Command{
	Use:   "match <term>",
	Short: "Select which catalog rights relate to a term",
	Long: `Ask the model which rights in the catalog are relevant to a free-text
term. Returns right identifiers only; no grounding or trust policy is
involved.

Example:
  veridex match "press censorship"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log := newLogger()
		defer func() { _ = log.Sync() }()

		orchestrator := retrieve.New(newClient(cfg), cfg, log)

		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		matches := orchestrator.GetSemanticMatches(ctx, args[0], catalog.All())
		return printJSON(map[string][]string{"matches": matches})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{legalCmd, statusCmd, nexusCmd, matchCmd} {
		cmd.Flags().StringVar(&queryScope, "scope", "international", "scope (international, regional, national)")
		cmd.Flags().StringVar(&querySubScope, "sub-scope", "", "region or country narrowing the query")
		cmd.Flags().DurationVar(&queryTimeout, "timeout", 3*time.Minute, "overall operation timeout")
		rootCmd.AddCommand(cmd)
	}
}

// runEvidence runs one evidence operation and prints the result as JSON
func runEvidence(right string, op func(context.Context, *retrieve.Orchestrator) model.DialogueResult) error {
	cfg := loadConfig()
	log := newLogger()
	defer func() { _ = log.Sync() }()

	if verbose {
		fmt.Fprintf(os.Stderr, "Retrieving evidence for: %s\n", right)
	}

	orchestrator := retrieve.New(newClient(cfg), cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result := op(ctx, orchestrator)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d citation(s), %d draft(s) rejected\n", len(result.Sources), result.Rejected)
	}

	return printJSON(result)
}

// printJSON writes a value as indented JSON to stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
