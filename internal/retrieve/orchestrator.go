// Package retrieve sequences the grounded-citation pipeline: compose query,
// search-augmented generation, grounding extraction, trust filtering,
// index-bound extraction, validation. It owns the failure fallback; no
// operation ever returns an error to the caller.
package retrieve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veridex/veridex/internal/cache"
	"github.com/veridex/veridex/internal/catalog"
	"github.com/veridex/veridex/internal/extract"
	"github.com/veridex/veridex/internal/ground"
	"github.com/veridex/veridex/internal/llm"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/query"
	"github.com/veridex/veridex/internal/trust"
	"github.com/veridex/veridex/internal/validate"
)

// state tracks a request through the pipeline. Each request runs the
// machine once; there are no automatic retries.
type state string

const (
	stateSearching  state = "searching"
	stateExtracted  state = "extracted"
	stateFiltered   state = "filtered"
	stateEmpty      state = "empty"
	stateExtracting state = "extracting"
	stateValidated  state = "validated"
	stateDone       state = "done"
	stateFailed     state = "failed"
)

// Orchestrator runs the four caller-facing operations. It holds no mutable
// per-request state; concurrent operations are independent.
type Orchestrator struct {
	client    llm.Client
	policy    *trust.Policy
	composer  *query.Composer
	extractor *extract.Constrained
	matcher   *extract.SemanticMatcher
	validator *validate.Validator
	fallback  model.FallbackConfig
	memo      *cache.MatchMemo
	log       *zap.Logger
}

// New wires the pipeline. The model client is injected so tests can supply
// canned grounding chunks and canned structured JSON.
func New(client llm.Client, cfg *model.Config, log *zap.Logger) *Orchestrator {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	var memo *cache.MatchMemo
	if cfg.Cache.Enabled {
		memo = cache.NewMatchMemo(cfg.Cache.TTL)
	}

	return &Orchestrator{
		client:    client,
		policy:    trust.NewPolicy(&cfg.Trust),
		composer:  query.NewComposer(),
		extractor: extract.NewConstrained(client),
		matcher:   extract.NewSemanticMatcher(client),
		validator: validate.NewValidator(log),
		fallback:  cfg.Fallback,
		memo:      memo,
		log:       log,
	}
}

// GetLegalFramework retrieves legal instruments protecting a right
func (o *Orchestrator) GetLegalFramework(ctx context.Context, rightName string, scope model.Scope, subScope string) model.DialogueResult {
	return o.run(ctx, model.CategoryLegalFramework, []model.Right{resolveRight(rightName)}, scope, subScope)
}

// GetFieldStatus retrieves recent monitoring-organization reports on a right
func (o *Orchestrator) GetFieldStatus(ctx context.Context, rightName string, scope model.Scope, subScope string) model.DialogueResult {
	return o.run(ctx, model.CategoryFieldStatus, []model.Right{resolveRight(rightName)}, scope, subScope)
}

// GetNexus retrieves academic work connecting two rights
func (o *Orchestrator) GetNexus(ctx context.Context, rightA, rightB string, scope model.Scope, subScope string) model.DialogueResult {
	rights := []model.Right{resolveRight(rightA), resolveRight(rightB)}
	return o.run(ctx, model.CategoryNexus, rights, scope, subScope)
}

// GetSemanticMatches selects the catalog rights relevant to a free-text
// term. A failed or unparseable call yields an empty list; this operation
// has no degraded citation because it returns identifiers, not evidence.
func (o *Orchestrator) GetSemanticMatches(ctx context.Context, term string, rights []model.Right) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	if ids, ok := o.memo.Get(term); ok {
		return ids
	}

	ids, err := o.matcher.Match(ctx, term, rights)
	if err != nil {
		o.log.Warn("semantic match failed", zap.String("term", term), zap.Error(err))
		return nil
	}

	o.memo.Set(term, ids)
	return ids
}

// run drives the state machine for one evidence request
func (o *Orchestrator) run(ctx context.Context, category model.RequestCategory, rights []model.Right, scope model.Scope, subScope string) model.DialogueResult {
	reqID := uuid.NewString()
	log := o.log.With(
		zap.String("request_id", reqID),
		zap.String("category", string(category)),
	)

	prompt := o.composer.Compose(category, rights, scope, subScope)

	log.Debug("state", zap.String("state", string(stateSearching)))
	answer, err := o.client.GenerateGrounded(ctx, prompt)
	if err != nil {
		return o.failed(log, category, fmt.Errorf("%w: %v", ErrUpstreamCall, err))
	}

	candidates := ground.Extract(answer.Chunks)
	log.Debug("state", zap.String("state", string(stateExtracted)), zap.Int("candidates", len(candidates)))

	trusted := o.policy.Filter(candidates, category)
	log.Debug("state", zap.String("state", string(stateFiltered)), zap.Int("trusted", len(trusted)))

	if len(trusted) == 0 {
		// No trusted sources is not an error: the extraction call must
		// never run without valid reference targets.
		log.Info("no trusted sources", zap.String("state", string(stateEmpty)), zap.Int("surfaced", len(candidates)))
		return model.DialogueResult{Sources: []model.Citation{}}
	}

	log.Debug("state", zap.String("state", string(stateExtracting)))
	drafts, err := o.extractor.Extract(ctx, prompt, answer.Text, trusted)
	if err != nil {
		if errors.Is(err, extract.ErrBadDraftJSON) {
			return o.failed(log, category, fmt.Errorf("%w: %v", ErrParse, err))
		}
		return o.failed(log, category, fmt.Errorf("%w: %v", ErrUpstreamCall, err))
	}

	citations, rejected := o.validator.Validate(drafts, trusted)
	log.Debug("state", zap.String("state", string(stateValidated)), zap.Int("citations", len(citations)), zap.Int("rejected", rejected))

	if citations == nil {
		citations = []model.Citation{}
	}

	log.Info("retrieval complete",
		zap.String("state", string(stateDone)),
		zap.Int("sources", len(citations)),
		zap.Int("rejected", rejected))

	return model.DialogueResult{Sources: citations, Rejected: rejected}
}

// failed converts a caught failure into the single degraded result shown
// to the caller. The placeholder citation points at a manual research
// portal for the category; nothing propagates past here.
func (o *Orchestrator) failed(log *zap.Logger, category model.RequestCategory, err error) model.DialogueResult {
	log.Warn("retrieval degraded", zap.String("state", string(stateFailed)), zap.Error(err))

	return model.DialogueResult{
		Degraded: true,
		Sources: []model.Citation{{
			Title: "Automatic evidence retrieval unavailable",
			URI:   o.fallback.PortalFor(category),
			Date:  "N/A",
			Reference: fmt.Sprintf(
				"Evidence could not be retrieved automatically (%v). "+
					"Consult the linked portal to research this topic manually.", err),
		}},
	}
}

// resolveRight maps a caller-supplied right name onto the catalog entry
// when one exists, so queries carry the canonical summary. Unknown names
// pass through untouched.
func resolveRight(name string) model.Right {
	if r, ok := catalog.ByName(name); ok {
		return r
	}
	if r, ok := catalog.ByID(name); ok {
		return r
	}
	return model.Right{Name: name}
}
