package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/veridex/veridex/internal/llm"
	"github.com/veridex/veridex/internal/model"
)

// mockClient implements llm.Client with canned responses
type mockClient struct {
	grounded      *llm.GroundedAnswer
	groundedErr   error
	structured    string
	structuredErr error

	structuredCalls int
	lastPrompt      string
}

func (m *mockClient) GenerateGrounded(ctx context.Context, prompt string) (*llm.GroundedAnswer, error) {
	if m.groundedErr != nil {
		return nil, m.groundedErr
	}
	return m.grounded, nil
}

func (m *mockClient) GenerateStructured(ctx context.Context, req llm.StructuredRequest) (string, error) {
	m.structuredCalls++
	m.lastPrompt = req.Prompt
	if m.structuredErr != nil {
		return "", m.structuredErr
	}
	return m.structured, nil
}

var trustedPair = []model.Candidate{
	{Title: "OHCHR", URI: "https://ohchr.org/x"},
	{Title: "UN Treaty Collection", URI: "https://treaties.un.org/y"},
}

func TestConstrained_EmptyTrustedSkipsModelCall(t *testing.T) {
	client := &mockClient{}
	e := NewConstrained(client)

	drafts, err := e.Extract(context.Background(), "query", "answer", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if drafts != nil {
		t.Errorf("expected nil drafts, got %+v", drafts)
	}
	if client.structuredCalls != 0 {
		t.Errorf("model must never be called with zero reference targets, got %d calls", client.structuredCalls)
	}
}

func TestConstrained_PromptListsCandidatesByIndex(t *testing.T) {
	client := &mockClient{structured: `{"sources":[]}`}
	e := NewConstrained(client)

	if _, err := e.Extract(context.Background(), "the query", "the answer", trustedPair); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, want := range []string{
		"[0] OHCHR — https://ohchr.org/x",
		"[1] UN Treaty Collection — https://treaties.un.org/y",
		"ONLY by their index",
		"NEVER invent",
		"the query",
		"the answer",
	} {
		if !strings.Contains(client.lastPrompt, want) {
			t.Errorf("extraction prompt missing %q", want)
		}
	}
}

func TestConstrained_DecodesDrafts(t *testing.T) {
	client := &mockClient{structured: `{"sources":[{"url_index":0,"title":"ICCPR (1966)","year":"1966","reference":"Article 19 protects expression."}]}`}
	e := NewConstrained(client)

	drafts, err := e.Extract(context.Background(), "q", "a", trustedPair)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if drafts[0].URLIndex != 0 || drafts[0].Title != "ICCPR (1966)" {
		t.Errorf("unexpected draft: %+v", drafts[0])
	}
}

func TestConstrained_BadJSONIsParseFailure(t *testing.T) {
	client := &mockClient{structured: `not json at all`}
	e := NewConstrained(client)

	_, err := e.Extract(context.Background(), "q", "a", trustedPair)
	if !errors.Is(err, ErrBadDraftJSON) {
		t.Errorf("expected ErrBadDraftJSON, got %v", err)
	}
}

func TestConstrained_UpstreamErrorPassesThrough(t *testing.T) {
	upstream := errors.New("quota exceeded")
	client := &mockClient{structuredErr: upstream}
	e := NewConstrained(client)

	_, err := e.Extract(context.Background(), "q", "a", trustedPair)
	if !errors.Is(err, upstream) {
		t.Errorf("expected upstream error, got %v", err)
	}
	if errors.Is(err, ErrBadDraftJSON) {
		t.Errorf("upstream error must not look like a parse failure")
	}
}
