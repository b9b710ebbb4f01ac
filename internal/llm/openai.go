package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/veridex/veridex/internal/ground"
	"github.com/veridex/veridex/internal/model"
)

const defaultBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements Client against the OpenAI API or any
// OpenAI-compatible endpoint via BaseURL
type OpenAIClient struct {
	client     *openai.Client
	httpClient *http.Client
	baseURL    string
	cfg        model.LLMConfig
}

// NewOpenAIClient creates a client. The API key is required; callers that
// want a degrading pipeline wrap the error with NewUnavailable instead.
func NewOpenAIClient(cfg model.LLMConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(clientConfig),
		httpClient: &http.Client{},
		baseURL:    baseURL,
		cfg:        cfg,
	}, nil
}

// groundedRequest is the chat-completion request for the search call
type groundedRequest struct {
	Model     string            `json:"model"`
	Messages  []groundedMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens,omitempty"`
}

type groundedMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// groundedResponse decodes the choice message together with the
// url_citation annotations the search-preview models attach. The go-openai
// response type does not model annotations, so the search call speaks the
// wire shape directly.
type groundedResponse struct {
	Choices []struct {
		Message struct {
			Content     string       `json:"content"`
			Annotations []annotation `json:"annotations"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type annotation struct {
	Type        string       `json:"type"`
	URLCitation *urlCitation `json:"url_citation,omitempty"`
}

type urlCitation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// GenerateGrounded issues the search-augmented call. The search-preview
// models attach url_citation annotations identifying the pages that
// informed the answer; those become the grounding chunks. A response with
// no annotations yields an empty chunk list, not an error. The deadline is
// whatever the caller's context carries; no timeout is added here.
func (c *OpenAIClient) GenerateGrounded(ctx context.Context, prompt string) (*GroundedAnswer, error) {
	body, err := json.Marshal(groundedRequest{
		Model:     c.searchModel(),
		Messages:  []groundedMessage{{Role: "user", Content: prompt}},
		MaxTokens: c.maxTokens(),
	})
	if err != nil {
		return nil, fmt.Errorf("grounded generation: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("grounded generation: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grounded generation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("grounded generation: read response: %w", err)
	}

	var parsed groundedResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("grounded generation: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("grounded generation: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("grounded generation: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("grounded generation: empty response")
	}

	msg := parsed.Choices[0].Message
	var chunks []ground.RawChunk
	for _, ann := range msg.Annotations {
		if ann.URLCitation == nil {
			continue
		}
		chunks = append(chunks, ground.RawChunk{
			Title: ann.URLCitation.Title,
			URI:   ann.URLCitation.URL,
		})
	}

	return &GroundedAnswer{
		Text:   strings.TrimSpace(msg.Content),
		Chunks: chunks,
	}, nil
}

// GenerateStructured issues the schema-constrained call and returns the
// raw JSON document
func (c *OpenAIClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	schema, err := jsonschema.GenerateSchemaForType(req.Sample)
	if err != nil {
		return "", fmt.Errorf("generate schema %s: %w", req.SchemaName, err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.extractModel(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   c.maxTokens(),
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("structured generation %s: %w", req.SchemaName, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("structured generation %s: empty response", req.SchemaName)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) searchModel() string {
	if c.cfg.SearchModel != "" {
		return c.cfg.SearchModel
	}
	return "gpt-4o-search-preview"
}

func (c *OpenAIClient) extractModel() string {
	if c.cfg.ExtractModel != "" {
		return c.cfg.ExtractModel
	}
	return openai.GPT4oMini
}

func (c *OpenAIClient) maxTokens() int {
	if c.cfg.MaxTokens > 0 {
		return c.cfg.MaxTokens
	}
	return 2000
}
