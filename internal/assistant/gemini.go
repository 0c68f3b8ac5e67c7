package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker/v2"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
)

const (
	// DefaultBaseURL is the default Gemini API endpoint
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the generation model used for project estimates
	DefaultModel = "gemini-2.5-flash"

	// requestTimeout bounds the external call. The original client
	// waited indefinitely; the timeout is an enhancement.
	requestTimeout = 30 * time.Second
)

const systemInstruction = `You are an expert construction engineer assistant for 'BuildItFast', a quick commerce app.
Your goal is to help users estimate materials and create "Project Bundles".

CATALOG CONTEXT:
%s

RULES:
1. If the user asks for a project (e.g. "paint a room", "build a wall"), CALCULATE the materials needed.
2. Create a 'bundle' object containing the relevant items from the catalog.
3. Be realistic with estimates (e.g. 1 liter paint covers ~100 sq ft).
4. If a specific product isn't in the catalog, substitute with the closest match or omit.
5. Return JSON.`

// GeminiClient implements Client against the native Gemini
// GenerateContent API, with a circuit breaker around the call.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*Reply]
	validate   *validator.Validate
}

func NewGeminiClient(apiKey, baseURL, model string) *GeminiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
		breaker:    gobreaker.NewCircuitBreaker[*Reply](gobreaker.Settings{Name: "gemini"}),
		validate:   validator.New(),
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiSystemInstruction struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent          `json:"contents"`
	SystemInstruction *geminiSystemInstruction `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig  `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Estimate(ctx context.Context, userText string, catalogContext []catalog.ProductExcerpt) (*Reply, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	return c.breaker.Execute(func() (*Reply, error) {
		return c.estimate(ctx, userText, catalogContext)
	})
}

func (c *GeminiClient) estimate(ctx context.Context, userText string, catalogContext []catalog.ProductExcerpt) (*Reply, error) {
	contextJSON, err := json.Marshal(catalogContext)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog context: %w", err)
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userText}}},
		},
		SystemInstruction: &geminiSystemInstruction{
			Parts: []geminiPart{{Text: fmt.Sprintf(systemInstruction, contextJSON)}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API returned status %d", resp.StatusCode)
	}

	var genResp geminiResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response has no candidates")
	}

	var reply Reply
	if err := json.Unmarshal([]byte(genResp.Candidates[0].Content.Parts[0].Text), &reply); err != nil {
		return nil, fmt.Errorf("failed to parse reply payload: %w", err)
	}
	if err := c.validate.Struct(reply); err != nil {
		return nil, fmt.Errorf("reply payload failed validation: %w", err)
	}

	return &reply, nil
}
