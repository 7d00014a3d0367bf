package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MuhamedUsman/provlens/internal/domain"
)

const (
	defaultModel    = "gemini-2.5-flash"
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	requestTimeout  = 30 * time.Second
)

var ErrNoAPIKey = errors.New("gemini: api key not configured")

// Cleaner scores and repairs a single provider record.
type Cleaner interface {
	Clean(ctx context.Context, rec domain.ProviderRecord, opts domain.CleanOptions) (domain.CleanResult, error)
}

// Client calls the Gemini generateContent REST endpoint. A thin typed
// wrapper over the documented wire format; unknown fields are omitted.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	http     *http.Client
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:   strings.TrimSpace(apiKey),
		model:    model,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Clean prompts the model with one record and parses its JSON verdict.
func (c *Client) Clean(ctx context.Context, rec domain.ProviderRecord, opts domain.CleanOptions) (domain.CleanResult, error) {
	if c.apiKey == "" {
		return domain.CleanResult{}, ErrNoAPIKey
	}
	raw, err := c.generate(ctx, buildPrompt(rec, opts))
	if err != nil {
		return domain.CleanResult{}, err
	}
	res, err := parseResult(raw)
	if err != nil {
		return domain.CleanResult{}, fmt.Errorf("gemini: parsing model response: %w, raw response: %q", err, raw)
	}
	return res, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{Temperature: 0.2},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: calling generateContent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return "", fmt.Errorf("gemini: http %d: %v", resp.StatusCode, apiErr)
	}

	var out generateResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini: decoding response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}

	sb := new(strings.Builder)
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func buildPrompt(rec domain.ProviderRecord, opts domain.CleanOptions) string {
	payload, _ := json.Marshal(rec.Fields)

	tasks := make([]string, 0, 5)
	if opts.FixAddresses {
		tasks = append(tasks, "Fix incorrect or incomplete addresses")
	}
	if opts.NormalizePhones {
		tasks = append(tasks, "Normalize phone numbers")
	}
	if opts.StandardizeSpecialty {
		tasks = append(tasks, "Standardize medical specialties")
	}
	if opts.FlagSuspiciousFields {
		tasks = append(tasks, "Identify missing or suspicious fields")
	}
	tasks = append(tasks, "Assign an accuracy score from 0 to 100")

	sb := new(strings.Builder)
	sb.WriteString("You are an AI healthcare data cleaner.\n\n")
	sb.WriteString("Input provider record:\n")
	sb.Write(payload)
	sb.WriteString("\n\nTasks:\n")
	for i, t := range tasks {
		fmt.Fprintf(sb, "%d. %s\n", i+1, t)
	}
	sb.WriteString("\nReturn ONLY a JSON object in this format:\n")
	sb.WriteString(`{"cleaned_data": {}, "issues": [], "accuracy_score": 0}`)
	return sb.String()
}

// jsonBlob matches the first '{' through the last '}', so fenced or
// prose-wrapped model output still yields the JSON object.
var jsonBlob = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON pulls the first JSON object out of free-form model output.
func extractJSON(text string) ([]byte, error) {
	m := jsonBlob.FindString(text)
	if m == "" {
		return nil, errors.New("no JSON object found in model response")
	}
	return []byte(m), nil
}

// parseResult decodes and defensively normalizes a model verdict: missing
// collections become empty, the score is coerced to an int in 0..100.
func parseResult(text string) (domain.CleanResult, error) {
	blob, err := extractJSON(text)
	if err != nil {
		return domain.CleanResult{}, err
	}

	var raw struct {
		CleanedData   map[string]string `json:"cleaned_data"`
		Issues        []string          `json:"issues"`
		AccuracyScore json.Number       `json:"accuracy_score"`
	}
	if err = json.Unmarshal(blob, &raw); err != nil {
		return domain.CleanResult{}, fmt.Errorf("decoding JSON object: %w", err)
	}

	res := domain.CleanResult{
		CleanedData: raw.CleanedData,
		Issues:      raw.Issues,
	}
	if res.CleanedData == nil {
		res.CleanedData = map[string]string{}
	}
	if res.Issues == nil {
		res.Issues = []string{}
	}
	res.AccuracyScore = clampScore(raw.AccuracyScore)
	return res, nil
}

func clampScore(n json.Number) int {
	f, err := n.Float64()
	if err != nil {
		if i, err2 := strconv.Atoi(strings.TrimSpace(n.String())); err2 == nil {
			f = float64(i)
		}
	}
	score := int(f)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
