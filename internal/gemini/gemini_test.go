package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/MuhamedUsman/provlens/internal/domain"
)

func TestParseResult(t *testing.T) {
	cases := map[string]struct {
		in        string
		wantScore int
		wantErr   bool
	}{
		"bare json": {
			in:        `{"cleaned_data": {"name": "Dr. A"}, "issues": ["x"], "accuracy_score": 85}`,
			wantScore: 85,
		},
		"fenced json": {
			in:        "```json\n{\"cleaned_data\": {}, \"issues\": [], \"accuracy_score\": 70}\n```",
			wantScore: 70,
		},
		"prose wrapped": {
			in:        "Here is the result you asked for:\n{\"cleaned_data\": {}, \"issues\": [], \"accuracy_score\": 40}\nLet me know if you need more.",
			wantScore: 40,
		},
		"score above range": {
			in:        `{"cleaned_data": {}, "issues": [], "accuracy_score": 250}`,
			wantScore: 100,
		},
		"score below range": {
			in:        `{"cleaned_data": {}, "issues": [], "accuracy_score": -3}`,
			wantScore: 0,
		},
		"missing collections": {
			in:        `{"accuracy_score": 55}`,
			wantScore: 55,
		},
		"no json at all": {
			in:      "I could not process this record.",
			wantErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := parseResult(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if res.AccuracyScore != tc.wantScore {
				t.Errorf("score = %d, want %d", res.AccuracyScore, tc.wantScore)
			}
			if res.CleanedData == nil || res.Issues == nil {
				t.Error("collections must be normalized to non-nil")
			}
		})
	}
}

func TestClientClean(t *testing.T) {
	verdict := `{"cleaned_data": {"name": "Dr. Amit Sharma"}, "issues": ["missing field: license"], "accuracy_score": 72}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Contents) == 0 || !strings.Contains(req.Contents[0].Parts[0].Text, "healthcare data cleaner") {
			t.Error("prompt missing from request")
		}
		resp := fmt.Sprintf(`{"candidates": [{"content": {"parts": [{"text": %q}]}}]}`, "```json\n"+verdict+"\n```")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(resp))
	}))
	defer srv.Close()

	c := NewClient("test-key", "")
	c.endpoint = srv.URL

	rec := domain.ProviderRecord{
		Headers: []string{"name", "license"},
		Fields:  map[string]string{"name": "Dr Amit Sharma", "license": ""},
	}
	res, err := c.Clean(t.Context(), rec, domain.AllCleanOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.AccuracyScore != 72 {
		t.Errorf("score = %d, want 72", res.AccuracyScore)
	}
	if res.CleanedData["name"] != "Dr. Amit Sharma" {
		t.Errorf("unexpected cleaned name %q", res.CleanedData["name"])
	}
}

func TestClientCleanNoKey(t *testing.T) {
	c := NewClient("", "")
	_, err := c.Clean(t.Context(), domain.ProviderRecord{}, domain.CleanOptions{})
	if err != ErrNoAPIKey {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestHeuristicClean(t *testing.T) {
	rec := domain.ProviderRecord{
		Headers: []string{"name", "address", "phone", "specialty", "license"},
		Fields: map[string]string{
			"name":      "Dr. Amit Sharma",
			"address":   "Near City Mall",
			"phone":     "9876543210",
			"specialty": "heart doctor",
			"license":   "",
		},
	}
	res, err := NewHeuristic().Clean(context.Background(), rec, domain.AllCleanOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := res.CleanedData["phone"]; got != "(987) 654-3210" {
		t.Errorf("phone = %q, want formatted 10-digit number", got)
	}
	if got := res.CleanedData["specialty"]; got != "Cardiology" {
		t.Errorf("specialty = %q, want Cardiology", got)
	}
	if !slices.Contains(res.Issues, "missing field: license") {
		t.Errorf("expected a missing-license issue, got %v", res.Issues)
	}
	hasAddrIssue := false
	for _, is := range res.Issues {
		if strings.Contains(is, "address") {
			hasAddrIssue = true
		}
	}
	if !hasAddrIssue {
		t.Errorf("expected an address issue, got %v", res.Issues)
	}
	if res.AccuracyScore >= 100 || res.AccuracyScore < 0 {
		t.Errorf("score %d out of expected range", res.AccuracyScore)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in, want, issue string
	}{
		{"(555) 012-3456", "(555) 012-3456", ""},
		{"555.012.3456", "(555) 012-3456", ""},
		{"15550123456", "(555) 012-3456", ""},
		{"987654", "987654", "expected 10"},
		{"", "", ""},
	}
	for _, tc := range cases {
		got, issue := normalizePhone(tc.in)
		if got != tc.want {
			t.Errorf("normalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if tc.issue == "" && issue != "" {
			t.Errorf("normalizePhone(%q) unexpected issue %q", tc.in, issue)
		}
		if tc.issue != "" && !strings.Contains(issue, tc.issue) {
			t.Errorf("normalizePhone(%q) issue = %q, want contains %q", tc.in, issue, tc.issue)
		}
	}
}
