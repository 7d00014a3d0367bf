package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MuhamedUsman/provlens/internal/domain"
)

func TestClean(t *testing.T) {
	csv := "name,phone\nDr. Jane Doe,555-123-4567\n"
	path := filepath.Join(t.TempDir(), "providers.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clean" {
			t.Errorf("Expected path /clean, got %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Expected Accept application/json, got %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if got := r.Form.Get("normalize_phones"); got != "true" {
			t.Errorf("Expected normalize_phones=true, got %q", got)
		}
		if got := r.Form.Get("fix_addresses"); got != "false" {
			t.Errorf("Expected fix_addresses=false, got %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading uploaded file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "providers.csv" {
			t.Errorf("Expected filename providers.csv, got %q", hdr.Filename)
		}
		report := domain.CleanReport{
			Filename: hdr.Filename,
			Records: []domain.RecordReport{{
				Result: domain.CleanResult{AccuracyScore: 95},
			}},
			MeanScore: 95,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"report": report})
	}))
	defer ts.Close()

	c := &Client{http: &http.Client{Timeout: 5 * time.Second}, addr: ts.URL}
	report, err := c.Clean(t.Context(), path, domain.CleanOptions{NormalizePhones: true})
	if err != nil {
		t.Fatal(err)
	}
	if report.Filename != "providers.csv" {
		t.Errorf("Expected filename providers.csv, got %q", report.Filename)
	}
	if report.MeanScore != 95 {
		t.Errorf("Expected mean score 95, got %d", report.MeanScore)
	}
}

func TestCleanServerRefusal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.csv")
	if err := os.WriteFile(path, []byte("name\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": "no records found past the header"})
	}))
	defer ts.Close()

	c := &Client{http: &http.Client{Timeout: 5 * time.Second}, addr: ts.URL}
	_, err := c.Clean(t.Context(), path, domain.AllCleanOptions())
	if err == nil {
		t.Fatal("Expected an error for a refused upload")
	}
	if want := "no records found past the header"; !strings.Contains(err.Error(), want) {
		t.Errorf("Expected error to mention %q, got %q", want, err)
	}
}

func TestStopServer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stop" {
			t.Errorf("Expected path /stop, got %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := &Client{http: &http.Client{Timeout: 5 * time.Second}, addr: ts.URL}
	status, err := c.StopServer(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusAccepted {
		t.Errorf("Expected status 202, got %d", status)
	}
}
