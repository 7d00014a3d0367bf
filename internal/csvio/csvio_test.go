package csvio

import (
	"errors"
	"strings"
	"testing"
)

func TestReadProviders(t *testing.T) {
	in := `name,address,phone
Dr. Amit Sharma,Near City Mall,987654
Dr. Sarah Lee,42 Elmwood Ave, (555) 012-3456
`
	records, err := ReadProviders(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got := records[0].Get("name"); got != "Dr. Amit Sharma" {
		t.Errorf("expected name field, got %q", got)
	}
	if got := records[1].Get("phone"); got != "(555) 012-3456" {
		t.Errorf("expected trimmed phone field, got %q", got)
	}
	if len(records[0].Headers) != 3 {
		t.Errorf("expected 3 headers, got %v", records[0].Headers)
	}
}

func TestReadProvidersEmpty(t *testing.T) {
	if _, err := ReadProviders(strings.NewReader("")); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
	if _, err := ReadProviders(strings.NewReader("name,phone\n")); !errors.Is(err, ErrNoRecords) {
		t.Errorf("expected ErrNoRecords, got %v", err)
	}
	if _, err := ReadProviders(strings.NewReader("name,,phone\na,b,c\n")); !errors.Is(err, ErrBlankHeader) {
		t.Errorf("expected ErrBlankHeader, got %v", err)
	}
}

func TestReadProvidersRaggedRow(t *testing.T) {
	in := "name,phone\nDr. A,123,extra\n"
	if _, err := ReadProviders(strings.NewReader(in)); err == nil {
		t.Error("expected error for ragged row")
	}
}
