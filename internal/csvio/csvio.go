package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MuhamedUsman/provlens/internal/domain"
)

var (
	ErrEmptyFile  = errors.New("csv file has no header row")
	ErrNoRecords  = errors.New("csv file has a header but no records")
	ErrBlankHeader = errors.New("csv header contains a blank column name")
)

// ReadProviders decodes a header-mapped provider CSV into records. Every
// data row maps column -> value using the header row; short rows are
// rejected by the csv package, values are whitespace-trimmed.
func ReadProviders(r io.Reader) ([]domain.ProviderRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			return nil, ErrBlankHeader
		}
	}

	var records []domain.ProviderRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", len(records)+2, err)
		}
		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			fields[h] = strings.TrimSpace(row[i])
		}
		records = append(records, domain.ProviderRecord{Headers: headers, Fields: fields})
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}
