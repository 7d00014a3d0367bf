package file

import (
	"fmt"
	"math"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/MuhamedUsman/provlens/internal/domain"
)

// sizeUnits are the labels FormatSize cycles through by repeated division
// by 1024. Anything past GB stays in GB.
var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize converts a byte count to the summary string shown next to a
// selected file. Zero bytes renders as "0 Bytes" exactly; otherwise the
// largest unit where the scaled value is >= 1 is used, rounded to at most
// two decimal places with trailing zeros dropped, e.g. 1024 -> "1 KB",
// 1536 -> "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v := float64(bytes)
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	v = math.Round(v*100) / 100
	s := strconv2(v)
	return s + " " + sizeUnits[unit]
}

// strconv2 formats with up to 2 decimals, trimming trailing zeros so whole
// numbers render bare ("2" not "2.00").
func strconv2(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// DetectType resolves a MIME type from the filename extension, falling
// back to the bare extension when the extension is unregistered.
func DetectType(name string) string {
	ext := filepath.Ext(name)
	typ := mime.TypeByExtension(ext)
	if typ == "" {
		typ = strings.TrimPrefix(ext, ".")
	}
	return typ
}

// Select stats path and promotes it to a SelectedFile handle. Directories
// are rejected: only regular files can be uploaded.
func Select(path string) (domain.SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.SelectedFile{}, fmt.Errorf("reading filestat for %q: %w", path, err)
	}
	if info.IsDir() {
		return domain.SelectedFile{}, fmt.Errorf("%q is a directory, not a file", path)
	}
	return domain.SelectedFile{
		Name: filepath.Base(path),
		Size: info.Size(),
		Type: DetectType(path),
		Path: path,
	}, nil
}

// sampleCSV mirrors the demo record set the upload page ships with. Kept
// deliberately small and scruffy so the cleaner has something to fix.
const sampleCSV = `name,address,phone,specialty,license
Dr. Amit Sharma,Near City Mall,987654,heart doctor,
Dr. Sarah Lee,42 Elmwood Ave Springfield,(555) 012-3456,Dermatology,MD-20931
Dr. R. Gupta,,98765 43210,child specialist,MD-11872
`

// SampleName is the filename the sample selection shows up under.
const SampleName = "sample_providers.csv"

// WriteSample materializes the built-in demo CSV under dir and returns its
// SelectedFile handle, as if the user had picked it. The demo path stays
// separate from real selection; callers decide where it lands.
func WriteSample(dir string) (domain.SelectedFile, error) {
	path := filepath.Join(dir, SampleName)
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		return domain.SelectedFile{}, fmt.Errorf("writing sample csv: %w", err)
	}
	return Select(path)
}
