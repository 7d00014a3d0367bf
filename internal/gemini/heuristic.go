package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/MuhamedUsman/provlens/internal/domain"
)

// Heuristic is the offline cleaner used when no API key is configured.
// Rule-based and deterministic, it mimics the model's contract (cleaned
// fields, issues, score) so the rest of the app stays identical whichever
// cleaner is wired in. It also doubles as the test cleaner.
type Heuristic struct{}

func NewHeuristic() *Heuristic { return &Heuristic{} }

// specialtyTable folds colloquial specialty names to standard ones.
var specialtyTable = map[string]string{
	"heart doctor":     "Cardiology",
	"heart specialist": "Cardiology",
	"child specialist": "Pediatrics",
	"child doctor":     "Pediatrics",
	"skin doctor":      "Dermatology",
	"skin specialist":  "Dermatology",
	"brain doctor":     "Neurology",
	"bone doctor":      "Orthopedics",
	"eye doctor":       "Ophthalmology",
	"cancer doctor":    "Oncology",
	"family doctor":    "Family Medicine",
	"gp":               "General Practice",
}

func (h *Heuristic) Clean(ctx context.Context, rec domain.ProviderRecord, opts domain.CleanOptions) (domain.CleanResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.CleanResult{}, err
	}

	cleaned := make(map[string]string, len(rec.Fields))
	for k, v := range rec.Fields {
		cleaned[k] = v
	}
	issues := []string{}

	if opts.NormalizePhones {
		if phone, ok := cleaned["phone"]; ok {
			normalized, issue := normalizePhone(phone)
			cleaned["phone"] = normalized
			if issue != "" {
				issues = append(issues, issue)
			}
		}
	}

	if opts.StandardizeSpecialty {
		if sp, ok := cleaned["specialty"]; ok && sp != "" {
			cleaned["specialty"] = standardizeSpecialty(sp)
		}
	}

	if opts.FixAddresses {
		if addr, ok := cleaned["address"]; ok && addr != "" && !strings.ContainsAny(addr, "0123456789") {
			issues = append(issues, "address has no street number, looks incomplete")
		}
	}

	if opts.FlagSuspiciousFields {
		for _, h := range rec.Headers {
			if strings.TrimSpace(cleaned[h]) == "" {
				issues = append(issues, fmt.Sprintf("missing field: %s", h))
			}
		}
	}

	score := 100 - 15*len(issues)
	if score < 0 {
		score = 0
	}

	return domain.CleanResult{
		CleanedData:   cleaned,
		Issues:        issues,
		AccuracyScore: score,
	}, nil
}

// normalizePhone strips formatting and re-renders a 10-digit US number as
// (XXX) XXX-XXXX. Anything shorter is kept as digits and flagged.
func normalizePhone(phone string) (string, string) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	switch {
	case digits == "":
		return phone, ""
	case len(digits) == 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:]), ""
	case len(digits) == 11 && digits[0] == '1':
		return fmt.Sprintf("(%s) %s-%s", digits[1:4], digits[4:7], digits[7:]), ""
	default:
		return digits, fmt.Sprintf("phone number %q has %d digits, expected 10", phone, len(digits))
	}
}

func standardizeSpecialty(s string) string {
	if std, ok := specialtyTable[strings.ToLower(strings.TrimSpace(s))]; ok {
		return std
	}
	// unknown specialties keep their wording, title-cased
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
