package classify

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/allang/companion-memory/internal/logging"
	"github.com/allang/companion-memory/internal/model"
)

// rawRecord is the untrusted wire shape of one extraction record.
type rawRecord struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    string `json:"value"`
	Priority int    `json:"priority"`
}

// codeFencePattern matches a markdown code block, with or without a language
// tag, so fenced model output can be unwrapped before parsing.
var codeFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// ParseRecords turns raw classifier output into validated extraction records.
// The payload is untrusted: surrounding code fences are stripped, a payload
// that is not a JSON array is dropped as a whole, and records missing the
// fields their category requires are dropped individually. Failures are
// logged as soft failures; ParseRecords never panics and never returns an
// error to the caller.
func ParseRecords(content string) []model.Record {
	content = cleanResponse(content)
	if content == "" || content == "[]" {
		return nil
	}

	var raw []rawRecord
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		logging.Warnf("classify: malformed payload dropped: %v", err)
		return nil
	}

	var records []model.Record
	for _, r := range raw {
		rec, ok := validate(r)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// validate checks one raw record against the requirements of its declared
// category.
func validate(r rawRecord) (model.Record, bool) {
	category := model.ParseCategory(r.Category)
	value := strings.TrimSpace(r.Value)

	switch category {
	case model.CategoryLongTerm:
		if r.Key == "" || value == "" {
			logging.Warnf("classify: dropping long-term record missing key or value")
			return model.Record{}, false
		}
	case model.CategoryMidTerm:
		if value == "" {
			logging.Warnf("classify: dropping mid-term record missing value")
			return model.Record{}, false
		}
	case model.CategorySkip:
		return model.Record{}, false
	default:
		logging.Warnf("classify: dropping record with unknown category %q", r.Category)
		return model.Record{}, false
	}

	return model.Record{
		Category: category,
		Key:      strings.TrimSpace(r.Key),
		Value:    value,
		Priority: model.ClampPriority(r.Priority),
	}, true
}

// cleanResponse strips markdown code fences and surrounding whitespace from
// model output.
func cleanResponse(content string) string {
	content = strings.TrimSpace(content)
	if m := codeFencePattern.FindStringSubmatch(content); len(m) > 1 {
		content = m[1]
	}
	return strings.TrimSpace(content)
}
