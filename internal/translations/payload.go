package translations

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"translation-manager/internal/metrics"
)

// Fields are the column values of one translation row.
type Fields map[string]any

// Payload maps language ids to the fields written for that language.
type Payload map[uint]Fields

// LanguageIDs returns the payload keys in ascending order.
func (p Payload) LanguageIDs() []uint {
	ids := make([]uint, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ParsePayload decodes a JSON translations object such as
// {"1": {"name": "Red Shoe"}, "2": {...}}. Anything that is not an object
// yields an empty payload; malformed entries are dropped one by one.
func ParsePayload(raw []byte) Payload {
	if len(raw) == 0 {
		return Payload{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		metrics.PayloadEntriesSkipped.WithLabelValues("malformed_payload").Inc()
		return Payload{}
	}
	return PayloadFromValue(v)
}

// PayloadFromValue converts decoded data into a Payload. Objects are keyed
// by language id; arrays use the element index as the id.
func PayloadFromValue(v any) Payload {
	out := Payload{}

	switch data := v.(type) {
	case nil:
	case map[string]any:
		for key, value := range data {
			id, ok := parseLanguageKey(key)
			if !ok {
				metrics.PayloadEntriesSkipped.WithLabelValues("malformed_key").Inc()
				continue
			}
			addEntry(out, id, value)
		}
	case map[uint]Fields:
		for id, fields := range data {
			if id == 0 {
				metrics.PayloadEntriesSkipped.WithLabelValues("malformed_key").Inc()
				continue
			}
			if fields == nil {
				metrics.PayloadEntriesSkipped.WithLabelValues("malformed_fields").Inc()
				continue
			}
			out[id] = fields
		}
	case Payload:
		return PayloadFromValue(map[uint]Fields(data))
	case []any:
		for i, value := range data {
			if value == nil {
				continue
			}
			if i == 0 {
				metrics.PayloadEntriesSkipped.WithLabelValues("malformed_key").Inc()
				continue
			}
			addEntry(out, uint(i), value)
		}
	default:
		metrics.PayloadEntriesSkipped.WithLabelValues("malformed_payload").Inc()
	}

	return out
}

func addEntry(out Payload, id uint, value any) {
	switch fields := value.(type) {
	case map[string]any:
		out[id] = Fields(fields)
	case Fields:
		out[id] = fields
	default:
		metrics.PayloadEntriesSkipped.WithLabelValues("malformed_fields").Inc()
	}
}

func parseLanguageKey(key string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// stringValue reads a slug source value. Anything that is not text, nil
// included, counts as "not provided".
func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	default:
		return "", false
	}
}
