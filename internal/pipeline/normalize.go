package pipeline

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"newsdigest/internal/model"

	"github.com/spf13/cast"
)

// RFC 3339 can only express years 0000 through 9999.
const (
	minEpoch = -62167219200
	maxEpoch = 253402300799
)

// Normalize coerces raw records into NormalizedArticle. Output has the same
// length and order as the input. Bad fields degrade to "" or nil.
func Normalize(raw []model.RawArticle) []model.NormalizedArticle {
	out := make([]model.NormalizedArticle, 0, len(raw))
	for _, r := range raw {
		out = append(out, model.NormalizedArticle{
			Headline: textField(r, "headline"),
			Source:   textField(r, "source"),
			Datetime: datetimeField(r["datetime"]),
			URL:      textField(r, "url"),
			Summary:  textField(r, "summary"),
		})
	}
	return out
}

func textField(r model.RawArticle, key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func datetimeField(v any) *string {
	switch dt := v.(type) {
	case string:
		return &dt
	case json.Number:
		f, err := dt.Float64()
		if err != nil {
			return nil
		}
		return epochToISO(f)
	case float64:
		return epochToISO(dt)
	case float32:
		return epochToISO(float64(dt))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return epochToISO(cast.ToFloat64(dt))
	default:
		return nil
	}
}

func epochToISO(sec float64) *string {
	if math.IsNaN(sec) || sec < minEpoch || sec > maxEpoch {
		return nil
	}
	whole, frac := math.Modf(sec)
	return formatUTC(time.Unix(int64(whole), int64(frac*1e9)))
}

func formatUTC(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}
