package bridge

import (
	"encoding/hex"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/olbridge/outlook-mcp/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

// timeString renders a store timestamp, "" for the zero value so callers
// can treat the field as absent.
func timeString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

// Optional field accessors: a failed or missing field read yields the
// typed default instead of an error. Item fields are dynamic; presence
// depends on the item's class.

func optString(it store.Item, field, def string) string {
	v, err := it.String(field)
	if err != nil {
		return def
	}
	return v
}

func optBool(it store.Item, field string, def bool) bool {
	v, err := it.Bool(field)
	if err != nil {
		return def
	}
	return v
}

func optInt(it store.Item, field string, def int) int {
	v, err := it.Int(field)
	if err != nil {
		return def
	}
	return v
}

func optTime(it store.Item, field string) time.Time {
	v, err := it.Time(field)
	if err != nil {
		return time.Time{}
	}
	return v
}

// decodeIdentity turns a raw identity column value into a stable string.
// Identities arrive either as text or as binary bytes; binary ones are
// hex-encoded so they survive JSON transport.
func decodeIdentity(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if isPrintableText(raw) {
		return string(raw)
	}
	return hex.EncodeToString(raw)
}

func isPrintableText(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if r == utf8.RuneError || (!unicode.IsPrint(r) && !unicode.IsSpace(r)) {
			return false
		}
	}
	return true
}
