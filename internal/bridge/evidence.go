package bridge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// Extended property tags for internet headers not exposed as plain fields.
const (
	propInReplyTo         = "http://schemas.microsoft.com/mapi/proptag/0x1042001E"
	propInternetMessageID = "http://schemas.microsoft.com/mapi/proptag/0x1035001E"
)

var subjectPrefixPattern = regexp.MustCompile(`(?i)^((re|fw|fwd):\s*)+`)

// normalizeSubject strips reply/forward prefixes for subject-based parent
// matching.
func normalizeSubject(subject string) string {
	return strings.TrimSpace(subjectPrefixPattern.ReplaceAllString(subject, ""))
}

// parentEvidence is what a message offers for locating its parent: a
// reply-reference header and a subject. Either may be empty.
type parentEvidence struct {
	inReplyTo string
	subject   string
}

// parentIndex answers existence queries against the primary mailbox.
type parentIndex interface {
	hasMessageID(msgID string) (bool, error)
	hasSubject(subject string) (bool, error)
}

// resolveParent decides whether the parent of a message exists, per tier.
// Low consults only the reply-reference header; medium (and high, which is
// not separately implemented) falls back to a normalized-subject match
// when the header lookup yields nothing. The same logic serves both the
// rich and the fallback parse paths; only the evidence differs.
func resolveParent(tier Tier, ev parentEvidence, idx parentIndex) bool {
	if tier == TierNone {
		return false
	}

	if msgID := strings.Trim(ev.inReplyTo, "<> "); msgID != "" {
		found, err := idx.hasMessageID(msgID)
		if err == nil && found {
			return true
		}
	}

	if tier == TierMedium || tier == TierHigh {
		if subject := normalizeSubject(ev.subject); subject != "" {
			found, err := idx.hasSubject(subject)
			if err == nil && found {
				return true
			}
		}
	}

	return false
}

// inboxIndex implements parentIndex with restriction queries against the
// primary inbox. Restriction is folder-bound; checking the inbox covers
// the common reply chain without a store-wide scan.
type inboxIndex struct {
	b *Bridge
}

func (x inboxIndex) hasMessageID(msgID string) (bool, error) {
	filter := fmt.Sprintf("@SQL=%q = '%s'", propInternetMessageID, escapeFilterValue(msgID))
	return x.anyMatch(filter)
}

func (x inboxIndex) hasSubject(subject string) (bool, error) {
	filter := fmt.Sprintf("[Subject] = '%s'", escapeFilterValue(subject))
	return x.anyMatch(filter)
}

func (x inboxIndex) anyMatch(filter string) (bool, error) {
	inbox, err := x.b.acc.FolderByName(store.FolderInbox)
	if err != nil {
		return false, fmt.Errorf("inbox lookup failed: %w", err)
	}
	items, err := inbox.Items()
	if err != nil {
		return false, fmt.Errorf("inbox items failed: %w", err)
	}
	matched, err := items.Restrict(filter)
	if err != nil {
		return false, fmt.Errorf("restriction failed: %w", err)
	}
	count, err := matched.Count()
	if err != nil {
		return false, fmt.Errorf("match count failed: %w", err)
	}
	return count > 0, nil
}

// escapeFilterValue doubles single quotes for the store's filter syntax.
func escapeFilterValue(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}
