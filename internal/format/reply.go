package format

import (
	"regexp"
	"strings"
)

// Patterns that introduce quoted prior-thread content. Matching is
// line-anchored; the earliest match wins.
var replySeparators = []*regexp.Regexp{
	// "On Mon, Jan 2, 2006 at 3:04 PM, Someone <x@y> wrote:"
	regexp.MustCompile(`(?i)^On .{1,200}wrote:\s*$`),
	// Outlook-style forwarded/original message banner
	regexp.MustCompile(`(?i)^-{2,}\s*(Original Message|Forwarded message)\s*-{2,}\s*$`),
	// Outlook quote header block
	regexp.MustCompile(`(?i)^From:\s.+$`),
	// Long underscore rule Outlook inserts above quoted content
	regexp.MustCompile(`^_{6,}\s*$`),
}

var quotedLine = regexp.MustCompile(`^\s*>`)

// LatestReply extracts the newest reply portion of a message body,
// dropping quoted prior-thread content. It returns "" when no quoted
// content is detected, meaning there is no candidate and the caller must
// keep the full body.
func LatestReply(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	lines := strings.Split(body, "\n")
	cut := -1

	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if matchesSeparator(trimmed) {
			// A "From:" header only counts when followed by the rest of a
			// quote header block; a bare line is normal prose.
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(trimmed)), "from:") &&
				!followedByQuoteHeader(lines, i) {
				continue
			}
			cut = i
			break
		}
		if quotedLine.MatchString(trimmed) {
			cut = i
			break
		}
	}

	if cut <= 0 {
		// Separator on the first line (or none at all) leaves no reply text.
		return ""
	}

	reply := strings.TrimSpace(strings.Join(lines[:cut], "\n"))
	return reply
}

func matchesSeparator(line string) bool {
	for _, re := range replySeparators {
		if re.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

// followedByQuoteHeader checks for Sent:/Date:/To: within the next few
// lines, which distinguishes a quote header block from body text.
func followedByQuoteHeader(lines []string, idx int) bool {
	limit := idx + 4
	if limit > len(lines) {
		limit = len(lines)
	}
	for _, line := range lines[idx+1 : limit] {
		l := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(l, "sent:") || strings.HasPrefix(l, "date:") || strings.HasPrefix(l, "to:") {
			return true
		}
	}
	return false
}
