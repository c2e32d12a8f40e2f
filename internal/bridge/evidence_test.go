package bridge

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubIndex struct {
	messageIDs map[string]bool
	subjects   map[string]bool
	err        error

	messageIDQueries []string
	subjectQueries   []string
}

func (s *stubIndex) hasMessageID(msgID string) (bool, error) {
	s.messageIDQueries = append(s.messageIDQueries, msgID)
	return s.messageIDs[msgID], s.err
}

func (s *stubIndex) hasSubject(subject string) (bool, error) {
	s.subjectQueries = append(s.subjectQueries, subject)
	return s.subjects[subject], s.err
}

func TestResolveParent(t *testing.T) {
	cases := []struct {
		name     string
		tier     Tier
		ev       parentEvidence
		idx      *stubIndex
		expected bool
	}{
		{
			name:     "none never resolves",
			tier:     TierNone,
			ev:       parentEvidence{inReplyTo: "<parent@example.com>", subject: "Re: Hello"},
			idx:      &stubIndex{messageIDs: map[string]bool{"parent@example.com": true}},
			expected: false,
		},
		{
			name:     "low finds by header",
			tier:     TierLow,
			ev:       parentEvidence{inReplyTo: "<parent@example.com>"},
			idx:      &stubIndex{messageIDs: map[string]bool{"parent@example.com": true}},
			expected: true,
		},
		{
			name:     "low ignores subject",
			tier:     TierLow,
			ev:       parentEvidence{subject: "Re: Hello"},
			idx:      &stubIndex{subjects: map[string]bool{"Hello": true}},
			expected: false,
		},
		{
			name:     "medium falls back to subject",
			tier:     TierMedium,
			ev:       parentEvidence{inReplyTo: "<unknown@example.com>", subject: "Re: Fwd: RE: Hello"},
			idx:      &stubIndex{subjects: map[string]bool{"Hello": true}},
			expected: true,
		},
		{
			name:     "high behaves like medium",
			tier:     TierHigh,
			ev:       parentEvidence{subject: "FW: Hello"},
			idx:      &stubIndex{subjects: map[string]bool{"Hello": true}},
			expected: true,
		},
		{
			name:     "no evidence",
			tier:     TierMedium,
			ev:       parentEvidence{},
			idx:      &stubIndex{},
			expected: false,
		},
		{
			name:     "index errors treated as absent",
			tier:     TierMedium,
			ev:       parentEvidence{inReplyTo: "<parent@example.com>", subject: "Re: Hello"},
			idx:      &stubIndex{err: errors.New("store busy")},
			expected: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, resolveParent(tc.tier, tc.ev, tc.idx))
		})
	}
}

func TestResolveParentQueriesNormalized(t *testing.T) {
	idx := &stubIndex{}
	resolveParent(TierMedium, parentEvidence{
		inReplyTo: " <parent@example.com> ",
		subject:   "RE: re: Fwd: Quarterly numbers",
	}, idx)

	assert.Equal(t, []string{"parent@example.com"}, idx.messageIDQueries)
	assert.Equal(t, []string{"Quarterly numbers"}, idx.subjectQueries)
}

func TestNormalizeSubject(t *testing.T) {
	cases := map[string]string{
		"Re: Hello":             "Hello",
		"RE: FW: Fwd: Hello":    "Hello",
		"Hello":                 "Hello",
		"":                      "",
		"re:re: spaced":         "spaced",
		"Regarding the meeting": "Regarding the meeting",
	}
	for in, expected := range cases {
		assert.Equal(t, expected, normalizeSubject(in), "input %q", in)
	}
}

func TestEscapeFilterValue(t *testing.T) {
	assert.Equal(t, "O''Brien", escapeFilterValue("O'Brien"))
	assert.Equal(t, "plain", escapeFilterValue("plain"))
}

func TestInboxIndexQueries(t *testing.T) {
	var gotFilters []string
	inbox := newFakeFolder("Inbox")
	inbox.items = &fakeItems{
		restrictFn: func(filter string) *fakeItems {
			gotFilters = append(gotFilters, filter)
			return &fakeItems{entries: []*fakeItem{newFakeItem("hit")}}
		},
	}
	acc := newFakeAccessor()
	acc.addFolder(inbox)
	idx := inboxIndex{b: New(acc, zerolog.Nop())}

	found, err := idx.hasMessageID("parent@example.com")
	assert.NoError(t, err)
	assert.True(t, found)

	found, err = idx.hasSubject("O'Brien's numbers")
	assert.NoError(t, err)
	assert.True(t, found)

	assert.Contains(t, gotFilters[0], propInternetMessageID)
	assert.Contains(t, gotFilters[0], "parent@example.com")
	assert.Contains(t, gotFilters[1], "O''Brien''s numbers")
}
