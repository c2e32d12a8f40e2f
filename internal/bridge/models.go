package bridge

// Tier selects how aggressively quoted prior-thread content is stripped
// from a parsed message body.
type Tier string

const (
	TierNone   Tier = "none"
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	// TierHigh currently evaluates like TierMedium; content-based matching
	// is not implemented.
	TierHigh Tier = "high"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierNone, TierLow, TierMedium, TierHigh:
		return true
	}
	return false
}

// MessageSummary is one row of a folder listing, newest first.
type MessageSummary struct {
	ID             string `json:"entry_id"`
	Subject        string `json:"subject"`
	Sender         string `json:"sender"`
	SenderName     string `json:"sender_name"`
	ReceivedTime   string `json:"received_time,omitempty"`
	Unread         bool   `json:"unread"`
	HasAttachments bool   `json:"has_attachments"`
}

// EmailBody is a message with its full body, no normalization applied.
type EmailBody struct {
	ID             string `json:"entry_id"`
	Subject        string `json:"subject"`
	Sender         string `json:"sender"`
	SenderName     string `json:"sender_name"`
	Body           string `json:"body"`
	HTMLBody       string `json:"html_body,omitempty"`
	ReceivedTime   string `json:"received_time,omitempty"`
	HasAttachments bool   `json:"has_attachments"`
}

// Address is a (display name, address) pair.
type Address struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AttachmentMeta describes an attachment without its payload.
type AttachmentMeta struct {
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	ContentID string `json:"content_id,omitempty"`
}

// ReceivedHop is one hop of the message's Received header trace.
type ReceivedHop struct {
	Raw string `json:"raw"`
}

// ParsedMessage is the structured form of a single message after the
// deduplication and normalization pipeline.
type ParsedMessage struct {
	ID        string            `json:"entry_id"`
	Subject   string            `json:"subject"`
	From      []Address         `json:"from"`
	To        []Address         `json:"to"`
	CC        []Address         `json:"cc"`
	BCC       []Address         `json:"bcc"`
	Date      string            `json:"date,omitempty"`
	MessageID string            `json:"message_id"`
	Headers   map[string]string `json:"headers"`

	TextPlain []string `json:"text_plain"`
	TextHTML  []string `json:"text_html"`

	// Body is either the latest-reply candidate (when stripping applied)
	// or the full original body, never a mix.
	Body string `json:"body"`

	Attachments []AttachmentMeta `json:"attachments"`
	Received    []ReceivedHop    `json:"received"`

	LatestReply string `json:"latest_reply,omitempty"`
	Tier        Tier   `json:"deduplication_tier"`
	// ParentFound is nil when Tier is none.
	ParentFound *bool `json:"parent_found"`
}

// ResponseStatus is the user's reply state for a calendar event.
type ResponseStatus string

const (
	ResponseNone         ResponseStatus = "None"
	ResponseOrganizer    ResponseStatus = "Organizer"
	ResponseTentative    ResponseStatus = "Tentative"
	ResponseAccepted     ResponseStatus = "Accepted"
	ResponseDeclined     ResponseStatus = "Declined"
	ResponseNotResponded ResponseStatus = "NotResponded"
	ResponseUnknown      ResponseStatus = "Unknown"
)

// MeetingStatus is the meeting state of a calendar event.
type MeetingStatus string

const (
	MeetingNone     MeetingStatus = "NonMeeting"
	MeetingMeeting  MeetingStatus = "Meeting"
	MeetingReceived MeetingStatus = "Received"
	MeetingCanceled MeetingStatus = "Canceled"
	MeetingUnknown  MeetingStatus = "Unknown"
)

// CalendarEvent is one occurrence inside the queried window, ordered by
// start time ascending.
type CalendarEvent struct {
	ID                string         `json:"entry_id"`
	Subject           string         `json:"subject"`
	Start             string         `json:"start,omitempty"`
	End               string         `json:"end,omitempty"`
	Location          string         `json:"location"`
	Organizer         string         `json:"organizer,omitempty"`
	Body              string         `json:"body,omitempty"`
	AllDay            bool           `json:"all_day"`
	RequiredAttendees string         `json:"required_attendees"`
	OptionalAttendees string         `json:"optional_attendees"`
	ResponseStatus    ResponseStatus `json:"response_status"`
	MeetingStatus     MeetingStatus  `json:"meeting_status"`
	ResponseRequested bool           `json:"response_requested"`
}

// Task is one task item.
type Task struct {
	ID              string `json:"entry_id"`
	Subject         string `json:"subject"`
	Body            string `json:"body"`
	DueDate         string `json:"due_date,omitempty"`
	Status          int    `json:"status"`
	Priority        int    `json:"priority"`
	Complete        bool   `json:"complete"`
	PercentComplete int    `json:"percent_complete"`
}

// FolderInfo describes one node of the folder hierarchy.
type FolderInfo struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	ParentName string `json:"parent_name,omitempty"`
	ParentID   string `json:"parent_id,omitempty"`
	ItemCount  int    `json:"number_of_items"`
	Path       string `json:"path"`
	Depth      int    `json:"depth"`
}
