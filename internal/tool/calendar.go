package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olbridge/outlook-mcp/internal/bridge"
	"github.com/olbridge/outlook-mcp/internal/store"
)

// ListCalendarEventsRequest selects a forward-looking window.
type ListCalendarEventsRequest struct {
	Days int `json:"days,omitempty" jsonschema:"days ahead to include, defaults to 7"`
	// AllEvents disables the window and returns every event, recurring
	// series expanded.
	AllEvents bool `json:"all_events,omitempty" jsonschema:"ignore the window and return all events"`
}

// ListCalendarEventsResponse contains events ordered by start ascending.
type ListCalendarEventsResponse struct {
	Events       []bridge.CalendarEvent `json:"events" jsonschema:"array of calendar events"`
	TotalResults int                    `json:"total_results" jsonschema:"number of events returned"`
}

type listCalendarEventsSvc interface {
	ListCalendarEvents(ctx context.Context, start, end time.Time, unbounded bool) ([]bridge.CalendarEvent, error)
}

// NewListCalendarEvents creates a new ListCalendarEvents tool.
func NewListCalendarEvents(svc listCalendarEventsSvc) *ListCalendarEvents {
	return &ListCalendarEvents{svc: svc, now: time.Now}
}

// ListCalendarEvents lists upcoming calendar events, recurring occurrences
// included.
type ListCalendarEvents struct {
	svc listCalendarEventsSvc
	now func() time.Time
}

// ListCalendarEvents returns events overlapping [now, now+days].
func (t *ListCalendarEvents) ListCalendarEvents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListCalendarEventsRequest,
) (*mcp.CallToolResult, ListCalendarEventsResponse, error) {
	days := input.Days
	if days <= 0 {
		days = 7
	}

	start := t.now()
	end := start.Add(time.Duration(days) * 24 * time.Hour)

	events, err := t.svc.ListCalendarEvents(ctx, start, end, input.AllEvents)
	if err != nil {
		return nil, ListCalendarEventsResponse{}, fmt.Errorf("svc.ListCalendarEvents failed: %w", err)
	}

	return nil, ListCalendarEventsResponse{
		Events:       events,
		TotalResults: len(events),
	}, nil
}

// GetAppointmentRequest identifies an appointment.
type GetAppointmentRequest struct {
	EntryID string `json:"entry_id" jsonschema:"appointment entry ID"`
}

// GetAppointmentResponse carries the appointment, or found=false when the
// entry ID does not resolve.
type GetAppointmentResponse struct {
	Found bool                  `json:"found" jsonschema:"whether the appointment was found"`
	Event *bridge.CalendarEvent `json:"event,omitempty" jsonschema:"appointment details"`
}

type getAppointmentSvc interface {
	GetAppointment(ctx context.Context, id string) (*bridge.CalendarEvent, error)
}

// NewGetAppointment creates a new GetAppointment tool.
func NewGetAppointment(svc getAppointmentSvc) *GetAppointment {
	return &GetAppointment{svc: svc}
}

// GetAppointment retrieves one appointment with its body.
type GetAppointment struct {
	svc getAppointmentSvc
}

// GetAppointment reads an appointment by entry ID.
func (t *GetAppointment) GetAppointment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetAppointmentRequest,
) (*mcp.CallToolResult, GetAppointmentResponse, error) {
	event, err := t.svc.GetAppointment(ctx, input.EntryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, GetAppointmentResponse{Found: false}, nil
		}
		return nil, GetAppointmentResponse{}, fmt.Errorf("svc.GetAppointment failed: %w", err)
	}
	return nil, GetAppointmentResponse{Found: true, Event: event}, nil
}

// CreateAppointmentRequest describes a new appointment. Start and End use
// "2006-01-02 15:04" in local time.
type CreateAppointmentRequest struct {
	Subject           string `json:"subject" jsonschema:"appointment subject"`
	Start             string `json:"start" jsonschema:"start time, YYYY-MM-DD HH:MM local"`
	End               string `json:"end,omitempty" jsonschema:"end time, defaults to start plus 30 minutes"`
	Location          string `json:"location,omitempty" jsonschema:"location text"`
	Body              string `json:"body,omitempty" jsonschema:"appointment body"`
	AllDay            bool   `json:"all_day,omitempty" jsonschema:"all-day event"`
	RequiredAttendees string `json:"required_attendees,omitempty" jsonschema:"required attendees, semicolon separated"`
	OptionalAttendees string `json:"optional_attendees,omitempty" jsonschema:"optional attendees, semicolon separated"`
}

// CreateAppointmentResponse reports the new appointment identity.
type CreateAppointmentResponse struct {
	Status  string `json:"status" jsonschema:"created on success"`
	EntryID string `json:"entry_id" jsonschema:"entry ID of the new appointment"`
}

type createAppointmentSvc interface {
	CreateAppointment(ctx context.Context, opts bridge.AppointmentOptions) (string, error)
}

// NewCreateAppointment creates a new CreateAppointment tool.
func NewCreateAppointment(svc createAppointmentSvc) *CreateAppointment {
	return &CreateAppointment{svc: svc}
}

// CreateAppointment creates a calendar appointment.
type CreateAppointment struct {
	svc createAppointmentSvc
}

// CreateAppointment parses the times and creates the appointment.
func (t *CreateAppointment) CreateAppointment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateAppointmentRequest,
) (*mcp.CallToolResult, CreateAppointmentResponse, error) {
	start, err := parseLocalTime(input.Start)
	if err != nil {
		return nil, CreateAppointmentResponse{}, fmt.Errorf("invalid start: %w", err)
	}

	end := start.Add(30 * time.Minute)
	if input.End != "" {
		end, err = parseLocalTime(input.End)
		if err != nil {
			return nil, CreateAppointmentResponse{}, fmt.Errorf("invalid end: %w", err)
		}
	}
	if !end.After(start) {
		return nil, CreateAppointmentResponse{}, fmt.Errorf("end must be after start")
	}

	id, err := t.svc.CreateAppointment(ctx, bridge.AppointmentOptions{
		Subject:           input.Subject,
		Start:             start,
		End:               end,
		Location:          input.Location,
		Body:              input.Body,
		AllDay:            input.AllDay,
		RequiredAttendees: input.RequiredAttendees,
		OptionalAttendees: input.OptionalAttendees,
	})
	if err != nil {
		return nil, CreateAppointmentResponse{}, fmt.Errorf("svc.CreateAppointment failed: %w", err)
	}

	return nil, CreateAppointmentResponse{Status: "created", EntryID: id}, nil
}

func parseLocalTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05", time.RFC3339} {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// RespondMeetingRequest answers a meeting invitation.
type RespondMeetingRequest struct {
	EntryID  string `json:"entry_id" jsonschema:"meeting entry ID"`
	Response string `json:"response" jsonschema:"accept, decline or tentative"`
}

// RespondMeetingResponse reports the outcome.
type RespondMeetingResponse struct {
	Status string `json:"status" jsonschema:"responded on success"`
}

type respondMeetingSvc interface {
	RespondMeeting(ctx context.Context, id, response string) error
}

// NewRespondMeeting creates a new RespondMeeting tool.
func NewRespondMeeting(svc respondMeetingSvc) *RespondMeeting {
	return &RespondMeeting{svc: svc}
}

// RespondMeeting sends a meeting invitation response.
type RespondMeeting struct {
	svc respondMeetingSvc
}

// RespondMeeting answers the invitation.
func (t *RespondMeeting) RespondMeeting(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RespondMeetingRequest,
) (*mcp.CallToolResult, RespondMeetingResponse, error) {
	if err := t.svc.RespondMeeting(ctx, input.EntryID, input.Response); err != nil {
		return nil, RespondMeetingResponse{}, fmt.Errorf("svc.RespondMeeting failed: %w", err)
	}
	return nil, RespondMeetingResponse{Status: "responded"}, nil
}

// DeleteAppointmentRequest deletes an appointment.
type DeleteAppointmentRequest struct {
	EntryID string `json:"entry_id" jsonschema:"appointment entry ID"`
}

// DeleteAppointmentResponse reports the outcome.
type DeleteAppointmentResponse struct {
	Status string `json:"status" jsonschema:"deleted on success"`
}

type deleteAppointmentSvc interface {
	DeleteAppointment(ctx context.Context, id string) error
}

// NewDeleteAppointment creates a new DeleteAppointment tool.
func NewDeleteAppointment(svc deleteAppointmentSvc) *DeleteAppointment {
	return &DeleteAppointment{svc: svc}
}

// DeleteAppointment removes an appointment from the calendar.
type DeleteAppointment struct {
	svc deleteAppointmentSvc
}

// DeleteAppointment performs the deletion.
func (t *DeleteAppointment) DeleteAppointment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteAppointmentRequest,
) (*mcp.CallToolResult, DeleteAppointmentResponse, error) {
	if err := t.svc.DeleteAppointment(ctx, input.EntryID); err != nil {
		return nil, DeleteAppointmentResponse{}, fmt.Errorf("svc.DeleteAppointment failed: %w", err)
	}
	return nil, DeleteAppointmentResponse{Status: "deleted"}, nil
}
