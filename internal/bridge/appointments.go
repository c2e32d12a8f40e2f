package bridge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// Meeting response codes understood by the store.
var meetingResponseCodes = map[string]int{
	"accept":    3,
	"decline":   4,
	"tentative": 2,
}

// GetAppointment returns full appointment details by identity.
func (b *Bridge) GetAppointment(id string) (*CalendarEvent, error) {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("item lookup failed: %w", err)
	}

	event, ok := b.eventFromItem(item)
	if !ok {
		return nil, fmt.Errorf("appointment fields unreadable")
	}
	event.Body = optString(item, "Body", "")
	return &event, nil
}

// AppointmentOptions describes a new appointment.
type AppointmentOptions struct {
	Subject           string
	Start             time.Time
	End               time.Time
	Location          string
	Body              string
	AllDay            bool
	RequiredAttendees string
	OptionalAttendees string
}

// CreateAppointment creates an appointment in the calendar folder and
// returns its identity.
func (b *Bridge) CreateAppointment(opts AppointmentOptions) (string, error) {
	item, err := b.createCalendarItem()
	if err != nil {
		return "", fmt.Errorf("appointment creation failed: %w", err)
	}

	sets := []struct {
		field string
		value any
	}{
		{"Subject", opts.Subject},
		{"Start", opts.Start},
		{"End", opts.End},
		{"Location", opts.Location},
		{"Body", opts.Body},
		{"AllDayEvent", opts.AllDay},
	}
	for _, s := range sets {
		if err := item.Set(s.field, s.value); err != nil {
			return "", fmt.Errorf("setting %s failed: %w", s.field, err)
		}
	}
	if opts.RequiredAttendees != "" {
		if err := item.Set("RequiredAttendees", opts.RequiredAttendees); err != nil {
			return "", fmt.Errorf("setting RequiredAttendees failed: %w", err)
		}
	}
	if opts.OptionalAttendees != "" {
		if err := item.Set("OptionalAttendees", opts.OptionalAttendees); err != nil {
			return "", fmt.Errorf("setting OptionalAttendees failed: %w", err)
		}
	}

	if err := item.Save(); err != nil {
		return "", fmt.Errorf("save failed: %w", err)
	}
	id, err := item.ID()
	if err != nil {
		return "", fmt.Errorf("identity read failed: %w", err)
	}
	return id, nil
}

func (b *Bridge) createCalendarItem() (store.Item, error) {
	if calendar, err := b.acc.FolderByName(store.FolderCalendar); err == nil {
		if item, err := calendar.AddItem(); err == nil {
			return item, nil
		}
	}
	return b.acc.CreateItem(store.ClassAppointment)
}

// RespondMeeting answers a meeting invitation with accept, decline or
// tentative.
func (b *Bridge) RespondMeeting(id, response string) error {
	code, ok := meetingResponseCodes[strings.ToLower(response)]
	if !ok {
		return fmt.Errorf("unknown meeting response %q", response)
	}

	item, err := b.acc.ItemByID(id)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	resp, err := item.Respond(code)
	if err != nil {
		return fmt.Errorf("response creation failed: %w", err)
	}
	if err := resp.Send(); err != nil {
		return fmt.Errorf("response send failed: %w", err)
	}
	return nil
}

// DeleteAppointment deletes an appointment by identity.
func (b *Bridge) DeleteAppointment(id string) error {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	if err := item.Delete(); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
