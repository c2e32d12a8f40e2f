package bridge

import (
	"fmt"
	"time"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// appointmentClassFilter keeps only appointment-class items. Meeting
// requests and responses share the calendar folder but are not iterable as
// appointments; they must be excluded before anything else touches the
// collection.
const appointmentClassFilter = "[MessageClass] >= 'IPM.Appointment' AND [MessageClass] < 'IPM.Appointment{'"

// filterTimeLayout is the store's filter-expression date format.
const filterTimeLayout = "01/02/2006 15:04"

var responseStatusByCode = map[int]ResponseStatus{
	0: ResponseNone,
	1: ResponseOrganizer,
	2: ResponseTentative,
	3: ResponseAccepted,
	4: ResponseDeclined,
	5: ResponseNotResponded,
}

var meetingStatusByCode = map[int]MeetingStatus{
	0: MeetingNone,
	1: MeetingMeeting,
	2: MeetingReceived,
	3: MeetingCanceled,
}

func responseStatusFromCode(code int, ok bool) ResponseStatus {
	if !ok {
		return ResponseUnknown
	}
	if s, found := responseStatusByCode[code]; found {
		return s
	}
	return ResponseUnknown
}

func meetingStatusFromCode(code int, ok bool) MeetingStatus {
	if !ok {
		return MeetingUnknown
	}
	if s, found := meetingStatusByCode[code]; found {
		return s
	}
	return MeetingUnknown
}

// ListCalendarEvents returns events overlapping [windowStart, windowEnd],
// ordered by start time ascending. With unbounded set the window filter is
// skipped and every expanded occurrence the store yields is returned.
//
// The setup order is load-bearing. A recurring appointment with no end
// date expands indefinitely, so the collection must be class-restricted,
// expansion-enabled, sorted ascending, and window-restricted before the
// first item is pulled. Filtering only after iteration starts enumerates
// unbounded occurrences.
func (b *Bridge) ListCalendarEvents(windowStart, windowEnd time.Time, unbounded bool) []CalendarEvent {
	events := []CalendarEvent{}

	calendar, err := b.acc.FolderByName(store.FolderCalendar)
	if err != nil {
		b.log.Error().Err(err).Msg("calendar folder lookup failed")
		return events
	}

	items, err := calendar.Items()
	if err != nil {
		b.log.Error().Err(err).Msg("calendar items lookup failed")
		return events
	}

	items, err = items.Restrict(appointmentClassFilter)
	if err != nil {
		b.log.Error().Err(err).Msg("appointment class restriction failed")
		return events
	}

	if err := items.SetIncludeRecurrences(true); err != nil {
		b.log.Error().Err(err).Msg("recurrence expansion setup failed")
		return events
	}

	// Ascending start order; expansion is only well-defined this way.
	if err := items.Sort("[Start]", false); err != nil {
		b.log.Error().Err(err).Msg("calendar sort setup failed")
		return events
	}

	if !unbounded {
		windowFilter := fmt.Sprintf(
			"[Start] <= '%s' AND [End] >= '%s'",
			windowEnd.Format(filterTimeLayout),
			windowStart.Format(filterTimeLayout),
		)
		items, err = items.Restrict(windowFilter)
		if err != nil {
			b.log.Error().Err(err).Msg("calendar window restriction failed")
			return events
		}
	}

	cursor := items.Cursor()
	faults := 0
	for {
		item, err := cursor.Next()
		if err != nil {
			faults++
			if faults >= cursorFaultLimit {
				b.log.Error().Err(err).Msg("calendar iteration aborted, cursor keeps failing")
				break
			}
			b.log.Debug().Err(err).Msg("skipping unreadable calendar item")
			continue
		}
		faults = 0
		if item == nil {
			break
		}

		event, ok := b.eventFromItem(item)
		if !ok {
			continue
		}

		// The store's window filter is re-checked locally; a silently
		// unapplied restriction must not leak out-of-window occurrences.
		if !unbounded {
			start := optTime(item, "Start")
			end := optTime(item, "End")
			if end.IsZero() {
				end = start
			}
			if start.After(windowEnd) || end.Before(windowStart) {
				continue
			}
		}

		events = append(events, event)
	}

	return events
}

// eventFromItem builds a CalendarEvent, requiring a decodable identity and
// start time. All other fields degrade to defaults.
func (b *Bridge) eventFromItem(item store.Item) (CalendarEvent, bool) {
	id, err := item.ID()
	if err != nil || id == "" {
		return CalendarEvent{}, false
	}

	start := optTime(item, "Start")
	if start.IsZero() {
		return CalendarEvent{}, false
	}

	respCode, respErr := item.Int("ResponseStatus")
	meetCode, meetErr := item.Int("MeetingStatus")

	return CalendarEvent{
		ID:                id,
		Subject:           optString(item, "Subject", "(No Subject)"),
		Start:             timeString(start),
		End:               timeString(optTime(item, "End")),
		Location:          optString(item, "Location", ""),
		Organizer:         optString(item, "Organizer", ""),
		AllDay:            optBool(item, "AllDayEvent", false),
		RequiredAttendees: optString(item, "RequiredAttendees", ""),
		OptionalAttendees: optString(item, "OptionalAttendees", ""),
		ResponseStatus:    responseStatusFromCode(respCode, respErr == nil),
		MeetingStatus:     meetingStatusFromCode(meetCode, meetErr == nil),
		ResponseRequested: optBool(item, "ResponseRequested", false),
	}, true
}
