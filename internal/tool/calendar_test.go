package tool_test

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olbridge/outlook-mcp/internal/bridge"
	"github.com/olbridge/outlook-mcp/internal/tool"
)

func TestListCalendarEvents(t *testing.T) {
	var gotStart, gotEnd time.Time
	var gotUnbounded bool

	svc := &outlookSvcMock{
		ListCalendarEventsFunc: func(_ context.Context, start, end time.Time, unbounded bool) ([]bridge.CalendarEvent, error) {
			gotStart = start
			gotEnd = end
			gotUnbounded = unbounded

			return []bridge.CalendarEvent{
				{
					ID:             "appt-001",
					Subject:        "Standup",
					Start:          "2026-08-30 09:00:00",
					End:            "2026-08-30 09:15:00",
					ResponseStatus: bridge.ResponseAccepted,
					MeetingStatus:  bridge.MeetingMeeting,
				},
			}, nil
		},
	}

	session := newTestSession(t, svc)
	ctx := context.Background()

	t.Run("default window is seven days", func(t *testing.T) {
		before := time.Now()
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "list_calendar_events",
			Arguments: tool.ListCalendarEventsRequest{},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)

		var response tool.ListCalendarEventsResponse
		decodeResult(t, result, &response)

		assert.False(t, gotUnbounded)
		assert.WithinDuration(t, before, gotStart, time.Minute)
		assert.Equal(t, 7*24*time.Hour, gotEnd.Sub(gotStart))
		require.Equal(t, 1, response.TotalResults)
		assert.Equal(t, "appt-001", response.Events[0].ID)
		assert.Equal(t, bridge.ResponseAccepted, response.Events[0].ResponseStatus)
	})

	t.Run("all events disables the window", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "list_calendar_events",
			Arguments: tool.ListCalendarEventsRequest{Days: 3, AllEvents: true},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)

		assert.True(t, gotUnbounded)
		assert.Equal(t, 3*24*time.Hour, gotEnd.Sub(gotStart))
	})
}

func TestCreateAppointment(t *testing.T) {
	var gotOpts bridge.AppointmentOptions

	svc := &outlookSvcMock{
		CreateAppointmentFunc: func(_ context.Context, opts bridge.AppointmentOptions) (string, error) {
			gotOpts = opts
			return "appt-new", nil
		},
	}

	session := newTestSession(t, svc)
	ctx := context.Background()

	t.Run("end defaults to thirty minutes", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name: "create_appointment",
			Arguments: tool.CreateAppointmentRequest{
				Subject: "Design review",
				Start:   "2026-09-01 14:00",
			},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)

		var response tool.CreateAppointmentResponse
		decodeResult(t, result, &response)

		assert.Equal(t, "appt-new", response.EntryID)
		assert.Equal(t, "Design review", gotOpts.Subject)
		assert.Equal(t, 30*time.Minute, gotOpts.End.Sub(gotOpts.Start))
	})

	t.Run("invalid start rejected", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name: "create_appointment",
			Arguments: tool.CreateAppointmentRequest{
				Subject: "Design review",
				Start:   "tomorrow-ish",
			},
		})
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "invalid start")
	})

	t.Run("end before start rejected", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name: "create_appointment",
			Arguments: tool.CreateAppointmentRequest{
				Subject: "Design review",
				Start:   "2026-09-01 14:00",
				End:     "2026-09-01 13:00",
			},
		})
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "end must be after start")
	})
}
