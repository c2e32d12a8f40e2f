package tool_test

import (
	"context"
	"time"

	"github.com/olbridge/outlook-mcp/internal/bridge"
)

// outlookSvcMock implements the tool service contract with overridable
// functions. Calling an unset function panics, which keeps tests honest
// about what they exercise.
type outlookSvcMock struct {
	ListMessagesFunc       func(ctx context.Context, folder string, limit int) ([]bridge.MessageSummary, error)
	SearchEmailsFunc       func(ctx context.Context, c bridge.SearchCriteria) ([]bridge.MessageSummary, error)
	ParseMessageFunc       func(ctx context.Context, id string, tier bridge.Tier, stripHTML bool) (*bridge.ParsedMessage, error)
	GetEmailBodyFunc       func(ctx context.Context, id string) (*bridge.EmailBody, error)
	SendEmailFunc          func(ctx context.Context, opts bridge.SendOptions) (string, error)
	ReplyEmailFunc         func(ctx context.Context, id, body string, replyAll bool) error
	ForwardEmailFunc       func(ctx context.Context, id, to, body string) error
	MarkEmailFunc          func(ctx context.Context, id string, unread bool) error
	MoveEmailFunc          func(ctx context.Context, id, folder string) error
	DeleteEmailFunc        func(ctx context.Context, id string) error
	ListCalendarEventsFunc func(ctx context.Context, start, end time.Time, unbounded bool) ([]bridge.CalendarEvent, error)
	GetAppointmentFunc     func(ctx context.Context, id string) (*bridge.CalendarEvent, error)
	CreateAppointmentFunc  func(ctx context.Context, opts bridge.AppointmentOptions) (string, error)
	RespondMeetingFunc     func(ctx context.Context, id, response string) error
	DeleteAppointmentFunc  func(ctx context.Context, id string) error
	ListTasksFunc          func(ctx context.Context, includeCompleted bool) ([]bridge.Task, error)
	GetTaskFunc            func(ctx context.Context, id string) (*bridge.Task, error)
	CreateTaskFunc         func(ctx context.Context, subject, body, dueDate string, importance int) (string, error)
	CompleteTaskFunc       func(ctx context.Context, id string) error
	DeleteTaskFunc         func(ctx context.Context, id string) error
	ListFoldersFunc        func(ctx context.Context, root string) ([]bridge.FolderInfo, error)

	DownloadAttachmentsFunc func(ctx context.Context, id, dir string) ([]string, error)
	CurrentUserFunc         func(ctx context.Context) (string, error)
}

func (m *outlookSvcMock) ListMessages(ctx context.Context, folder string, limit int) ([]bridge.MessageSummary, error) {
	return m.ListMessagesFunc(ctx, folder, limit)
}

func (m *outlookSvcMock) SearchEmails(ctx context.Context, c bridge.SearchCriteria) ([]bridge.MessageSummary, error) {
	return m.SearchEmailsFunc(ctx, c)
}

func (m *outlookSvcMock) ParseMessage(ctx context.Context, id string, tier bridge.Tier, stripHTML bool) (*bridge.ParsedMessage, error) {
	return m.ParseMessageFunc(ctx, id, tier, stripHTML)
}

func (m *outlookSvcMock) GetEmailBody(ctx context.Context, id string) (*bridge.EmailBody, error) {
	return m.GetEmailBodyFunc(ctx, id)
}

func (m *outlookSvcMock) SendEmail(ctx context.Context, opts bridge.SendOptions) (string, error) {
	return m.SendEmailFunc(ctx, opts)
}

func (m *outlookSvcMock) ReplyEmail(ctx context.Context, id, body string, replyAll bool) error {
	return m.ReplyEmailFunc(ctx, id, body, replyAll)
}

func (m *outlookSvcMock) ForwardEmail(ctx context.Context, id, to, body string) error {
	return m.ForwardEmailFunc(ctx, id, to, body)
}

func (m *outlookSvcMock) MarkEmail(ctx context.Context, id string, unread bool) error {
	return m.MarkEmailFunc(ctx, id, unread)
}

func (m *outlookSvcMock) MoveEmail(ctx context.Context, id, folder string) error {
	return m.MoveEmailFunc(ctx, id, folder)
}

func (m *outlookSvcMock) DeleteEmail(ctx context.Context, id string) error {
	return m.DeleteEmailFunc(ctx, id)
}

func (m *outlookSvcMock) ListCalendarEvents(ctx context.Context, start, end time.Time, unbounded bool) ([]bridge.CalendarEvent, error) {
	return m.ListCalendarEventsFunc(ctx, start, end, unbounded)
}

func (m *outlookSvcMock) GetAppointment(ctx context.Context, id string) (*bridge.CalendarEvent, error) {
	return m.GetAppointmentFunc(ctx, id)
}

func (m *outlookSvcMock) CreateAppointment(ctx context.Context, opts bridge.AppointmentOptions) (string, error) {
	return m.CreateAppointmentFunc(ctx, opts)
}

func (m *outlookSvcMock) RespondMeeting(ctx context.Context, id, response string) error {
	return m.RespondMeetingFunc(ctx, id, response)
}

func (m *outlookSvcMock) DeleteAppointment(ctx context.Context, id string) error {
	return m.DeleteAppointmentFunc(ctx, id)
}

func (m *outlookSvcMock) ListTasks(ctx context.Context, includeCompleted bool) ([]bridge.Task, error) {
	return m.ListTasksFunc(ctx, includeCompleted)
}

func (m *outlookSvcMock) GetTask(ctx context.Context, id string) (*bridge.Task, error) {
	return m.GetTaskFunc(ctx, id)
}

func (m *outlookSvcMock) CreateTask(ctx context.Context, subject, body, dueDate string, importance int) (string, error) {
	return m.CreateTaskFunc(ctx, subject, body, dueDate, importance)
}

func (m *outlookSvcMock) CompleteTask(ctx context.Context, id string) error {
	return m.CompleteTaskFunc(ctx, id)
}

func (m *outlookSvcMock) DeleteTask(ctx context.Context, id string) error {
	return m.DeleteTaskFunc(ctx, id)
}

func (m *outlookSvcMock) ListFolders(ctx context.Context, root string) ([]bridge.FolderInfo, error) {
	return m.ListFoldersFunc(ctx, root)
}

func (m *outlookSvcMock) DownloadAttachments(ctx context.Context, id, dir string) ([]string, error) {
	return m.DownloadAttachmentsFunc(ctx, id, dir)
}

func (m *outlookSvcMock) CurrentUser(ctx context.Context) (string, error) {
	return m.CurrentUserFunc(ctx)
}
