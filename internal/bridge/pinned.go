package bridge

import (
	"context"
	"time"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// Pinned dispatches every bridge call onto an apartment pool so the store
// is only ever touched from initialized, thread-pinned workers. Each call
// is synchronous; ctx bounds only the wait for a free worker, not an
// in-flight store round-trip.
type Pinned struct {
	b    *Bridge
	pool *store.Pool
}

// NewPinned wraps b with pool dispatch.
func NewPinned(b *Bridge, pool *store.Pool) *Pinned {
	return &Pinned{b: b, pool: pool}
}

func (p *Pinned) Warmup(ctx context.Context) error {
	return p.pool.Do(ctx, p.b.Warmup)
}

func (p *Pinned) ListMessages(ctx context.Context, folder string, limit int) ([]MessageSummary, error) {
	var out []MessageSummary
	err := p.pool.Do(ctx, func() error {
		out = p.b.ListMessages(folder, limit)
		return nil
	})
	return out, err
}

func (p *Pinned) SearchEmails(ctx context.Context, c SearchCriteria) ([]MessageSummary, error) {
	var out []MessageSummary
	err := p.pool.Do(ctx, func() error {
		out = p.b.SearchEmails(c)
		return nil
	})
	return out, err
}

func (p *Pinned) ParseMessage(ctx context.Context, id string, tier Tier, stripHTML bool) (*ParsedMessage, error) {
	var out *ParsedMessage
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.ParseMessage(id, tier, stripHTML)
		return innerErr
	})
	return out, err
}

func (p *Pinned) GetEmailBody(ctx context.Context, id string) (*EmailBody, error) {
	var out *EmailBody
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.GetEmailBody(id)
		return innerErr
	})
	return out, err
}

func (p *Pinned) SendEmail(ctx context.Context, opts SendOptions) (string, error) {
	var out string
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.SendEmail(opts)
		return innerErr
	})
	return out, err
}

func (p *Pinned) ReplyEmail(ctx context.Context, id, body string, replyAll bool) error {
	return p.pool.Do(ctx, func() error { return p.b.ReplyEmail(id, body, replyAll) })
}

func (p *Pinned) ForwardEmail(ctx context.Context, id, to, body string) error {
	return p.pool.Do(ctx, func() error { return p.b.ForwardEmail(id, to, body) })
}

func (p *Pinned) MarkEmail(ctx context.Context, id string, unread bool) error {
	return p.pool.Do(ctx, func() error { return p.b.MarkEmail(id, unread) })
}

func (p *Pinned) MoveEmail(ctx context.Context, id, folder string) error {
	return p.pool.Do(ctx, func() error { return p.b.MoveEmail(id, folder) })
}

func (p *Pinned) DeleteEmail(ctx context.Context, id string) error {
	return p.pool.Do(ctx, func() error { return p.b.DeleteEmail(id) })
}

func (p *Pinned) ListCalendarEvents(ctx context.Context, start, end time.Time, unbounded bool) ([]CalendarEvent, error) {
	var out []CalendarEvent
	err := p.pool.Do(ctx, func() error {
		out = p.b.ListCalendarEvents(start, end, unbounded)
		return nil
	})
	return out, err
}

func (p *Pinned) GetAppointment(ctx context.Context, id string) (*CalendarEvent, error) {
	var out *CalendarEvent
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.GetAppointment(id)
		return innerErr
	})
	return out, err
}

func (p *Pinned) CreateAppointment(ctx context.Context, opts AppointmentOptions) (string, error) {
	var out string
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.CreateAppointment(opts)
		return innerErr
	})
	return out, err
}

func (p *Pinned) RespondMeeting(ctx context.Context, id, response string) error {
	return p.pool.Do(ctx, func() error { return p.b.RespondMeeting(id, response) })
}

func (p *Pinned) DeleteAppointment(ctx context.Context, id string) error {
	return p.pool.Do(ctx, func() error { return p.b.DeleteAppointment(id) })
}

func (p *Pinned) ListTasks(ctx context.Context, includeCompleted bool) ([]Task, error) {
	var out []Task
	err := p.pool.Do(ctx, func() error {
		out = p.b.ListTasks(includeCompleted)
		return nil
	})
	return out, err
}

func (p *Pinned) GetTask(ctx context.Context, id string) (*Task, error) {
	var out *Task
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.GetTask(id)
		return innerErr
	})
	return out, err
}

func (p *Pinned) CreateTask(ctx context.Context, subject, body, dueDate string, importance int) (string, error) {
	var out string
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.CreateTask(subject, body, dueDate, importance)
		return innerErr
	})
	return out, err
}

func (p *Pinned) CompleteTask(ctx context.Context, id string) error {
	return p.pool.Do(ctx, func() error { return p.b.CompleteTask(id) })
}

func (p *Pinned) DeleteTask(ctx context.Context, id string) error {
	return p.pool.Do(ctx, func() error { return p.b.DeleteTask(id) })
}

func (p *Pinned) DownloadAttachments(ctx context.Context, id, dir string) ([]string, error) {
	var out []string
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.DownloadAttachments(id, dir)
		return innerErr
	})
	return out, err
}

func (p *Pinned) CurrentUser(ctx context.Context) (string, error) {
	var out string
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.CurrentUser()
		return innerErr
	})
	return out, err
}

func (p *Pinned) ListFolders(ctx context.Context, root string) ([]FolderInfo, error) {
	var out []FolderInfo
	err := p.pool.Do(ctx, func() error {
		var innerErr error
		out, innerErr = p.b.ListFolders(root)
		return innerErr
	})
	return out, err
}
