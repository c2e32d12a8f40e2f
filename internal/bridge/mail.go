package bridge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// SendOptions carries everything needed to compose a message.
type SendOptions struct {
	To        string
	Subject   string
	Body      string
	CC        string
	BCC       string
	HTMLBody  string
	FilePaths []string
	SaveDraft bool
}

// SendEmail composes and sends a message, or saves it as a draft. Returns
// the draft identity when saving, "" when sent.
func (b *Bridge) SendEmail(opts SendOptions) (string, error) {
	item, err := b.createMailItem(opts.SaveDraft)
	if err != nil {
		return "", fmt.Errorf("mail item creation failed: %w", err)
	}

	if err := item.Set("To", opts.To); err != nil {
		return "", fmt.Errorf("setting To failed: %w", err)
	}
	if err := item.Set("Subject", opts.Subject); err != nil {
		return "", fmt.Errorf("setting Subject failed: %w", err)
	}
	if opts.HTMLBody != "" {
		err = item.Set("HTMLBody", opts.HTMLBody)
	} else {
		err = item.Set("Body", opts.Body)
	}
	if err != nil {
		return "", fmt.Errorf("setting body failed: %w", err)
	}
	if opts.CC != "" {
		if err := item.Set("CC", opts.CC); err != nil {
			return "", fmt.Errorf("setting CC failed: %w", err)
		}
	}
	if opts.BCC != "" {
		if err := item.Set("BCC", opts.BCC); err != nil {
			return "", fmt.Errorf("setting BCC failed: %w", err)
		}
	}

	for _, path := range opts.FilePaths {
		if err := item.AttachFile(path); err != nil {
			b.log.Warn().Err(err).Str("path", path).Msg("attachment skipped")
		}
	}

	if opts.SaveDraft {
		if err := item.Save(); err != nil {
			return "", fmt.Errorf("draft save failed: %w", err)
		}
		id, err := item.ID()
		if err != nil {
			return "", fmt.Errorf("draft identity read failed: %w", err)
		}
		return id, nil
	}

	if err := item.Send(); err != nil {
		return "", fmt.Errorf("send failed: %w", err)
	}
	return "", nil
}

// createMailItem prefers creating drafts inside the Drafts folder so they
// land in the right account.
func (b *Bridge) createMailItem(saveDraft bool) (store.Item, error) {
	if saveDraft {
		if drafts, err := b.acc.FolderByName(store.FolderDrafts); err == nil {
			if item, err := drafts.AddItem(); err == nil {
				return item, nil
			}
		}
	}
	return b.acc.CreateItem(store.ClassMail)
}

// ReplyEmail replies to a message, to the sender only or to all.
func (b *Bridge) ReplyEmail(id, body string, replyAll bool) error {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	reply, err := item.Reply(replyAll)
	if err != nil {
		return fmt.Errorf("reply creation failed: %w", err)
	}
	if err := reply.Set("Body", body); err != nil {
		return fmt.Errorf("setting body failed: %w", err)
	}
	if err := reply.Send(); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

// ForwardEmail forwards a message, prepending body when given.
func (b *Bridge) ForwardEmail(id, to, body string) error {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	fwd, err := item.Forward()
	if err != nil {
		return fmt.Errorf("forward creation failed: %w", err)
	}
	if err := fwd.Set("To", to); err != nil {
		return fmt.Errorf("setting To failed: %w", err)
	}
	if body != "" {
		existing := optString(fwd, "Body", "")
		if err := fwd.Set("Body", body+"\n\n"+existing); err != nil {
			return fmt.Errorf("setting body failed: %w", err)
		}
	}
	if err := fwd.Send(); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

// MarkEmail sets the unread flag.
func (b *Bridge) MarkEmail(id string, unread bool) error {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	if err := item.Set("Unread", unread); err != nil {
		return fmt.Errorf("setting unread failed: %w", err)
	}
	if err := item.Save(); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	return nil
}

// MoveEmail moves a message to the named folder.
func (b *Bridge) MoveEmail(id, folderName string) error {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	target, err := b.acc.FolderByName(folderName)
	if err != nil {
		return fmt.Errorf("folder %q lookup failed: %w", folderName, err)
	}
	if err := item.Move(target); err != nil {
		return fmt.Errorf("move failed: %w", err)
	}
	return nil
}

// DeleteEmail deletes a message.
func (b *Bridge) DeleteEmail(id string) error {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	if err := item.Delete(); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// GetEmailBody returns a message with its full raw body, no normalization.
func (b *Bridge) GetEmailBody(id string) (*EmailBody, error) {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("item lookup failed: %w", err)
	}

	itemID, err := item.ID()
	if err != nil {
		return nil, fmt.Errorf("identity read failed: %w", err)
	}

	atts, _ := item.Attachments()

	return &EmailBody{
		ID:             itemID,
		Subject:        optString(item, "Subject", ""),
		Sender:         optString(item, "SenderEmailAddress", ""),
		SenderName:     optString(item, "SenderName", ""),
		Body:           optString(item, "Body", ""),
		HTMLBody:       optString(item, "HTMLBody", ""),
		ReceivedTime:   timeString(optTime(item, "ReceivedTime")),
		HasAttachments: len(atts) > 0,
	}, nil
}

// SearchCriteria are structured search terms joined with AND.
type SearchCriteria struct {
	Subject        string
	Sender         string
	Body           string
	Unread         *bool
	HasAttachments *bool
	Folder         string
	Limit          int
}

// SearchEmails lists messages matching the criteria, newest first. With no
// criteria it degrades to a plain listing.
func (b *Bridge) SearchEmails(c SearchCriteria) []MessageSummary {
	filter := buildSearchFilter(c)
	if filter == "" {
		return b.ListMessages(c.Folder, c.Limit)
	}

	folder, err := b.folderOrInbox(c.Folder)
	if err != nil {
		b.log.Error().Err(err).Str("folder", c.Folder).Msg("search folder lookup failed")
		return []MessageSummary{}
	}

	table, err := folder.Table(filter, listingColumns)
	if err != nil {
		b.log.Error().Err(err).Msg("search filter setup failed")
		return []MessageSummary{}
	}
	if err := table.Sort(colReceivedTime, true); err != nil {
		b.log.Error().Err(err).Msg("search sort setup failed")
		return []MessageSummary{}
	}

	return b.drainTable(table, c.Limit)
}

// drainTable reads summaries from an already prepared table.
func (b *Bridge) drainTable(table store.Table, limit int) []MessageSummary {
	summaries := []MessageSummary{}
	if limit <= 0 {
		return summaries
	}
	for len(summaries) < limit {
		batch := listingBatchSize
		if remaining := limit - len(summaries); remaining < batch {
			batch = remaining
		}
		rows, err := table.NextBatch(batch)
		if err != nil {
			b.log.Error().Err(err).Msg("search batch read failed")
			break
		}
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			summary, err := summaryFromRow(row)
			if err != nil {
				continue
			}
			summaries = append(summaries, summary)
			if len(summaries) == limit {
				break
			}
		}
	}
	return summaries
}

func buildSearchFilter(c SearchCriteria) string {
	filters := []string{}

	if c.Subject != "" {
		filters = append(filters, fmt.Sprintf(
			`@SQL="urn:schemas:httpmail:subject" LIKE '%%%s%%'`, escapeFilterValue(c.Subject)))
	}
	if c.Body != "" {
		filters = append(filters, fmt.Sprintf(
			`@SQL="urn:schemas:httpmail:textdescription" LIKE '%%%s%%'`, escapeFilterValue(c.Body)))
	}
	if c.Sender != "" {
		safe := escapeFilterValue(c.Sender)
		filters = append(filters, fmt.Sprintf(
			`(@SQL="urn:schemas:httpmail:fromname" LIKE '%%%s%%' OR "urn:schemas:httpmail:fromemail" LIKE '%%%s%%')`,
			safe, safe))
	}
	if c.Unread != nil {
		filters = append(filters, "[Unread] = "+jetBool(*c.Unread))
	}
	if c.HasAttachments != nil {
		filters = append(filters, "[HasAttachments] = "+jetBool(*c.HasAttachments))
	}

	return strings.Join(filters, " AND ")
}

func jetBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
