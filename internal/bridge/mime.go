package bridge

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/emersion/go-message/mail"
)

// mimeContent is what the rich parse path extracts from an exported
// message file.
type mimeContent struct {
	subject     string
	from        []Address
	to          []Address
	cc          []Address
	bcc         []Address
	date        string
	messageID   string
	inReplyTo   string
	headers     map[string]string
	received    []ReceivedHop
	textPlain   []string
	textHTML    []string
	attachments []AttachmentMeta
}

// readMIMEFile parses an RFC 5322 message file into its header and part
// structure. Individual unreadable parts are skipped; only a reader-level
// failure is an error.
func readMIMEFile(path string) (*mimeContent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open failed: %w", err)
	}
	defer f.Close()

	mr, err := mail.CreateReader(f)
	if err != nil {
		return nil, fmt.Errorf("mail.CreateReader failed: %w", err)
	}
	defer mr.Close()

	content := &mimeContent{
		headers:     map[string]string{},
		received:    []ReceivedHop{},
		textPlain:   []string{},
		textHTML:    []string{},
		attachments: []AttachmentMeta{},
	}

	h := mr.Header
	content.subject, _ = h.Subject()
	content.from = addressList(h, "From")
	content.to = addressList(h, "To")
	content.cc = addressList(h, "Cc")
	content.bcc = addressList(h, "Bcc")
	content.inReplyTo = h.Get("In-Reply-To")

	if id, err := h.MessageID(); err == nil {
		content.messageID = id
	}
	if date, err := h.Date(); err == nil && !date.IsZero() {
		content.date = date.Format("2006-01-02T15:04:05Z07:00")
	}

	fields := h.Fields()
	for fields.Next() {
		content.headers[fields.Key()] = fields.Value()
	}

	trace := h.FieldsByKey("Received")
	for trace.Next() {
		content.received = append(content.received, ReceivedHop{Raw: trace.Value()})
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep whatever parts were already extracted.
			break
		}

		switch ph := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, typeErr := ph.ContentType()
			body, readErr := io.ReadAll(part.Body)
			if typeErr != nil || readErr != nil {
				continue
			}
			switch {
			case strings.HasPrefix(contentType, "text/plain"):
				content.textPlain = append(content.textPlain, string(body))
			case strings.HasPrefix(contentType, "text/html"):
				content.textHTML = append(content.textHTML, string(body))
			}
		case *mail.AttachmentHeader:
			filename, _ := ph.Filename()
			body, readErr := io.ReadAll(part.Body)
			if readErr != nil {
				continue
			}
			content.attachments = append(content.attachments, AttachmentMeta{
				Filename:  filename,
				Size:      int64(len(body)),
				ContentID: strings.Trim(ph.Get("Content-Id"), "<>"),
			})
		}
	}

	return content, nil
}

func addressList(h mail.Header, key string) []Address {
	out := []Address{}
	addrs, err := h.AddressList(key)
	if err != nil {
		return out
	}
	for _, a := range addrs {
		out = append(out, Address{Name: a.Name, Email: a.Address})
	}
	return out
}
