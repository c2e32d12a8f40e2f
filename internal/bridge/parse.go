package bridge

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/olbridge/outlook-mcp/internal/format"
	"github.com/olbridge/outlook-mcp/internal/store"
)

// ParseMessage builds the structured form of one message. The primary path
// exports the item to a transient MIME file and parses it for accurate
// headers and recipients; any export or parse failure degrades to a
// fallback built from the store fields already on the item. Returns
// store.ErrNotFound when the identity does not resolve.
func (b *Bridge) ParseMessage(id string, tier Tier, stripHTML bool) (*ParsedMessage, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("unknown deduplication tier %q", tier)
	}

	item, err := b.acc.ItemByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("item lookup failed: %w", err)
	}

	if msg, err := b.richParse(item, tier, stripHTML); err == nil {
		return msg, nil
	} else {
		b.log.Warn().Err(err).Str("entry_id", id).Msg("rich parse failed, using fallback")
	}

	return b.fallbackParse(item, tier, stripHTML), nil
}

// richParse exports the item and parses the export with the MIME reader.
// The temp file is removed on every exit path.
func (b *Bridge) richParse(item store.Item, tier Tier, stripHTML bool) (*ParsedMessage, error) {
	tmp, err := os.CreateTemp("", "outlook-msg-*.eml")
	if err != nil {
		return nil, fmt.Errorf("os.CreateTemp failed: %w", err)
	}
	path := tmp.Name()
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("tmp.Close failed: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			b.log.Warn().Err(err).Str("path", path).Msg("temp file removal failed")
		}
	}()

	if err := item.ExportMIME(path); err != nil {
		return nil, fmt.Errorf("item.ExportMIME failed: %w", err)
	}

	content, err := readMIMEFile(path)
	if err != nil {
		return nil, fmt.Errorf("readMIMEFile failed: %w", err)
	}

	id, err := item.ID()
	if err != nil {
		return nil, fmt.Errorf("item.ID failed: %w", err)
	}

	msg := &ParsedMessage{
		ID:          id,
		Subject:     content.subject,
		From:        content.from,
		To:          content.to,
		CC:          content.cc,
		BCC:         content.bcc,
		Date:        content.date,
		MessageID:   content.messageID,
		Headers:     content.headers,
		TextPlain:   content.textPlain,
		TextHTML:    content.textHTML,
		Attachments: content.attachments,
		Received:    content.received,
		Tier:        tier,
	}
	if msg.Date == "" {
		msg.Date = timeString(optTime(item, "ReceivedTime"))
	}

	body := strings.Join(content.textPlain, "\n")
	ev := parentEvidence{inReplyTo: content.inReplyTo, subject: content.subject}
	b.applyPolicy(msg, body, ev, stripHTML)

	return msg, nil
}

// fallbackParse builds the same shape from whichever fields the item
// exposes directly, accepting reduced header and recipient fidelity.
func (b *Bridge) fallbackParse(item store.Item, tier Tier, stripHTML bool) *ParsedMessage {
	id, err := item.ID()
	if err != nil {
		id = ""
	}

	body := optString(item, "Body", "")
	htmlBody := optString(item, "HTMLBody", "")

	msg := &ParsedMessage{
		ID:      id,
		Subject: optString(item, "Subject", ""),
		From: []Address{{
			Name:  optString(item, "SenderName", ""),
			Email: optString(item, "SenderEmailAddress", ""),
		}},
		To:          displayNameList(optString(item, "To", "")),
		CC:          displayNameList(optString(item, "CC", "")),
		BCC:         displayNameList(optString(item, "BCC", "")),
		Date:        timeString(optTime(item, "ReceivedTime")),
		MessageID:   "",
		Headers:     map[string]string{},
		TextPlain:   []string{body},
		TextHTML:    []string{},
		Attachments: b.attachmentMeta(item),
		Received:    []ReceivedHop{},
		Tier:        tier,
	}
	if htmlBody != "" {
		msg.TextHTML = []string{htmlBody}
	}

	inReplyTo, err := item.Property(propInReplyTo)
	if err != nil {
		inReplyTo = ""
	}
	ev := parentEvidence{inReplyTo: inReplyTo, subject: msg.Subject}
	b.applyPolicy(msg, body, ev, stripHTML)

	return msg
}

// applyPolicy runs the tier policy and HTML normalization on msg. body is
// the full original body; the reconstructed body is either the extracted
// latest-reply candidate (when the tier strips and a parent was found) or
// body itself, never a mix and never empty while body is not.
func (b *Bridge) applyPolicy(msg *ParsedMessage, body string, ev parentEvidence, stripHTML bool) {
	finalBody := body

	if msg.Tier != TierNone {
		msg.LatestReply = format.LatestReply(body)

		found := resolveParent(msg.Tier, ev, inboxIndex{b: b})
		msg.ParentFound = &found

		// An unresolvable parent means truncation cannot be confirmed
		// safe; likewise an empty candidate. Keep the full body then.
		if found && msg.LatestReply != "" {
			finalBody = msg.LatestReply
		}
	}

	if stripHTML {
		isHTML := format.LooksLikeHTML(finalBody)
		if isHTML || (finalBody == "" && len(msg.TextHTML) > 0) {
			source := finalBody
			if !isHTML || finalBody == "" {
				source = msg.TextHTML[0]
			}
			if source != "" {
				finalBody = format.ToText(source)
			}
		}
		// Redundant payload regardless of whether conversion ran.
		msg.TextHTML = []string{}
	}

	msg.Body = finalBody
}

func (b *Bridge) attachmentMeta(item store.Item) []AttachmentMeta {
	metas := []AttachmentMeta{}
	atts, err := item.Attachments()
	if err != nil {
		return metas
	}
	for _, att := range atts {
		name, err := att.FileName()
		if err != nil {
			continue
		}
		size, err := att.Size()
		if err != nil {
			size = 0
		}
		contentID, err := att.ContentID()
		if err != nil {
			contentID = ""
		}
		metas = append(metas, AttachmentMeta{Filename: name, Size: size, ContentID: contentID})
	}
	return metas
}

// displayNameList splits a "Name; Name" recipient display string. The
// fallback path has no addresses to offer, only names.
func displayNameList(display string) []Address {
	out := []Address{}
	for _, part := range strings.Split(display, ";") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, Address{Name: name})
		}
	}
	return out
}
