package bridge

import (
	"fmt"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// listingBatchSize caps rows per store round-trip, bounding memory and the
// damage a single slow call can do.
const listingBatchSize = 50

// Columns projected for a listing. Everything a MessageSummary needs and
// nothing else; the row count, not the field count, drives round-trips.
var listingColumns = []string{
	colEntryID,
	colSubject,
	colSenderName,
	colSenderEmail,
	colReceivedTime,
	colUnread,
	colHasAttachments,
}

const (
	colEntryID        = "EntryID"
	colSubject        = "Subject"
	colSenderName     = "SenderName"
	colSenderEmail    = "SenderEmailAddress"
	colReceivedTime   = "ReceivedTime"
	colUnread         = "Unread"
	colHasAttachments = "HasAttachments"
)

// ListMessages returns at most limit summaries from the named folder,
// newest received first. Sorting is pushed to the store so the folder is
// never materialized locally; rows are read in capped batches. A row that
// cannot yield an identity or timestamp is skipped; a setup fault yields
// an empty result with the cause logged.
func (b *Bridge) ListMessages(folderName string, limit int) []MessageSummary {
	summaries := []MessageSummary{}
	if limit <= 0 {
		return summaries
	}

	folder, err := b.folderOrInbox(folderName)
	if err != nil {
		b.log.Error().Err(err).Str("folder", folderName).Msg("listing folder lookup failed")
		return summaries
	}

	table, err := folder.Table("", listingColumns)
	if err != nil {
		b.log.Error().Err(err).Str("folder", folder.Name()).Msg("listing column setup failed")
		return summaries
	}

	if err := table.Sort(colReceivedTime, true); err != nil {
		b.log.Error().Err(err).Str("folder", folder.Name()).Msg("listing sort setup failed")
		return summaries
	}

	for len(summaries) < limit {
		batch := listingBatchSize
		if remaining := limit - len(summaries); remaining < batch {
			batch = remaining
		}

		rows, err := table.NextBatch(batch)
		if err != nil {
			b.log.Error().Err(err).Msg("listing batch read failed")
			break
		}
		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			summary, err := summaryFromRow(row)
			if err != nil {
				b.log.Debug().Err(err).Msg("skipping unreadable row")
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

func summaryFromRow(row store.Row) (MessageSummary, error) {
	idRaw, err := row.Bytes(colEntryID)
	if err != nil {
		return MessageSummary{}, fmt.Errorf("identity read failed: %w", err)
	}
	id := decodeIdentity(idRaw)
	if id == "" {
		return MessageSummary{}, fmt.Errorf("empty identity")
	}

	received, err := row.Time(colReceivedTime)
	if err != nil {
		return MessageSummary{}, fmt.Errorf("received time read failed: %w", err)
	}

	subject, err := row.String(colSubject)
	if err != nil {
		return MessageSummary{}, fmt.Errorf("subject read failed: %w", err)
	}
	senderName, err := row.String(colSenderName)
	if err != nil {
		return MessageSummary{}, fmt.Errorf("sender name read failed: %w", err)
	}
	senderEmail, err := row.String(colSenderEmail)
	if err != nil {
		return MessageSummary{}, fmt.Errorf("sender address read failed: %w", err)
	}
	unread, err := row.Bool(colUnread)
	if err != nil {
		return MessageSummary{}, fmt.Errorf("unread flag read failed: %w", err)
	}
	hasAttachments, err := row.Bool(colHasAttachments)
	if err != nil {
		return MessageSummary{}, fmt.Errorf("attachment flag read failed: %w", err)
	}

	return MessageSummary{
		ID:             id,
		Subject:        subject,
		Sender:         senderEmail,
		SenderName:     senderName,
		ReceivedTime:   timeString(received),
		Unread:         unread,
		HasAttachments: hasAttachments,
	}, nil
}
