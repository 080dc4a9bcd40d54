package summary

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Record is the compact, request-scoped projection of a Discord message fed to the model.
type Record struct {
	ID         string
	Content    string
	Author     string
	AuthorName string
	CreatedAt  time.Time
}

// Normalize maps messages to records. names holds resolved display names by user id and may be
// nil. When chronological is set the output runs oldest to newest; otherwise it keeps the
// fetch order (newest first).
func Normalize(messages []*discordgo.Message, names map[string]string, chronological bool) []Record {
	records := make([]Record, 0, len(messages))
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		rec := Record{
			ID:        msg.ID,
			Content:   msg.Content,
			CreatedAt: msg.Timestamp,
		}
		if msg.Author != nil {
			rec.Author = msg.Author.Mention()
			rec.AuthorName = names[msg.Author.ID]
		}
		records = append(records, rec)
	}
	if chronological {
		for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
	}
	return records
}

type classicRecord struct {
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type enrichedRecord struct {
	MessageID  string `json:"message_id"`
	Content    string `json:"content"`
	Author     string `json:"author"`
	AuthorName string `json:"author_name,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// MarshalRecords serialises records the way the profile's prompt expects them.
func MarshalRecords(records []Record, profile Profile) ([]byte, error) {
	if !profile.ISOTimestamps {
		out := make([]classicRecord, len(records))
		for i, r := range records {
			out[i] = classicRecord{MessageID: r.ID, Content: r.Content, Timestamp: r.CreatedAt.UnixMilli()}
		}
		return encodeJSON(out)
	}

	out := make([]enrichedRecord, len(records))
	for i, r := range records {
		out[i] = enrichedRecord{
			MessageID:  r.ID,
			Content:    r.Content,
			Author:     r.Author,
			AuthorName: r.AuthorName,
			Timestamp:  r.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return encodeJSON(out)
}

// encodeJSON keeps <, > and & literal so mention syntax reaches the model unchanged.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
