package summary

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// MessageSource is the part of *discordgo.Session used to page through channel history.
type MessageSource interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
}

// FetchResult holds collected messages, newest first.
type FetchResult struct {
	Messages []*discordgo.Message
	Batches  int
}

// FetchMessages walks history backwards in batches of at most BatchSize, using the oldest id
// of each batch as the next "before" cursor. It stops when limit messages are collected or a
// batch comes back empty. Errors are returned as-is; there is no retry.
func FetchMessages(ctx context.Context, src MessageSource, channelID string, limit int, progress func(remaining int)) (*FetchResult, error) {
	res := &FetchResult{Messages: make([]*discordgo.Message, 0, limit)}
	before := ""

	for len(res.Messages) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		remaining := limit - len(res.Messages)
		size := remaining
		if size > BatchSize {
			size = BatchSize
		}
		if progress != nil {
			progress(remaining)
		}

		batch, err := src.ChannelMessages(channelID, size, before, "", "", discordgo.WithContext(ctx))
		res.Batches++
		if err != nil {
			return nil, fmt.Errorf("summary: fetch before %q: %w", before, err)
		}
		if len(batch) == 0 {
			break
		}
		if len(batch) > size {
			batch = batch[:size]
		}

		res.Messages = append(res.Messages, batch...)
		before = batch[len(batch)-1].ID
	}

	return res, nil
}
