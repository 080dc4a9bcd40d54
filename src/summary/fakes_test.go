package summary

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// fakeHistory serves a channel of total messages with ids total..1, newest first.
type fakeHistory struct {
	total int
	calls []fetchCall
	fail  error
}

type fetchCall struct {
	limit  int
	before string
}

func (f *fakeHistory) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	f.calls = append(f.calls, fetchCall{limit: limit, before: beforeID})
	if f.fail != nil {
		return nil, f.fail
	}
	start := f.total
	if beforeID != "" {
		n, err := strconv.Atoi(beforeID)
		if err != nil {
			return nil, err
		}
		start = n - 1
	}
	var out []*discordgo.Message
	for id := start; id >= 1 && len(out) < limit; id-- {
		out = append(out, fakeMessage(id))
	}
	return out, nil
}

func fakeMessage(id int) *discordgo.Message {
	author := id%3 + 1
	return &discordgo.Message{
		ID:        strconv.Itoa(id),
		Content:   fmt.Sprintf("message %d", id),
		Timestamp: time.Unix(1700000000+int64(id)*60, 0).UTC(),
		Author: &discordgo.User{
			ID:         strconv.Itoa(author),
			Username:   fmt.Sprintf("user%d", author),
			GlobalName: "",
		},
	}
}

type fakeMembers struct {
	mu      sync.Mutex
	calls   map[string]int
	members map[string]*discordgo.Member
}

func (f *fakeMembers) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[userID]++
	if m, ok := f.members[userID]; ok {
		return m, nil
	}
	return nil, errors.New("HTTP 404 Not Found, {\"message\": \"Unknown Member\", \"code\": 10007}")
}

type mapCache struct {
	mu    sync.Mutex
	names map[string]string
}

func (c *mapCache) Get(ctx context.Context, guildID, userID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.names[guildID+"/"+userID]
	return name, ok
}

func (c *mapCache) Set(ctx context.Context, guildID, userID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.names == nil {
		c.names = map[string]string{}
	}
	c.names[guildID+"/"+userID] = name
}
