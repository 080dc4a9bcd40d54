package summary

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

func TestResolveDeduplicatesAndFallsBack(t *testing.T) {
	members := &fakeMembers{members: map[string]*discordgo.Member{
		"1": {Nick: "Captain", User: &discordgo.User{ID: "1", Username: "user1"}},
		"2": {User: &discordgo.User{ID: "2", Username: "user2", GlobalName: "Second"}},
	}}
	resolver := NewNameResolver(members, nil, 4, zerolog.Nop())

	var msgs []*discordgo.Message
	for id := 1; id <= 30; id++ {
		msgs = append(msgs, fakeMessage(id))
	}
	// user 3 is not a member; user 4 left the guild but keeps a global name.
	msgs = append(msgs, &discordgo.Message{ID: "99", Author: &discordgo.User{ID: "4", Username: "gone", GlobalName: "Departed"}})

	names := resolver.Resolve(context.Background(), "guild", msgs)

	want := map[string]string{"1": "Captain", "2": "Second", "3": "user3", "4": "Departed"}
	for id, name := range want {
		if names[id] != name {
			t.Errorf("names[%s] = %q, want %q", id, names[id], name)
		}
	}
	for id, n := range members.calls {
		if n != 1 {
			t.Errorf("user %s looked up %d times, want 1", id, n)
		}
	}
}

func TestResolveUsesCache(t *testing.T) {
	members := &fakeMembers{members: map[string]*discordgo.Member{
		"2": {Nick: "Fresh", User: &discordgo.User{ID: "2"}},
	}}
	cache := &mapCache{}
	cache.Set(context.Background(), "guild", "1", "Cached")
	resolver := NewNameResolver(members, cache, 2, zerolog.Nop())

	names := resolver.Resolve(context.Background(), "guild", []*discordgo.Message{
		{ID: "10", Author: &discordgo.User{ID: "1", Username: "one"}},
		{ID: "11", Author: &discordgo.User{ID: "2", Username: "two"}},
	})
	if names["1"] != "Cached" || names["2"] != "Fresh" {
		t.Errorf("names = %v", names)
	}
	if members.calls["1"] != 0 {
		t.Error("cached user should not be looked up")
	}
	if got, _ := cache.Get(context.Background(), "guild", "2"); got != "Fresh" {
		t.Errorf("resolved name not cached, got %q", got)
	}
}

func TestResolveWithoutGuildSkipsLookup(t *testing.T) {
	members := &fakeMembers{}
	resolver := NewNameResolver(members, nil, 0, zerolog.Nop())
	names := resolver.Resolve(context.Background(), "", []*discordgo.Message{fakeMessage(1)})
	if names["2"] != "user2" {
		t.Errorf("names = %v", names)
	}
	if len(members.calls) != 0 {
		t.Error("no member lookups expected outside a guild")
	}
}
