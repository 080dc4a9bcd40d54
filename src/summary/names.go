package summary

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stake-plus/summarybot/src/metrics"
	"golang.org/x/sync/errgroup"
)

// MemberLookup is the part of *discordgo.Session used to resolve guild display names.
type MemberLookup interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

// NameCache remembers resolved display names across invocations.
type NameCache interface {
	Get(ctx context.Context, guildID, userID string) (string, bool)
	Set(ctx context.Context, guildID, userID, name string)
}

// NameResolver resolves guild display names for message authors with bounded parallelism.
type NameResolver struct {
	lookup  MemberLookup
	cache   NameCache
	workers int
	logger  zerolog.Logger
}

// NewNameResolver builds a resolver. cache may be nil.
func NewNameResolver(lookup MemberLookup, cache NameCache, workers int, logger zerolog.Logger) *NameResolver {
	if workers < 1 {
		workers = 1
	}
	return &NameResolver{lookup: lookup, cache: cache, workers: workers, logger: logger}
}

// Resolve returns display names keyed by user id for every distinct author in messages. A
// failed lookup, or a member that has left, falls back to the account's global name and then
// its username. Lookup failures never fail the call.
func (r *NameResolver) Resolve(ctx context.Context, guildID string, messages []*discordgo.Message) map[string]string {
	authors := make(map[string]*discordgo.User)
	for _, msg := range messages {
		if msg != nil && msg.Author != nil {
			authors[msg.Author.ID] = msg.Author
		}
	}

	names := make(map[string]string, len(authors))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for id, user := range authors {
		g.Go(func() error {
			name := r.resolveOne(gctx, guildID, user)
			mu.Lock()
			names[id] = name
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return names
}

func (r *NameResolver) resolveOne(ctx context.Context, guildID string, user *discordgo.User) string {
	if r.cache != nil {
		if name, ok := r.cache.Get(ctx, guildID, user.ID); ok {
			metrics.MemberLookups.WithLabelValues("cache").Inc()
			return name
		}
	}

	if guildID != "" && r.lookup != nil {
		member, err := r.lookup.GuildMember(guildID, user.ID, discordgo.WithContext(ctx))
		if err == nil && member != nil {
			name := MemberDisplayName(member, user)
			metrics.MemberLookups.WithLabelValues("hit").Inc()
			if r.cache != nil {
				r.cache.Set(ctx, guildID, user.ID, name)
			}
			return name
		}
		if err != nil {
			r.logger.Debug().Err(err).Str("user_id", user.ID).Msg("member lookup failed, using account name")
		}
	}

	metrics.MemberLookups.WithLabelValues("fallback").Inc()
	return AccountName(user)
}

// MemberDisplayName prefers the guild nickname, then the account name.
func MemberDisplayName(member *discordgo.Member, fallback *discordgo.User) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User != nil {
		return AccountName(member.User)
	}
	return AccountName(fallback)
}

// AccountName returns the user's global display name, or the username when unset.
func AccountName(user *discordgo.User) string {
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}
