package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	aicore "github.com/stake-plus/summarybot/src/ai/core"
	_ "github.com/stake-plus/summarybot/src/ai/providers"
	sharedconfig "github.com/stake-plus/summarybot/src/config"
	"github.com/stake-plus/summarybot/src/prompts"
	"github.com/stake-plus/summarybot/src/summary"
)

var (
	providersFlag = flag.String("providers", "openai", "Comma-separated provider list or 'all'")
	profileFlag   = flag.String("profile", "classic", "classic|enriched|mirrored")
	modelFlag     = flag.String("model", "", "Override model name")
	questionFlag  = flag.String("question", "", "Optional question appended to the prompt")
	messagesFlag  = flag.String("messages", "", "JSON file of {id, author, content, timestamp} objects, newest first")
	timeoutFlag   = flag.Duration("timeout", 90*time.Second, "Per-provider timeout")
	dryRunFlag    = flag.Bool("dry-run", false, "Print the rendered prompt without calling a provider")
	maxLenFlag    = flag.Int("max-bytes", 0, "Maximum bytes of output to print per response (0=unlimited)")
)

type fixtureMessage struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	profile, err := summary.LookupProfile(*profileFlag)
	if err != nil {
		log.Fatal(err)
	}

	messages, err := loadMessages(*messagesFlag)
	if err != nil {
		log.Fatalf("messages: %v", err)
	}

	names := map[string]string{}
	for _, m := range messages {
		names[m.Author.ID] = summary.AccountName(m.Author)
	}
	records := summary.Normalize(messages, names, profile.Chronological)
	payload, err := summary.MarshalRecords(records, profile)
	if err != nil {
		log.Fatalf("encode: %v", err)
	}

	rendered, err := prompts.NewLibrary(nil).Render(profile.Name, prompts.Data{
		GuildID:   "100000000000000001",
		ChannelID: "100000000000000002",
		UserID:    "100000000000000003",
		Messages:  string(payload),
		Question:  *questionFlag,
		Count:     len(records),
	})
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	if *dryRunFlag {
		fmt.Printf("fingerprint %x\n--- system ---\n%s\n--- user ---\n%s\n", rendered.Fingerprint, rendered.System, rendered.User)
		return
	}

	providers := resolveProviders(*providersFlag)
	if len(providers) == 0 {
		log.Fatal("no providers specified")
	}

	aiEnv := sharedconfig.LoadAIFromEnv()
	for _, provider := range providers {
		if err := runProvider(provider, profile, rendered, aiEnv); err != nil {
			log.Printf("[%s] ERROR: %v", provider, err)
		}
	}
}

func runProvider(provider string, profile summary.Profile, rendered *prompts.Rendered, aiEnv sharedconfig.AIConfig) error {
	model := aicore.ResolveModelName(provider, *modelFlag)
	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:            provider,
		Model:               model,
		MaxCompletionTokens: aiEnv.MaxTokens,
		BaseURL:             aiEnv.BaseURL,
		OpenAIKey:           aiEnv.OpenAIKey,
		ClaudeKey:           aiEnv.ClaudeKey,
	})
	if err != nil {
		return fmt.Errorf("client init: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	reply, err := client.Complete(ctx, []aicore.Message{
		{Role: aicore.RoleSystem, Content: rendered.System},
		{Role: aicore.RoleUser, Content: rendered.User},
	}, aicore.Options{Model: model, MaxCompletionTokens: aiEnv.MaxTokens})
	if err != nil {
		return err
	}

	pages := len(summary.Chunk(reply, profile.Ceiling))
	ordered := summary.NewestFirst(summary.SourceIDs(reply))
	fmt.Printf("=== %s (%s) ===\n(%.1fs, %d chars, %d page(s), newest-first=%v)\n%s\n",
		provider, model, time.Since(start).Seconds(), len([]rune(reply)), pages, ordered, truncate(reply, *maxLenFlag))
	return nil
}

func loadMessages(path string) ([]*discordgo.Message, error) {
	if path == "" {
		return sampleMessages(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures []fixtureMessage
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return nil, err
	}
	users := userIDs{}
	out := make([]*discordgo.Message, 0, len(fixtures))
	for idx, f := range fixtures {
		id := f.ID
		if id == "" {
			id = strconv.Itoa(1000000 + len(fixtures) - idx)
		}
		out = append(out, &discordgo.Message{
			ID:        id,
			Content:   f.Content,
			Timestamp: f.Timestamp,
			Author:    users.get(f.Author),
		})
	}
	return out, nil
}

func sampleMessages() []*discordgo.Message {
	lines := []struct{ user, text string }{
		{"carol", "Release is tagged, changelog is in #announcements."},
		{"bob", "Staging looks good after the migration, no errors in the last hour."},
		{"alice", "Can someone double check the staging migration before we tag?"},
		{"carol", "Reminder: retro is moved to Thursday 15:00 UTC."},
		{"bob", "I'll take the flaky login test, assigning it to myself."},
	}
	base := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	users := userIDs{}
	out := make([]*discordgo.Message, 0, len(lines))
	for idx, l := range lines {
		out = append(out, &discordgo.Message{
			ID:        strconv.Itoa(1300000000000000000 - idx),
			Content:   l.text,
			Timestamp: base.Add(-time.Duration(idx) * 7 * time.Minute),
			Author:    users.get(l.user),
		})
	}
	return out
}

// userIDs hands out stable fake snowflakes per username.
type userIDs map[string]*discordgo.User

func (u userIDs) get(name string) *discordgo.User {
	if user, ok := u[name]; ok {
		return user
	}
	user := &discordgo.User{ID: strconv.Itoa(200000000000000000 + len(u)), Username: name}
	u[name] = user
	return user
}

func resolveProviders(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.EqualFold(raw, "all") {
		return []string{"openai", "claude"}
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	var out []string
	seen := map[string]struct{}{}
	for _, p := range parts {
		key := strings.ToLower(strings.TrimSpace(p))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:limit]) + "...(truncated)"
}
