package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"sync"
	"text/template"

	"github.com/stake-plus/summarybot/src/data"
)

// Template roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// NoQuestion is sent when the user did not ask anything specific.
const NoQuestion = "No additional question provided."

//go:embed templates/*.tmpl
var embedded embed.FS

// embedded template set per profile
var defaultSets = map[string]string{
	"classic":  "classic",
	"enriched": "enriched",
	"mirrored": "enriched",
}

// Data is what the templates can reference.
type Data struct {
	GuildID   string
	ChannelID string
	UserID    string
	Messages  string
	Question  string
	Count     int
}

// Rendered is a ready-to-send prompt pair.
type Rendered struct {
	System      string
	User        string
	Fingerprint uint64
}

// Source supplies published template overrides.
type Source interface {
	Latest(profile, role string) (*data.PromptTemplate, error)
}

// Library resolves templates from the store, falling back to the embedded defaults.
type Library struct {
	store  Source
	mu     sync.Mutex
	parsed map[uint64]*template.Template
}

// NewLibrary returns a library. store may be nil.
func NewLibrary(store Source) *Library {
	return &Library{store: store, parsed: make(map[uint64]*template.Template)}
}

// Default returns the embedded template body for a profile and role.
func Default(profile, role string) (string, error) {
	set, ok := defaultSets[profile]
	if !ok {
		return "", fmt.Errorf("prompts: no default templates for profile %q", profile)
	}
	b, err := embedded.ReadFile("templates/" + set + "_" + role + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("prompts: %s/%s: %w", profile, role, err)
	}
	return string(b), nil
}

// Body returns the active template body for profile and role and its version (0 = embedded).
func (l *Library) Body(profile, role string) (string, uint32, error) {
	if l.store != nil {
		tmpl, err := l.store.Latest(profile, role)
		if err != nil {
			return "", 0, err
		}
		if tmpl != nil {
			return tmpl.Body, tmpl.Version, nil
		}
	}
	body, err := Default(profile, role)
	return body, 0, err
}

// Render builds the system and user prompts for a profile.
func (l *Library) Render(profile string, d Data) (*Rendered, error) {
	if d.Question == "" {
		d.Question = NoQuestion
	}

	systemBody, _, err := l.Body(profile, RoleSystem)
	if err != nil {
		return nil, err
	}
	userBody, _, err := l.Body(profile, RoleUser)
	if err != nil {
		return nil, err
	}

	system, err := l.execute(systemBody, d)
	if err != nil {
		return nil, fmt.Errorf("prompts: render %s system: %w", profile, err)
	}
	user, err := l.execute(userBody, d)
	if err != nil {
		return nil, fmt.Errorf("prompts: render %s user: %w", profile, err)
	}

	return &Rendered{
		System:      system,
		User:        user,
		Fingerprint: data.TemplateFingerprint(systemBody + "\x00" + userBody),
	}, nil
}

// Validate parses body and renders it against sample data.
func Validate(body string) error {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(body)
	if err != nil {
		return err
	}
	return tmpl.Execute(io.Discard, Data{
		GuildID:   "1",
		ChannelID: "2",
		UserID:    "3",
		Messages:  "[]",
		Question:  NoQuestion,
	})
}

func (l *Library) execute(body string, d Data) (string, error) {
	key := data.TemplateFingerprint(body)

	l.mu.Lock()
	tmpl, ok := l.parsed[key]
	if !ok {
		var err error
		tmpl, err = template.New("prompt").Option("missingkey=error").Parse(body)
		if err != nil {
			l.mu.Unlock()
			return "", err
		}
		l.parsed[key] = tmpl
	}
	l.mu.Unlock()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
