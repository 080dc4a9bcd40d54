package summary

import (
	"fmt"
	"strings"
)

const (
	// BatchSize is the largest page Discord returns from the message history endpoint.
	BatchSize = 100
	// DefaultLimit applies when the invoking user picks no limit.
	DefaultLimit = 50
	// EmbedCeiling is Discord's maximum embed description length.
	EmbedCeiling = 4096
	// EmbedColor is the accent colour of every summary embed.
	EmbedColor = 0x9656ce
)

// Delivery selects how a summary longer than the ceiling reaches the user.
type Delivery int

const (
	// DeliverTruncated sends one embed, cutting the summary at the ceiling.
	DeliverTruncated Delivery = iota
	// DeliverPaged splits the summary into "Page i of N" embeds.
	DeliverPaged
)

// Profile describes one flavour of the /summarise command.
type Profile struct {
	Name          string
	LimitChoices  []int
	ResolveNames  bool
	ISOTimestamps bool
	// Chronological presents records oldest to newest in the prompt.
	Chronological bool
	Delivery      Delivery
	Ceiling       int
	MirrorDM      bool
	RejectDM      bool
}

// MaxLimit is the largest selectable limit.
func (p Profile) MaxLimit() int {
	max := 0
	for _, c := range p.LimitChoices {
		if c > max {
			max = c
		}
	}
	return max
}

var profiles = map[string]Profile{
	"classic": {
		Name:         "classic",
		LimitChoices: []int{50, 100, 200, 500, 1000},
		Delivery:     DeliverTruncated,
		Ceiling:      EmbedCeiling,
	},
	"enriched": {
		Name:          "enriched",
		LimitChoices:  []int{50, 100, 200, 500, 1000, 2000},
		ResolveNames:  true,
		ISOTimestamps: true,
		Chronological: true,
		Delivery:      DeliverPaged,
		Ceiling:       EmbedCeiling,
		RejectDM:      true,
	},
	"mirrored": {
		Name:          "mirrored",
		LimitChoices:  []int{50, 100, 200, 500, 1000, 2000},
		ResolveNames:  true,
		ISOTimestamps: true,
		Chronological: true,
		Delivery:      DeliverPaged,
		Ceiling:       EmbedCeiling,
		MirrorDM:      true,
		RejectDM:      true,
	},
}

// LookupProfile returns the named profile.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("summary: unknown profile %q", name)
	}
	return p, nil
}
