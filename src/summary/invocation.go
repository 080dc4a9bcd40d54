package summary

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Visibility controls who can see the summary.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Ephemeral reports whether replies must be flagged ephemeral.
func (v Visibility) Ephemeral() bool {
	return v != VisibilityPublic
}

// Invocation holds the parsed /summarise options.
type Invocation struct {
	Question   string
	Limit      int
	Visibility Visibility
}

// ParseInvocation reads the ask/limit/visibility options, applying defaults and clamping the
// limit into [1, profile max].
func ParseInvocation(options []*discordgo.ApplicationCommandInteractionDataOption, profile Profile) Invocation {
	inv := Invocation{Limit: DefaultLimit, Visibility: VisibilityPrivate}
	for _, opt := range options {
		if opt == nil || opt.Value == nil {
			continue
		}
		switch opt.Name {
		case "ask":
			if opt.Type != discordgo.ApplicationCommandOptionString {
				continue
			}
			inv.Question = strings.TrimSpace(opt.StringValue())
		case "limit":
			if opt.Type != discordgo.ApplicationCommandOptionInteger {
				continue
			}
			inv.Limit = int(opt.IntValue())
		case "visibility":
			if opt.Type == discordgo.ApplicationCommandOptionString && Visibility(opt.StringValue()) == VisibilityPublic {
				inv.Visibility = VisibilityPublic
			}
		}
	}
	if inv.Limit < 1 {
		inv.Limit = DefaultLimit
	}
	if max := profile.MaxLimit(); max > 0 && inv.Limit > max {
		inv.Limit = max
	}
	return inv
}
