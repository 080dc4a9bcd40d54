package discord

import "github.com/bwmarrin/discordgo"

// MemberLookup is the part of *discordgo.Session used for role checks.
type MemberLookup interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

// HasRole checks whether the interaction's member carries roleID. Empty roleID always returns
// true. When the interaction payload lacks the member, the guild member is fetched.
func HasRole(s MemberLookup, i *discordgo.Interaction, roleID string) bool {
	if roleID == "" {
		return true
	}
	if i == nil || i.GuildID == "" {
		return false
	}

	member := i.Member
	if member == nil || member.Roles == nil {
		if i.Member == nil || i.Member.User == nil {
			return false
		}
		fetched, err := s.GuildMember(i.GuildID, i.Member.User.ID)
		if err != nil {
			return false
		}
		member = fetched
	}
	for _, role := range member.Roles {
		if role == roleID {
			return true
		}
	}
	return false
}
