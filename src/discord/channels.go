package discord

import "github.com/bwmarrin/discordgo"

// TextCapable reports whether messages can be read from a channel of type t.
func TextCapable(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildVoice,
		discordgo.ChannelTypeGuildStageVoice,
		discordgo.ChannelTypeDM,
		discordgo.ChannelTypeGroupDM:
		return true
	default:
		return false
	}
}
