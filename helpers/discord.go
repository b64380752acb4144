package helpers

import (
	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/bwmarrin/discordgo"
)

// IsBotAdmin checks if $id is listed as a bot admin in the bot-config
func IsBotAdmin(id string) bool {
	admins, err := GetConfig().Path("discord.admins").Children()
	if err != nil {
		return false
	}

	for _, admin := range admins {
		if s, ok := admin.Data().(string); ok && s == id {
			return true
		}
	}

	return false
}

// IsAdmin checks if the message author owns the guild, is a bot admin
// or carries a role with the administrator permission
func IsAdmin(msg *discordgo.Message) bool {
	channel, e := cache.GetSession().Channel(msg.ChannelID)
	if e != nil {
		return false
	}

	guild, e := cache.GetSession().Guild(channel.GuildID)
	if e != nil {
		return false
	}

	if msg.Author.ID == guild.OwnerID || IsBotAdmin(msg.Author.ID) {
		return true
	}

	guildMember, e := cache.GetSession().GuildMember(guild.ID, msg.Author.ID)
	if e != nil {
		return false
	}

	for _, role := range guild.Roles {
		for _, userRole := range guildMember.Roles {
			if userRole == role.ID && role.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
				return true
			}
		}
	}

	return false
}

// RequireAdmin only calls $cb if the author is an admin
func RequireAdmin(msg *discordgo.Message, cb Callback) {
	if !IsAdmin(msg) {
		SendMessage(msg.ChannelID, GetText("admin.no_permission"))
		return
	}

	cb()
}

// CanManageGames checks whether the author may edit the game catalog,
// either as an admin or through one of the configured management roles
func CanManageGames(msg *discordgo.Message) bool {
	if IsAdmin(msg) {
		return true
	}

	channel, e := cache.GetSession().Channel(msg.ChannelID)
	if e != nil {
		return false
	}

	settings := GuildSettingsGetCached(channel.GuildID)
	if len(settings.GameManagementRoles) == 0 {
		return false
	}

	guildMember, e := cache.GetSession().GuildMember(channel.GuildID, msg.Author.ID)
	if e != nil {
		return false
	}

	for _, allowed := range settings.GameManagementRoles {
		for _, userRole := range guildMember.Roles {
			if userRole == allowed {
				return true
			}
		}
	}

	return false
}

// RequireGameManagement only calls $cb if the author may manage games
func RequireGameManagement(msg *discordgo.Message, cb Callback) {
	if !CanManageGames(msg) {
		SendMessage(msg.ChannelID, GetText("games.no_permission"))
		return
	}

	cb()
}

// SendMessage sends $content to $channelID, swallowing permission errors
func SendMessage(channelID string, content string) (*discordgo.Message, error) {
	message, err := cache.GetSession().ChannelMessageSend(channelID, content)
	RelaxMessage(err, channelID, "")
	return message, err
}

// SendEmbed sends $embed to $channelID, swallowing permission errors
func SendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	message, err := cache.GetSession().ChannelMessageSendEmbed(channelID, embed)
	RelaxMessage(err, channelID, "")
	return message, err
}

// GetGuildIDForChannel resolves the guild a channel belongs to
func GetGuildIDForChannel(channelID string) string {
	channel, err := cache.GetSession().Channel(channelID)
	if err != nil {
		return ""
	}

	return channel.GuildID
}

// FindAnnounceChannel picks the channel scheduled announcements go to.
// The configured channel wins, then a channel named "general", then the
// first text channel the bot can post in.
func FindAnnounceChannel(guildID string) string {
	settings := GuildSettingsGetCached(guildID)
	if settings.AnnounceChannel != "" {
		return settings.AnnounceChannel
	}

	session := cache.GetSession()

	channels, err := session.GuildChannels(guildID)
	if err != nil {
		return ""
	}

	fallback := ""
	for _, channel := range channels {
		if channel.Type != discordgo.ChannelTypeGuildText {
			continue
		}

		perms, err := session.UserChannelPermissions(session.State.User.ID, channel.ID)
		if err != nil {
			continue
		}
		if perms&discordgo.PermissionSendMessages != discordgo.PermissionSendMessages {
			continue
		}

		if channel.Name == "general" {
			return channel.ID
		}
		if fallback == "" {
			fallback = channel.ID
		}
	}

	return fallback
}
