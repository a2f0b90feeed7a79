// Package discord provides the gateway-facing types of the bot: the outbound
// Platform actions, the inbound event shapes and the prefix command framework.
package discord

import (
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Platform is the set of outbound actions and lookups the bot performs against the chat platform.
// ExtendedClient implements it over a discordgo session.
type Platform interface {
	SelfID() string

	SendMessage(channelID, content string) (string, error)
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error)
	DeleteMessage(channelID, messageID string) error
	AddReaction(channelID, messageID, emoji string) error
	FetchMessage(channelID, messageID string) (*discordgo.Message, error)

	GrantRole(guildID, userID, roleID string) error
	RevokeRole(guildID, userID, roleID string) error
	KickMember(guildID, userID, reason string) error
	BanMember(guildID, userID, reason string) error
	SetMemberTimeout(guildID, userID string, until *time.Time) error

	Member(guildID, userID string) (*discordgo.Member, error)
	Role(guildID, roleID string) (*discordgo.Role, error)
	Guild(guildID string) (*discordgo.Guild, error)
	Channel(channelID string) (*discordgo.Channel, error)

	HasPermission(guildID, channelID, userID string, permission int64) bool
}

// Message is an inbound chat message
type Message struct {
	ID          string
	ChannelID   string
	GuildID     string
	AuthorID    string
	AuthorName  string
	AuthorIsBot bool
	Content     string
}

// AuthorMention returns the mention string of the message author
func (m *Message) AuthorMention() string {
	return "<@" + m.AuthorID + ">"
}

// Reaction is an inbound reaction added to or removed from a message
type Reaction struct {
	MessageID string
	ChannelID string
	GuildID   string
	UserID    string
	Emoji     string
}

// MemberJoin is an inbound guild member join
type MemberJoin struct {
	GuildID          string
	UserID           string
	Username         string
	AvatarURL        string
	AccountCreatedAt time.Time
}

// MessageFromEvent converts a discordgo message create event
func MessageFromEvent(m *discordgo.MessageCreate) *Message {
	msg := &Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorName = m.Author.Username
		msg.AuthorIsBot = m.Author.Bot
	}
	return msg
}

// ReactionFromEvent converts a discordgo reaction payload
func ReactionFromEvent(r *discordgo.MessageReaction) *Reaction {
	return &Reaction{
		MessageID: r.MessageID,
		ChannelID: r.ChannelID,
		GuildID:   r.GuildID,
		UserID:    r.UserID,
		Emoji:     r.Emoji.APIName(),
	}
}

// MemberJoinFromEvent converts a discordgo member add event
func MemberJoinFromEvent(m *discordgo.GuildMemberAdd) *MemberJoin {
	join := &MemberJoin{GuildID: m.GuildID}
	if m.Member == nil || m.User == nil {
		return join
	}
	join.UserID = m.User.ID
	join.Username = m.User.Username
	join.AvatarURL = m.User.AvatarURL("256")
	if created, err := discordgo.SnowflakeTimestamp(m.User.ID); err == nil {
		join.AccountCreatedAt = created
	}
	return join
}

var (
	customEmojiPattern = regexp.MustCompile(`^<a?:(\w+):(\d+)>$`)
	userMentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)
	roleMentionPattern = regexp.MustCompile(`^<@&(\d+)>$`)
	chanMentionPattern = regexp.MustCompile(`^<#(\d+)>$`)
	snowflakePattern   = regexp.MustCompile(`^\d{5,20}$`)
)

// NormalizeEmoji returns the platform identity of an emoji as typed by a user.
// Custom emoji mentions (<:name:id>, <a:name:id>) become name:id, the form reaction
// events carry; unicode emoji are returned unchanged.
func NormalizeEmoji(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := customEmojiPattern.FindStringSubmatch(raw); m != nil {
		return m[1] + ":" + m[2]
	}
	return raw
}

// ParseUserID extracts a user ID from a mention or a raw snowflake
func ParseUserID(raw string) (string, bool) {
	return parseID(raw, userMentionPattern)
}

// ParseRoleID extracts a role ID from a mention or a raw snowflake
func ParseRoleID(raw string) (string, bool) {
	return parseID(raw, roleMentionPattern)
}

// ParseChannelID extracts a channel ID from a mention or a raw snowflake
func ParseChannelID(raw string) (string, bool) {
	return parseID(raw, chanMentionPattern)
}

func parseID(raw string, mention *regexp.Regexp) (string, bool) {
	raw = strings.TrimSpace(raw)
	if m := mention.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if snowflakePattern.MatchString(raw) {
		return raw, true
	}
	return "", false
}
