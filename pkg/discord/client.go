// Package discord provides the Discord bot client and related structures.
// It wraps discordgo and exposes the outbound Platform used by the engine.
package discord

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		logger.Info(fmt.Sprintf(format, a...), "DiscordGo")
	}
}

// ExtendedClient wraps discordgo.Session with additional functionality
type ExtendedClient struct {
	Session        *discordgo.Session
	CommandHandler *CommandHandler
	EventHandler   *EventHandler
	StartTime      time.Time
	mu             sync.RWMutex
	isReady        bool
}

var _ Platform = (*ExtendedClient)(nil)

var (
	client *ExtendedClient
	once   sync.Once
)

// Init initializes the global Discord client
func Init(token, prefix string) (*ExtendedClient, error) {
	var err error
	once.Do(func() {
		client, err = NewClient(token, prefix)
	})
	return client, err
}

// Get returns the global Discord client
func Get() *ExtendedClient {
	return client
}

// NewClient creates a new ExtendedClient
func NewClient(token, prefix string) (*ExtendedClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	session.ShardCount = 1
	session.SyncEvents = false
	session.StateEnabled = true
	session.LogLevel = discordgo.LogWarning

	c := &ExtendedClient{
		Session: session,
		isReady: false,
	}

	c.CommandHandler = NewCommandHandler(c, prefix)
	c.EventHandler = NewEventHandler(c)

	return c, nil
}

// Start opens the gateway connection
func (c *ExtendedClient) Start() error {
	c.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.mu.Lock()
		c.isReady = true
		c.mu.Unlock()

		logger.Success("Bot conectado como: "+r.User.Username, "Client")
		logger.Info(fmt.Sprintf("%d comandos cargados, prefijo %q", c.CommandHandler.Commands().Size(), c.CommandHandler.Prefix()), "Client")
	})

	c.mu.Lock()
	c.StartTime = time.Now()
	c.mu.Unlock()

	return c.Session.Open()
}

// Stop stops the bot and closes the session
func (c *ExtendedClient) Stop() error {
	c.mu.Lock()
	c.isReady = false
	c.mu.Unlock()

	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}

// IsReady returns true if the bot is ready
func (c *ExtendedClient) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// GuildCount returns the number of guilds the bot is in
func (c *ExtendedClient) GuildCount() int {
	if c.Session == nil || c.Session.State == nil {
		return 0
	}
	c.Session.State.RLock()
	defer c.Session.State.RUnlock()
	return len(c.Session.State.Guilds)
}

// Username returns the bot's username, or "" before Ready
func (c *ExtendedClient) Username() string {
	if c.Session == nil || c.Session.State == nil || c.Session.State.User == nil {
		return ""
	}
	return c.Session.State.User.Username
}

// Latency returns the last heartbeat latency
func (c *ExtendedClient) Latency() time.Duration {
	if c.Session == nil {
		return 0
	}
	return c.Session.HeartbeatLatency()
}

// Uptime returns the time since Start, or zero before the bot started
func (c *ExtendedClient) Uptime() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.StartTime.IsZero() {
		return 0
	}
	return time.Since(c.StartTime)
}

// Platform implementation

// SelfID returns the bot's user ID
func (c *ExtendedClient) SelfID() string {
	if c.Session == nil || c.Session.State == nil || c.Session.State.User == nil {
		return ""
	}
	return c.Session.State.User.ID
}

// SendMessage sends a text message and returns its ID
func (c *ExtendedClient) SendMessage(channelID, content string) (string, error) {
	msg, err := c.Session.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

// SendEmbed sends an embed and returns the message ID
func (c *ExtendedClient) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	msg, err := c.Session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

// DeleteMessage deletes a message
func (c *ExtendedClient) DeleteMessage(channelID, messageID string) error {
	return c.Session.ChannelMessageDelete(channelID, messageID)
}

// AddReaction reacts to a message with the given emoji identity
func (c *ExtendedClient) AddReaction(channelID, messageID, emoji string) error {
	return c.Session.MessageReactionAdd(channelID, messageID, emoji)
}

// FetchMessage fetches a message from a channel
func (c *ExtendedClient) FetchMessage(channelID, messageID string) (*discordgo.Message, error) {
	return c.Session.ChannelMessage(channelID, messageID)
}

// GrantRole adds a role to a member
func (c *ExtendedClient) GrantRole(guildID, userID, roleID string) error {
	return c.Session.GuildMemberRoleAdd(guildID, userID, roleID)
}

// RevokeRole removes a role from a member
func (c *ExtendedClient) RevokeRole(guildID, userID, roleID string) error {
	return c.Session.GuildMemberRoleRemove(guildID, userID, roleID)
}

// KickMember removes a member from the guild
func (c *ExtendedClient) KickMember(guildID, userID, reason string) error {
	return c.Session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

// BanMember bans a member without deleting their messages
func (c *ExtendedClient) BanMember(guildID, userID, reason string) error {
	return c.Session.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

// SetMemberTimeout times a member out until the given time; nil lifts the timeout
func (c *ExtendedClient) SetMemberTimeout(guildID, userID string, until *time.Time) error {
	return c.Session.GuildMemberTimeout(guildID, userID, until)
}

// Member resolves a guild member, preferring the state cache
func (c *ExtendedClient) Member(guildID, userID string) (*discordgo.Member, error) {
	if member, err := c.Session.State.Member(guildID, userID); err == nil {
		return member, nil
	}
	return c.Session.GuildMember(guildID, userID)
}

// Role resolves a guild role, preferring the state cache
func (c *ExtendedClient) Role(guildID, roleID string) (*discordgo.Role, error) {
	if role, err := c.Session.State.Role(guildID, roleID); err == nil {
		return role, nil
	}
	roles, err := c.Session.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if role.ID == roleID {
			return role, nil
		}
	}
	return nil, discordgo.ErrStateNotFound
}

// Guild resolves a guild, preferring the state cache
func (c *ExtendedClient) Guild(guildID string) (*discordgo.Guild, error) {
	if guild, err := c.Session.State.Guild(guildID); err == nil {
		return guild, nil
	}
	return c.Session.GuildWithCounts(guildID)
}

// Channel resolves a channel, preferring the state cache
func (c *ExtendedClient) Channel(channelID string) (*discordgo.Channel, error) {
	if channel, err := c.Session.State.Channel(channelID); err == nil {
		return channel, nil
	}
	return c.Session.Channel(channelID)
}

// HasPermission reports whether the user holds permission in the channel.
// Administrator implies every permission.
func (c *ExtendedClient) HasPermission(guildID, channelID, userID string, permission int64) bool {
	perms, err := c.Session.State.UserChannelPermissions(userID, channelID)
	if err != nil {
		perms, err = c.Session.UserChannelPermissions(userID, channelID)
		if err != nil {
			logger.Warn(fmt.Sprintf("No se pudieron calcular permisos de %s en %s/%s: %v", userID, guildID, channelID, err), "Client")
			return false
		}
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&permission == permission
}
