// Package discordtest provides an in-memory discord.Platform for tests.
package discordtest

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// Sent is a message or embed recorded by the fake
type Sent struct {
	ChannelID string
	MessageID string
	Content   string
	Embed     *discordgo.MessageEmbed
}

// RoleChange is a recorded grant or revoke
type RoleChange struct {
	GuildID string
	UserID  string
	RoleID  string
	Granted bool
}

// Reaction is a recorded reaction added by the bot
type Reaction struct {
	ChannelID string
	MessageID string
	Emoji     string
}

// Platform records outbound actions and serves lookups from in-memory tables.
// Fail makes the named action return an error ("send", "delete", "react", "grant",
// "revoke", "kick", "ban", "timeout").
type Platform struct {
	Self string

	Members     map[string]*discordgo.Member
	Roles       map[string]*discordgo.Role
	Guilds      map[string]*discordgo.Guild
	Channels    map[string]*discordgo.Channel
	Messages    map[string]*discordgo.Message
	Permissions map[string]int64
	Fail        map[string]error

	mu       sync.Mutex
	sent     []Sent
	deleted  []string
	reacts   []Reaction
	roles    []RoleChange
	kicked   []string
	banned   []string
	timeouts map[string]*time.Time
	nextID   int
	notify   chan Sent
}

var _ discord.Platform = (*Platform)(nil)

// New creates an empty fake whose own user ID is "bot"
func New() *Platform {
	return &Platform{
		Self:        "bot",
		Members:     make(map[string]*discordgo.Member),
		Roles:       make(map[string]*discordgo.Role),
		Guilds:      make(map[string]*discordgo.Guild),
		Channels:    make(map[string]*discordgo.Channel),
		Messages:    make(map[string]*discordgo.Message),
		Permissions: make(map[string]int64),
		Fail:        make(map[string]error),
		timeouts:    make(map[string]*time.Time),
		notify:      make(chan Sent, 256),
	}
}

// AddMember registers a member of guildID
func (p *Platform) AddMember(guildID, userID, username string) *discordgo.Member {
	m := &discordgo.Member{GuildID: guildID, User: &discordgo.User{ID: userID, Username: username}}
	p.mu.Lock()
	p.Members[guildID+"/"+userID] = m
	p.mu.Unlock()
	return m
}

// AddRole registers a role of guildID
func (p *Platform) AddRole(guildID, roleID, name string) *discordgo.Role {
	r := &discordgo.Role{ID: roleID, Name: name}
	p.mu.Lock()
	p.Roles[guildID+"/"+roleID] = r
	p.mu.Unlock()
	return r
}

// AddMessage registers a message that FetchMessage can find
func (p *Platform) AddMessage(channelID, messageID string) {
	p.mu.Lock()
	p.Messages[channelID+"/"+messageID] = &discordgo.Message{ID: messageID, ChannelID: channelID}
	p.mu.Unlock()
}

// Grant gives userID the permission bits everywhere
func (p *Platform) Grant(userID string, permission int64) {
	p.mu.Lock()
	p.Permissions[userID] |= permission
	p.mu.Unlock()
}

func (p *Platform) failure(action string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Fail[action]
}

// SelfID returns the fake bot user ID
func (p *Platform) SelfID() string { return p.Self }

// SendMessage records a text message
func (p *Platform) SendMessage(channelID, content string) (string, error) {
	return p.record(Sent{ChannelID: channelID, Content: content})
}

// SendEmbed records an embed
func (p *Platform) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	return p.record(Sent{ChannelID: channelID, Embed: embed})
}

func (p *Platform) record(s Sent) (string, error) {
	if err := p.failure("send"); err != nil {
		return "", err
	}
	p.mu.Lock()
	p.nextID++
	s.MessageID = fmt.Sprintf("sent-%d", p.nextID)
	p.sent = append(p.sent, s)
	p.Messages[s.ChannelID+"/"+s.MessageID] = &discordgo.Message{ID: s.MessageID, ChannelID: s.ChannelID}
	p.mu.Unlock()

	select {
	case p.notify <- s:
	default:
	}
	return s.MessageID, nil
}

// DeleteMessage records a deletion
func (p *Platform) DeleteMessage(channelID, messageID string) error {
	if err := p.failure("delete"); err != nil {
		return err
	}
	p.mu.Lock()
	p.deleted = append(p.deleted, messageID)
	p.mu.Unlock()
	return nil
}

// AddReaction records a reaction
func (p *Platform) AddReaction(channelID, messageID, emoji string) error {
	if err := p.failure("react"); err != nil {
		return err
	}
	p.mu.Lock()
	p.reacts = append(p.reacts, Reaction{ChannelID: channelID, MessageID: messageID, Emoji: emoji})
	p.mu.Unlock()
	return nil
}

// FetchMessage finds a registered message
func (p *Platform) FetchMessage(channelID, messageID string) (*discordgo.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.Messages[channelID+"/"+messageID]; ok {
		return m, nil
	}
	return nil, discordgo.ErrStateNotFound
}

// GrantRole records a grant
func (p *Platform) GrantRole(guildID, userID, roleID string) error {
	if err := p.failure("grant"); err != nil {
		return err
	}
	p.mu.Lock()
	p.roles = append(p.roles, RoleChange{GuildID: guildID, UserID: userID, RoleID: roleID, Granted: true})
	p.mu.Unlock()
	return nil
}

// RevokeRole records a revoke
func (p *Platform) RevokeRole(guildID, userID, roleID string) error {
	if err := p.failure("revoke"); err != nil {
		return err
	}
	p.mu.Lock()
	p.roles = append(p.roles, RoleChange{GuildID: guildID, UserID: userID, RoleID: roleID})
	p.mu.Unlock()
	return nil
}

// KickMember records a kick
func (p *Platform) KickMember(guildID, userID, reason string) error {
	if err := p.failure("kick"); err != nil {
		return err
	}
	p.mu.Lock()
	p.kicked = append(p.kicked, userID)
	p.mu.Unlock()
	return nil
}

// BanMember records a ban
func (p *Platform) BanMember(guildID, userID, reason string) error {
	if err := p.failure("ban"); err != nil {
		return err
	}
	p.mu.Lock()
	p.banned = append(p.banned, userID)
	p.mu.Unlock()
	return nil
}

// SetMemberTimeout records a timeout change
func (p *Platform) SetMemberTimeout(guildID, userID string, until *time.Time) error {
	if err := p.failure("timeout"); err != nil {
		return err
	}
	p.mu.Lock()
	p.timeouts[userID] = until
	p.mu.Unlock()
	return nil
}

// Member finds a registered member
func (p *Platform) Member(guildID, userID string) (*discordgo.Member, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.Members[guildID+"/"+userID]; ok {
		return m, nil
	}
	return nil, discordgo.ErrStateNotFound
}

// Role finds a registered role
func (p *Platform) Role(guildID, roleID string) (*discordgo.Role, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.Roles[guildID+"/"+roleID]; ok {
		return r, nil
	}
	return nil, discordgo.ErrStateNotFound
}

// Guild finds a registered guild
func (p *Platform) Guild(guildID string) (*discordgo.Guild, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.Guilds[guildID]; ok {
		return g, nil
	}
	return nil, discordgo.ErrStateNotFound
}

// Channel finds a registered channel
func (p *Platform) Channel(channelID string) (*discordgo.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.Channels[channelID]; ok {
		return c, nil
	}
	return nil, discordgo.ErrStateNotFound
}

// HasPermission checks the bits granted with Grant
func (p *Platform) HasPermission(guildID, channelID, userID string, permission int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	perms := p.Permissions[userID]
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&permission == permission
}

// Sent returns every recorded message and embed
func (p *Platform) Sent() []Sent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Sent, len(p.sent))
	copy(out, p.sent)
	return out
}

// Contents returns the text of every recorded message, in order
func (p *Platform) Contents() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, s := range p.sent {
		if s.Embed == nil {
			out = append(out, s.Content)
		}
	}
	return out
}

// Embeds returns every recorded embed, in order
func (p *Platform) Embeds() []*discordgo.MessageEmbed {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*discordgo.MessageEmbed
	for _, s := range p.sent {
		if s.Embed != nil {
			out = append(out, s.Embed)
		}
	}
	return out
}

// Deleted returns the IDs of deleted messages
func (p *Platform) Deleted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.deleted...)
}

// Reactions returns the reactions added by the bot
func (p *Platform) Reactions() []Reaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Reaction(nil), p.reacts...)
}

// RoleChanges returns every grant and revoke in order
func (p *Platform) RoleChanges() []RoleChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]RoleChange(nil), p.roles...)
}

// Kicked returns the kicked user IDs
func (p *Platform) Kicked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.kicked...)
}

// Banned returns the banned user IDs
func (p *Platform) Banned() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.banned...)
}

// Timeout returns the last timeout set for userID
func (p *Platform) Timeout(userID string) (*time.Time, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	until, ok := p.timeouts[userID]
	return until, ok
}

// WaitSent blocks until the next message or embed is recorded, or the timeout elapses
func (p *Platform) WaitSent(timeout time.Duration) (Sent, bool) {
	select {
	case s := <-p.notify:
		return s, true
	case <-time.After(timeout):
		return Sent{}, false
	}
}
