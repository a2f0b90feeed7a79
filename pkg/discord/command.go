// Package discord provides command types and structures.
package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// Arg declares one argument of a prefix command.
// A plain arg consumes one whitespace-delimited token; a Rest arg consumes the
// remainder of the message and must be the last one declared.
type Arg struct {
	Name     string
	Required bool
	Rest     bool
}

// Command represents a prefix command
type Command struct {
	Name            string
	Description     string
	Category        string
	Group           string
	Args            []Arg
	UserPermissions int64
	Run             CommandRunFunc
}

// CommandRunFunc is the function type for command execution
type CommandRunFunc func(ctx *CommandContext) error

// NewCommand creates a new Command with required fields
func NewCommand(name, description, category string, run CommandRunFunc) *Command {
	return &Command{
		Name:        name,
		Description: description,
		Category:    category,
		Run:         run,
	}
}

// WithArgs sets the command arguments
func (c *Command) WithArgs(args ...Arg) *Command {
	c.Args = args
	return c
}

// WithUserPermissions sets required user permissions
func (c *Command) WithUserPermissions(perms int64) *Command {
	c.UserPermissions = perms
	return c
}

// FullName returns the name used to invoke the command, including its group
func (c *Command) FullName() string {
	if c.Group != "" {
		return c.Group + " " + c.Name
	}
	return c.Name
}

// Usage renders the invocation syntax, e.g. "!kick <user> [reason]"
func (c *Command) Usage(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(c.FullName())
	for _, arg := range c.Args {
		if arg.Required {
			fmt.Fprintf(&b, " <%s>", arg.Name)
		} else {
			fmt.Fprintf(&b, " [%s]", arg.Name)
		}
	}
	return b.String()
}

// parseArgs splits raw into the declared arguments
func (c *Command) parseArgs(prefix, raw string) (map[string]string, error) {
	values := make(map[string]string, len(c.Args))
	rest := strings.TrimSpace(raw)

	for _, arg := range c.Args {
		var value string
		if arg.Rest {
			value, rest = rest, ""
		} else {
			value, rest = splitFirst(rest)
		}
		if value == "" {
			if arg.Required {
				return nil, errors.Parse(fmt.Sprintf("❌ Usage: `%s`", c.Usage(prefix)))
			}
			continue
		}
		values[arg.Name] = value
	}
	return values, nil
}

// splitFirst returns the first whitespace-delimited token and the trimmed remainder
func splitFirst(s string) (string, string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexFunc(s, isSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// CommandContext provides context for command execution
type CommandContext struct {
	Platform Platform
	Message  *Message
	Command  *Command
	Handler  *CommandHandler
	args     map[string]string
}

// Prefix returns the command prefix in use
func (ctx *CommandContext) Prefix() string {
	return ctx.Handler.Prefix()
}

// Reply sends a message to the channel the command was invoked in
func (ctx *CommandContext) Reply(content string) error {
	_, err := ctx.Platform.SendMessage(ctx.Message.ChannelID, content)
	return err
}

// ReplyEmbed sends an embed to the channel the command was invoked in
func (ctx *CommandContext) ReplyEmbed(embed *discordgo.MessageEmbed) (string, error) {
	return ctx.Platform.SendEmbed(ctx.Message.ChannelID, embed)
}

// Arg returns the raw value of an argument, or "" when it was omitted
func (ctx *CommandContext) Arg(name string) string {
	return ctx.args[name]
}

// HasArg reports whether an argument was supplied
func (ctx *CommandContext) HasArg(name string) bool {
	_, ok := ctx.args[name]
	return ok
}

// ArgOr returns the argument value or a default
func (ctx *CommandContext) ArgOr(name, def string) string {
	if v, ok := ctx.args[name]; ok {
		return v
	}
	return def
}

// IntArg parses an integer argument, returning def when it was omitted
func (ctx *CommandContext) IntArg(name string, def int) (int, error) {
	raw, ok := ctx.args[name]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Parse(fmt.Sprintf("❌ `%s` must be a whole number. Usage: `%s`", name, ctx.Command.Usage(ctx.Prefix())))
	}
	return n, nil
}

// MemberArg resolves a user mention or ID argument to a guild member
func (ctx *CommandContext) MemberArg(name string) (*discordgo.Member, error) {
	userID, ok := ParseUserID(ctx.args[name])
	if !ok {
		return nil, errors.Resolution("❌ Please mention a valid user.")
	}
	member, err := ctx.Platform.Member(ctx.Message.GuildID, userID)
	if err != nil || member == nil || member.User == nil {
		return nil, errors.Resolution("❌ Please mention a valid user.")
	}
	return member, nil
}

// MemberArgOrAuthor resolves a member argument, defaulting to the invoker
func (ctx *CommandContext) MemberArgOrAuthor(name string) (*discordgo.Member, error) {
	if !ctx.HasArg(name) {
		member, err := ctx.Platform.Member(ctx.Message.GuildID, ctx.Message.AuthorID)
		if err != nil || member == nil || member.User == nil {
			return nil, errors.Resolution("❌ Could not resolve your membership in this server.")
		}
		return member, nil
	}
	return ctx.MemberArg(name)
}

// RoleArg resolves a role mention or ID argument
func (ctx *CommandContext) RoleArg(name string) (*discordgo.Role, error) {
	roleID, ok := ParseRoleID(ctx.args[name])
	if !ok {
		return nil, errors.Resolution("❌ Please mention a valid role.")
	}
	role, err := ctx.Platform.Role(ctx.Message.GuildID, roleID)
	if err != nil || role == nil {
		return nil, errors.Resolution("❌ Please mention a valid role.")
	}
	return role, nil
}

// ChannelArg resolves a channel mention or ID argument
func (ctx *CommandContext) ChannelArg(name string) (*discordgo.Channel, error) {
	channelID, ok := ParseChannelID(ctx.args[name])
	if !ok {
		return nil, errors.Resolution("❌ Please mention a valid channel.")
	}
	channel, err := ctx.Platform.Channel(channelID)
	if err != nil || channel == nil {
		return nil, errors.Resolution("❌ Please mention a valid channel.")
	}
	return channel, nil
}
