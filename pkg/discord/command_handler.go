// Package discord provides the command handler for routing prefix commands.
package discord

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
)

// CommandCollection holds registered commands
type CommandCollection struct {
	commands map[string]*Command
	mu       sync.RWMutex
}

// NewCommandCollection creates a new CommandCollection
func NewCommandCollection() *CommandCollection {
	return &CommandCollection{
		commands: make(map[string]*Command),
	}
}

// Set adds or updates a command
func (cc *CommandCollection) Set(name string, cmd *Command) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.commands[name] = cmd
}

// Get retrieves a command by name
func (cc *CommandCollection) Get(name string) (*Command, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	cmd, ok := cc.commands[name]
	return cmd, ok
}

// Size returns the number of commands
func (cc *CommandCollection) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.commands)
}

// All returns all commands
func (cc *CommandCollection) All() map[string]*Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	result := make(map[string]*Command)
	for k, v := range cc.commands {
		result[k] = v
	}
	return result
}

// Sorted returns all commands ordered by category, then by full name
func (cc *CommandCollection) Sorted() []*Command {
	all := cc.All()
	list := make([]*Command, 0, len(all))
	for _, cmd := range all {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Category != list[j].Category {
			return list[i].Category < list[j].Category
		}
		return list[i].FullName() < list[j].FullName()
	})
	return list
}

// CommandHandler parses prefix commands and routes them to their handlers
type CommandHandler struct {
	platform Platform
	prefix   string
	commands *CommandCollection
	groups   map[string][]string
	mu       sync.RWMutex
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(platform Platform, prefix string) *CommandHandler {
	return &CommandHandler{
		platform: platform,
		prefix:   prefix,
		commands: NewCommandCollection(),
		groups:   make(map[string][]string),
	}
}

// Prefix returns the command prefix
func (ch *CommandHandler) Prefix() string {
	return ch.prefix
}

// Commands returns the registry
func (ch *CommandHandler) Commands() *CommandCollection {
	return ch.commands
}

// RegisterCommand adds a command to the handler
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.commands.Set(cmd.Name, cmd)
	logger.Debug("Comando registrado: "+cmd.Name, "CommandHandler")
}

// RegisterGroup registers subcommands under "group.sub"
func (ch *CommandHandler) RegisterGroup(group string, subcommands ...*Command) {
	names := make([]string, 0, len(subcommands))
	for _, cmd := range subcommands {
		cmd.Group = group
		fullName := group + "." + cmd.Name
		ch.commands.Set(fullName, cmd)
		names = append(names, cmd.Name)
		logger.Debug("Subcomando registrado: "+fullName, "CommandHandler")
	}

	ch.mu.Lock()
	ch.groups[group] = append(ch.groups[group], names...)
	ch.mu.Unlock()
}

// GroupUsage returns the guidance shown when a group is invoked without a known subcommand
func (ch *CommandHandler) GroupUsage(group string) string {
	ch.mu.RLock()
	subs := ch.groups[group]
	ch.mu.RUnlock()
	return fmt.Sprintf("❌ Use: `%s%s %s`", ch.prefix, group, strings.Join(subs, "/"))
}

func (ch *CommandHandler) isGroup(name string) bool {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	_, ok := ch.groups[name]
	return ok
}

// InvokedName returns the lowercased first token after the prefix, or false when
// content does not start with the prefix
func (ch *CommandHandler) InvokedName(content string) (string, bool) {
	if !strings.HasPrefix(content, ch.prefix) {
		return "", false
	}
	name, _ := splitFirst(content[len(ch.prefix):])
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}

// Handle routes a message to its command. It reports whether the message was a
// command invocation; unknown command names are ignored and report false.
func (ch *CommandHandler) Handle(msg *Message) bool {
	if !strings.HasPrefix(msg.Content, ch.prefix) {
		return false
	}

	name, rest := splitFirst(msg.Content[len(ch.prefix):])
	name = strings.ToLower(name)
	if name == "" {
		return false
	}

	var cmd *Command
	if ch.isGroup(name) {
		sub, subRest := splitFirst(rest)
		found, ok := ch.commands.Get(name + "." + strings.ToLower(sub))
		if !ok {
			ch.reply(msg, ch.GroupUsage(name))
			return true
		}
		cmd, rest = found, subRest
	} else {
		found, ok := ch.commands.Get(name)
		if !ok {
			return false
		}
		cmd = found
	}

	ctx := &CommandContext{
		Platform: ch.platform,
		Message:  msg,
		Command:  cmd,
		Handler:  ch,
	}

	if cmd.UserPermissions != 0 && !ch.platform.HasPermission(msg.GuildID, msg.ChannelID, msg.AuthorID, cmd.UserPermissions) {
		ch.fail(ctx, errors.Capability(cmd.FullName(), PermissionName(cmd.UserPermissions)))
		return true
	}

	args, err := cmd.parseArgs(ch.prefix, rest)
	if err != nil {
		ch.fail(ctx, err)
		return true
	}
	ctx.args = args

	if err := ch.execute(ctx); err != nil {
		ch.fail(ctx, err)
	}
	return true
}

// execute runs the handler, converting a panic into an error
func (ch *CommandHandler) execute(ctx *CommandContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if h := errors.Get(); h != nil {
				h.HandlePanic(r)
			}
			err = fmt.Errorf("panic in command %s: %v", ctx.Command.FullName(), r)
		}
	}()
	return ctx.Command.Run(ctx)
}

// fail answers a failed invocation with exactly one reply
func (ch *CommandHandler) fail(ctx *CommandContext, err error) {
	switch errors.Code(err) {
	case errors.CodeCapability, errors.CodeParse, errors.CodeResolution:
		logger.Debug(fmt.Sprintf("Comando %s rechazado: %v", ctx.Command.FullName(), err), "CommandHandler")
	default:
		errors.Track(fmt.Errorf("error ejecutando comando %s: %w", ctx.Command.FullName(), err), "CommandHandler")
	}
	ch.reply(ctx.Message, errors.UserMessage(err))
}

func (ch *CommandHandler) reply(msg *Message, content string) {
	if _, err := ch.platform.SendMessage(msg.ChannelID, content); err != nil {
		logger.Error("Error enviando respuesta: "+err.Error(), "CommandHandler")
	}
}
