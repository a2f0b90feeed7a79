// Package custom provides the cc command group that manages custom commands.
package custom

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/PancyStudios/PancyModGo/pkg/state"
	"github.com/bwmarrin/discordgo"
)

type module struct {
	store *state.Store
}

// RegisterCustomCommands registers cc add, cc remove and cc list
func RegisterCustomCommands(handler *discord.CommandHandler, store *state.Store) {
	m := &module{store: store}

	handler.RegisterGroup("cc",
		discord.NewCommand("add", "Add or replace a custom command", "Custom Commands", m.addHandler).
			WithArgs(discord.Arg{Name: "name", Required: true}, discord.Arg{Name: "response", Required: true, Rest: true}).
			WithUserPermissions(discordgo.PermissionManageGuild),
		discord.NewCommand("remove", "Remove a custom command", "Custom Commands", m.removeHandler).
			WithArgs(discord.Arg{Name: "name", Required: true}).
			WithUserPermissions(discordgo.PermissionManageGuild),
		discord.NewCommand("list", "List the custom commands", "Custom Commands", m.listHandler),
	)
}

func (m *module) addHandler(ctx *discord.CommandContext) error {
	name := ctx.Arg("name")
	m.store.SetCustomCommand(name, ctx.Arg("response"))
	logger.Info(fmt.Sprintf("Comando personalizado '%s' guardado por %s", strings.ToLower(name), ctx.Message.AuthorID), "CustomCommands")
	return ctx.Reply(fmt.Sprintf("✅ Custom command `%s%s` has been added.", ctx.Prefix(), name))
}

func (m *module) removeHandler(ctx *discord.CommandContext) error {
	name := ctx.Arg("name")
	if !m.store.DeleteCustomCommand(name) {
		return errors.Resolution("❌ That custom command does not exist.")
	}
	logger.Info(fmt.Sprintf("Comando personalizado '%s' eliminado por %s", strings.ToLower(name), ctx.Message.AuthorID), "CustomCommands")
	return ctx.Reply(fmt.Sprintf("✅ Custom command `%s%s` has been removed.", ctx.Prefix(), name))
}

func (m *module) listHandler(ctx *discord.CommandContext) error {
	names := m.store.CustomCommands()
	if len(names) == 0 {
		return ctx.Reply("No custom commands have been set up yet.")
	}
	for i, name := range names {
		names[i] = ctx.Prefix() + name
	}
	return ctx.Reply("**Custom Commands:** " + strings.Join(names, ", "))
}
