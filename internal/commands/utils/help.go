package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
	"github.com/sahilm/fuzzy"
)

// categoryOrder lists the help sections first; other categories follow alphabetically
var categoryOrder = []string{"Moderation", "Custom Commands", "Reaction Roles", "Utility", "Fun", "Games", "Welcome"}

func (m *module) createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"List the commands, or show how to use one",
		category,
		m.helpHandler,
	).WithArgs(discord.Arg{Name: "command", Rest: true})
}

func (m *module) helpHandler(ctx *discord.CommandContext) error {
	if ctx.HasArg("command") {
		return m.commandHelp(ctx, strings.ToLower(strings.TrimPrefix(ctx.Arg("command"), ctx.Prefix())))
	}

	sections := make(map[string][]string)
	for _, cmd := range m.handler.Commands().Sorted() {
		sections[cmd.Category] = append(sections[cmd.Category], "`"+cmd.Usage(ctx.Prefix())+"`")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📋 Bot Commands",
		Description: "Here are all available commands:",
		Color:       0x3498DB,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Prefix: " + ctx.Prefix()},
	}
	for _, name := range orderedCategories(sections) {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "**" + name + "**",
			Value: strings.Join(sections[name], "\n"),
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "**Auto-mod**",
		Value: "Automatic bad word filtering and welcome messages enabled",
	})

	_, err := ctx.ReplyEmbed(embed)
	return err
}

// commandHelp describes one command, or every subcommand of a group
func (m *module) commandHelp(ctx *discord.CommandContext, name string) error {
	var matched []*discord.Command
	names := make([]string, 0)
	for _, cmd := range m.handler.Commands().Sorted() {
		full := cmd.FullName()
		names = append(names, full)
		if full == name || cmd.Group == name {
			matched = append(matched, cmd)
		}
	}

	if len(matched) == 0 {
		if matches := fuzzy.Find(name, names); len(matches) > 0 {
			return errors.Resolution(fmt.Sprintf("❌ Unknown command `%s`. Did you mean `%s%s`?", name, ctx.Prefix(), matches[0].Str))
		}
		return errors.Resolution(fmt.Sprintf("❌ Unknown command `%s`. Use `%shelp` to see every command.", name, ctx.Prefix()))
	}

	embed := &discordgo.MessageEmbed{
		Title:  "📖 " + ctx.Prefix() + name,
		Color:  0x3498DB,
		Footer: &discordgo.MessageEmbedFooter{Text: "Prefix: " + ctx.Prefix()},
	}
	for _, cmd := range matched {
		value := cmd.Description
		if cmd.UserPermissions != 0 {
			value += "\nRequires: **" + discord.PermissionName(cmd.UserPermissions) + "**"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "`" + cmd.Usage(ctx.Prefix()) + "`",
			Value: value,
		})
	}

	_, err := ctx.ReplyEmbed(embed)
	return err
}

func orderedCategories(sections map[string][]string) []string {
	var out []string
	known := make(map[string]bool, len(categoryOrder))
	for _, name := range categoryOrder {
		known[name] = true
		if _, ok := sections[name]; ok {
			out = append(out, name)
		}
	}
	var rest []string
	for name := range sections {
		if !known[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
