package fun

import (
	"strings"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
)

func (m *module) createChooseCommand() *discord.Command {
	return discord.NewCommand(
		"choose",
		"Pick one of several options separated by |",
		category,
		m.chooseHandler,
	).WithArgs(discord.Arg{Name: "options", Required: true, Rest: true})
}

func (m *module) chooseHandler(ctx *discord.CommandContext) error {
	options := SplitOptions(ctx.Arg("options"))
	if len(options) < 2 {
		return errors.Parse("❌ Please provide at least 2 options separated by |")
	}
	return ctx.Reply("🤔 I choose: **" + m.pick(options) + "**")
}

// SplitOptions splits on | and trims each option; blank options are dropped
func SplitOptions(raw string) []string {
	var options []string
	for _, option := range strings.Split(raw, "|") {
		if option = strings.TrimSpace(option); option != "" {
			options = append(options, option)
		}
	}
	return options
}
