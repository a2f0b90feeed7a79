// Package roles provides the rr command group that binds reactions to roles.
package roles

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/PancyStudios/PancyModGo/pkg/state"
	"github.com/bwmarrin/discordgo"
)

type module struct {
	store *state.Store
}

// RegisterRoleCommands registers rr setup, rr add and rr remove
func RegisterRoleCommands(handler *discord.CommandHandler, store *state.Store) {
	m := &module{store: store}

	handler.RegisterGroup("rr",
		discord.NewCommand("setup", "Post a reaction-role panel", "Reaction Roles", m.setupHandler).
			WithUserPermissions(discordgo.PermissionManageRoles),
		discord.NewCommand("add", "Bind an emoji on a message to a role", "Reaction Roles", m.addHandler).
			WithArgs(
				discord.Arg{Name: "messageId", Required: true},
				discord.Arg{Name: "emoji", Required: true},
				discord.Arg{Name: "role", Required: true},
			).
			WithUserPermissions(discordgo.PermissionManageRoles),
		discord.NewCommand("remove", "Unbind an emoji from a message", "Reaction Roles", m.removeHandler).
			WithArgs(
				discord.Arg{Name: "messageId", Required: true},
				discord.Arg{Name: "emoji", Required: true},
			).
			WithUserPermissions(discordgo.PermissionManageRoles),
	)
}

func (m *module) setupHandler(ctx *discord.CommandContext) error {
	panelID, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🎭 Reaction Roles",
		Description: fmt.Sprintf("React to this message to get your role!\n\nUse `%srr add <messageId> <emoji> <@role>` to set up roles.", ctx.Prefix()),
		Color:       0x2ECC71,
	})
	if err != nil {
		return errors.Platform("post the reaction role message", err)
	}
	return ctx.Reply("✅ Reaction role message created! ID: " + panelID)
}

// addHandler binds (message, emoji) to a role. The binding is stored only after
// the bot's own reaction was added.
func (m *module) addHandler(ctx *discord.CommandContext) error {
	messageID := ctx.Arg("messageId")
	if _, err := ctx.Platform.FetchMessage(ctx.Message.ChannelID, messageID); err != nil {
		return errors.Resolution("❌ Could not find that message.")
	}

	role, err := ctx.RoleArg("role")
	if err != nil {
		return err
	}

	raw := ctx.Arg("emoji")
	emoji := discord.NormalizeEmoji(raw)
	if err := ctx.Platform.AddReaction(ctx.Message.ChannelID, messageID, emoji); err != nil {
		return errors.Platform("react with that emoji", err)
	}

	m.store.SetBinding(messageID, emoji, role.ID)
	logger.Info(fmt.Sprintf("Reaction role %s en %s -> %s", emoji, messageID, role.ID), "ReactionRoles")
	return ctx.Reply(fmt.Sprintf("✅ Reaction role added: %s → %s", raw, role.Name))
}

func (m *module) removeHandler(ctx *discord.CommandContext) error {
	emoji := discord.NormalizeEmoji(ctx.Arg("emoji"))
	if !m.store.DeleteBinding(ctx.Arg("messageId"), emoji) {
		return errors.Resolution("❌ That reaction role does not exist.")
	}
	return ctx.Reply("✅ Reaction role removed: " + ctx.Arg("emoji"))
}
