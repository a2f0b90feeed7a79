// Package mod - ban command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createBanCommand creates the ban command
func (m *module) createBanCommand() *discord.Command {
	return discord.NewCommand(
		"ban",
		"Ban a member from the server",
		"Moderation",
		m.banHandler,
	).WithArgs(userArg, reasonOpt).
		WithUserPermissions(discordgo.PermissionBanMembers)
}

// banHandler handles the ban command
func (m *module) banHandler(ctx *discord.CommandContext) error {
	member, err := ctx.MemberArg("user")
	if err != nil {
		return err
	}
	reason := reasonArg(ctx)

	if err := ctx.Platform.BanMember(ctx.Message.GuildID, member.User.ID, reason); err != nil {
		return errors.Platform("ban this user", err)
	}

	m.publish(ctx, "ban", member.User.ID, map[string]interface{}{"reason": reason})
	return ctx.Reply(fmt.Sprintf("✅ %s has been banned. Reason: %s", member.User.Mention(), reason))
}
