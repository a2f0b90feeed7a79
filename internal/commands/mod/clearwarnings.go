package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createClearWarningsCommand creates the clearwarnings command
func (m *module) createClearWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"clearwarnings",
		"Remove every warning of a member",
		"Moderation",
		m.clearWarningsHandler,
	).WithArgs(userArg).
		WithUserPermissions(discordgo.PermissionModerateMembers)
}

func (m *module) clearWarningsHandler(ctx *discord.CommandContext) error {
	member, err := ctx.MemberArg("user")
	if err != nil {
		return err
	}

	if !m.store.ClearWarnings(member.User.ID) {
		return ctx.Reply(fmt.Sprintf("%s has no warnings to clear.", member.User.Mention()))
	}

	m.publish(ctx, "clearwarnings", member.User.ID, nil)
	return ctx.Reply(fmt.Sprintf("✅ Cleared all warnings for %s.", member.User.Mention()))
}
