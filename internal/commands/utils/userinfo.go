package utils

import (
	"strings"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func (m *module) createUserInfoCommand() *discord.Command {
	return discord.NewCommand(
		"userinfo",
		"Show information about a member (defaults to you)",
		category,
		m.userInfoHandler,
	).WithArgs(discord.Arg{Name: "user"})
}

func (m *module) userInfoHandler(ctx *discord.CommandContext) error {
	member, err := ctx.MemberArgOrAuthor("user")
	if err != nil {
		return err
	}
	user := member.User

	title := "👤 " + user.Username
	if user.Discriminator != "" && user.Discriminator != "0" {
		title += "#" + user.Discriminator
	}

	joined := "Unknown"
	if !member.JoinedAt.IsZero() {
		joined = member.JoinedAt.Format("2006-01-02")
	}
	created := "Unknown"
	if t, err := discordgo.SnowflakeTimestamp(user.ID); err == nil {
		created = t.Format("2006-01-02")
	}

	var roles []string
	for _, roleID := range member.Roles {
		if role, err := ctx.Platform.Role(ctx.Message.GuildID, roleID); err == nil {
			roles = append(roles, role.Name)
		}
	}
	roleList := strings.Join(roles, ", ")
	if roleList == "" {
		roleList = "None"
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     title,
		Color:     0x9B59B6,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: user.ID},
			{Name: "Joined Server", Value: joined},
			{Name: "Account Created", Value: created},
			{Name: "Roles", Value: roleList},
		},
	})
	return err
}
