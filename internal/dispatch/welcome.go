package dispatch

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/PancyStudios/PancyModGo/pkg/state"
	"github.com/bwmarrin/discordgo"
)

const welcomeColor = 0x2ECC71

// Welcomer greets new members in the configured welcome channel
type Welcomer struct {
	platform discord.Platform
	store    *state.Store
}

// NewWelcomer creates the member join handler
func NewWelcomer(platform discord.Platform, store *state.Store) *Welcomer {
	return &Welcomer{platform: platform, store: store}
}

// Handle sends the welcome embed when a welcome channel is set and resolvable
func (w *Welcomer) Handle(join *discord.MemberJoin) {
	channelID, ok := w.store.WelcomeChannel()
	if !ok {
		return
	}
	if _, err := w.platform.Channel(channelID); err != nil {
		logger.Warn("Canal de bienvenida no encontrado: "+channelID, "Welcome")
		return
	}

	guildName, memberCount := "the server", 0
	if guild, err := w.platform.Guild(join.GuildID); err == nil {
		guildName, memberCount = guild.Name, guild.MemberCount
	}

	if _, err := w.platform.SendEmbed(channelID, WelcomeEmbed(guildName, memberCount, join)); err != nil {
		logger.Error(fmt.Sprintf("Error enviando bienvenida a %s: %v", join.UserID, err), "Welcome")
	}
}

// WelcomeEmbed builds the welcome card for a member
func WelcomeEmbed(guildName string, memberCount int, join *discord.MemberJoin) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Welcome to %s! 👋", guildName),
		Description: fmt.Sprintf("<@%s> just joined the server!", join.UserID),
		Color:       welcomeColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member Count", Value: fmt.Sprintf("We now have %d members!", memberCount)},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if join.AvatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: join.AvatarURL}
	}
	if !join.AccountCreatedAt.IsZero() {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Account created: " + join.AccountCreatedAt.Format("2006-01-02")}
	}
	return embed
}
