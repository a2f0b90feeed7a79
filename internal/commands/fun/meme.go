package fun

import (
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

var memes = []string{
	"https://i.imgur.com/3GJZoqM.jpg",
	"https://i.imgur.com/8ubx3JD.jpg",
	"https://i.imgur.com/NZQZtKi.jpg",
	"https://i.imgur.com/vzWvb0j.jpg",
	"https://i.imgur.com/QyZso8L.jpg",
}

func (m *module) createMemeCommand() *discord.Command {
	return discord.NewCommand(
		"meme",
		"Post a random meme",
		category,
		m.memeHandler,
	)
}

func (m *module) memeHandler(ctx *discord.CommandContext) error {
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "😂 Random Meme",
		Color: m.intn(0xFFFFFF + 1),
		Image: &discordgo.MessageEmbedImage{URL: m.pick(memes)},
	})
	return err
}
