package utils

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/config"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func (m *module) createStatsCommand() *discord.Command {
	return discord.NewCommand(
		"stats",
		"Show runtime statistics",
		category,
		m.statsHandler,
	)
}

func (m *module) statsHandler(ctx *discord.CommandContext) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	var processed int64
	if m.deps.Events != nil {
		processed = m.deps.Events.Processed()
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Bot Statistics",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🤖 Bot Version", Value: config.Version, Inline: true},
			{Name: "🐹 Go Version", Value: strings.TrimPrefix(runtime.Version(), "go"), Inline: true},
			{Name: "📚 DiscordGo Version", Value: discordgo.VERSION, Inline: true},
			{Name: "🖥 RAM Usage", Value: fmt.Sprintf("%.2f MB", float64(mem.Alloc)/1024/1024), Inline: true},
			{Name: "⚙️ CPU", Value: fmt.Sprintf("%d Goroutines / %d CPUs", runtime.NumGoroutine(), runtime.NumCPU()), Inline: true},
			{Name: "⏱ Uptime", Value: formatDuration(m.deps.Runtime.Uptime()), Inline: true},
			{Name: "🏠 Guilds", Value: fmt.Sprintf("%d", m.deps.Runtime.GuildCount()), Inline: true},
			{Name: "📜 Commands", Value: fmt.Sprintf("%d", m.handler.Commands().Size()), Inline: true},
			{Name: "📨 Events", Value: fmt.Sprintf("%d", processed), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: footerText},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	_, err := ctx.ReplyEmbed(embed)
	return err
}

// formatDuration formats a time.Duration into a human-readable string
func formatDuration(dur time.Duration) string {
	days := int(dur.Hours() / 24)
	hours := int(dur.Hours()) % 24
	minutes := int(dur.Minutes()) % 60
	seconds := int(dur.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, plural(seconds, "second"))
	}

	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
