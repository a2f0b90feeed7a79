package games

import (
	"testing"
	"time"

	"github.com/PancyStudios/PancyModGo/internal/dispatch"
	"github.com/PancyStudios/PancyModGo/internal/session"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/discord/discordtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRPSResult(t *testing.T) {
	tests := []struct {
		player, bot, want string
	}{
		{"rock", "rock", "It's a tie! 🤝"},
		{"rock", "scissors", "You win! 🎉"},
		{"paper", "rock", "You win! 🎉"},
		{"scissors", "paper", "You win! 🎉"},
		{"rock", "paper", "I win! 😎"},
		{"paper", "scissors", "I win! 😎"},
		{"scissors", "rock", "I win! 😎"},
	}
	for _, tt := range tests {
		if got := RPSResult(tt.player, tt.bot); got != tt.want {
			t.Errorf("RPSResult(%q, %q) = %q, want %q", tt.player, tt.bot, got, tt.want)
		}
	}
}

func newRouter(p *discordtest.Platform, sessions *session.Manager) *discord.CommandHandler {
	handler := discord.NewCommandHandler(p, "!")
	// the bot always plays scissors
	RegisterGameCommands(handler, sessions, func(n int) int { return n - 1 })
	return handler
}

func TestRPSCommand(t *testing.T) {
	p := discordtest.New()
	handler := newRouter(p, session.NewManager(p, dispatch.NewWaiters()))

	handler.Handle(&discord.Message{ChannelID: "c1", AuthorID: "u1", Content: "!rps ROCK"})
	handler.Handle(&discord.Message{ChannelID: "c1", AuthorID: "u1", Content: "!rps lizard"})

	embeds := p.Embeds()
	require.Len(t, embeds, 1)
	assert.Equal(t, "Rock, Paper, Scissors!", embeds[0].Title)
	assert.Equal(t, "You chose: 🪨 **Rock**\nI chose: ✂️ **Scissors**\n\nYou win! 🎉", embeds[0].Description)
	assert.Equal(t, []string{"❌ Please choose rock, paper, or scissors!"}, p.Contents())
}

func TestTriviaCommandRunsSession(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := discordtest.New()
	waiters := dispatch.NewWaiters()
	sessions := session.NewManager(p, waiters, session.WithRandom(func(int) int { return 0 }))
	handler := newRouter(p, sessions)

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.Handle(&discord.Message{ChannelID: "c1", AuthorID: "u1", Content: "!trivia"})
	}()

	require.Eventually(t, func() bool { return waiters.Len() == 1 }, time.Second, time.Millisecond)
	require.True(t, waiters.Offer(&discord.Message{ChannelID: "c1", AuthorID: "u1", Content: "Paris"}))
	<-done

	assert.Equal(t, []string{"✅ Correct, <@u1>! The answer is **Paris**"}, p.Contents())
}

func TestGuessCommandStopsOnShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := discordtest.New()
	waiters := dispatch.NewWaiters()
	sessions := session.NewManager(p, waiters)
	handler := newRouter(p, sessions)

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.Handle(&discord.Message{ChannelID: "c1", AuthorID: "u1", Content: "!gtn"})
	}()

	require.Eventually(t, func() bool { return waiters.Len() == 1 }, time.Second, time.Millisecond)
	sessions.Shutdown()
	<-done

	assert.Len(t, p.Embeds(), 1)
	assert.Empty(t, p.Contents())
}
