package session

import (
	"sync"
	"testing"
	"time"

	"github.com/PancyStudios/PancyModGo/internal/dispatch"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/discord/discordtest"
	"github.com/PancyStudios/PancyModGo/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type harness struct {
	platform *discordtest.Platform
	waiters  *dispatch.Waiters
	manager  *Manager
}

// fixedRandom always picks index 0 of the trivia pool and target 42 for guess-the-number
func fixedRandom(n int) int {
	if n == GuessMax-GuessMin+1 {
		return 42 - GuessMin
	}
	return 0
}

func newHarness(timeout time.Duration) *harness {
	p := discordtest.New()
	w := dispatch.NewWaiters()
	m := NewManager(p, w, WithTimeouts(timeout, timeout), WithRandom(fixedRandom))
	return &harness{platform: p, waiters: w, manager: m}
}

func invocation(channelID, authorID string) *discord.Message {
	return &discord.Message{ID: "inv", ChannelID: channelID, GuildID: "g1", AuthorID: authorID, Content: "!game"}
}

func (h *harness) answer(t *testing.T, channelID, authorID, content string) {
	t.Helper()
	require.Eventually(t, func() bool { return h.waiters.Len() > 0 }, time.Second, time.Millisecond)
	require.True(t, h.waiters.Offer(&discord.Message{ChannelID: channelID, AuthorID: authorID, Content: content}))
}

type result struct {
	session models.GameSession
	ok      bool
}

func run(fn func(*discord.Message) (models.GameSession, bool), msg *discord.Message) <-chan result {
	out := make(chan result, 1)
	go func() {
		s, ok := fn(msg)
		out <- result{session: s, ok: ok}
	}()
	return out
}

func TestTriviaCorrect(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(time.Second)

	done := run(h.manager.Trivia, invocation("c1", "u1"))
	h.answer(t, "c1", "u1", "  PARIS ")

	res := <-done
	require.True(t, res.ok)
	assert.Equal(t, models.SessionResolved, res.session.State)
	assert.Equal(t, 1, res.session.Attempts)

	embeds := h.platform.Embeds()
	require.Len(t, embeds, 1)
	assert.Equal(t, "What is the capital of France?", embeds[0].Description)
	assert.Equal(t, []string{"✅ Correct, <@u1>! The answer is **Paris**"}, h.platform.Contents())
}

func TestTriviaWrongIsSingleAttempt(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(time.Second)

	done := run(h.manager.Trivia, invocation("c1", "u1"))
	h.answer(t, "c1", "u1", "london")
	res := <-done

	assert.Equal(t, models.SessionResolved, res.session.State)
	assert.Equal(t, []string{"❌ Wrong! The correct answer was **Paris**"}, h.platform.Contents())
	assert.False(t, h.waiters.Offer(&discord.Message{ChannelID: "c1", AuthorID: "u1", Content: "paris"}))
}

func TestTriviaIgnoresOtherAuthorsAndTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(30 * time.Millisecond)

	done := run(h.manager.Trivia, invocation("c1", "u1"))
	require.Eventually(t, func() bool { return h.waiters.Len() == 1 }, time.Second, time.Millisecond)
	assert.False(t, h.waiters.Offer(&discord.Message{ChannelID: "c1", AuthorID: "u2", Content: "paris"}))
	assert.False(t, h.waiters.Offer(&discord.Message{ChannelID: "c2", AuthorID: "u1", Content: "paris"}))

	res := <-done
	assert.Equal(t, models.SessionTimedOut, res.session.State)
	assert.Equal(t, []string{"⏰ Time's up! The answer was **Paris**"}, h.platform.Contents())
}

func TestGuessNumberHintsAndWin(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(time.Second)

	done := run(h.manager.GuessNumber, invocation("c1", "u1"))
	h.answer(t, "c1", "u1", "10")
	h.answer(t, "c1", "u1", "90")

	require.Eventually(t, func() bool { return h.waiters.Len() == 1 }, time.Second, time.Millisecond)
	assert.False(t, h.waiters.Offer(&discord.Message{ChannelID: "c1", AuthorID: "u1", Content: "forty two"}), "non-numeric replies are not guesses")
	assert.False(t, h.waiters.Offer(&discord.Message{ChannelID: "c1", AuthorID: "u1", Content: " 42 "}), "padded digits are not guesses")
	h.answer(t, "c1", "u1", "42")

	res := <-done
	assert.Equal(t, models.SessionResolved, res.session.State)
	assert.Equal(t, 3, res.session.Attempts)
	assert.Equal(t, []string{
		"📈 Higher! (6 attempts left)",
		"📉 Lower! (5 attempts left)",
		"🎉 Congratulations! You guessed it in 3 attempts!",
	}, h.platform.Contents())
}

func TestGuessNumberGameOver(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(time.Second)

	done := run(h.manager.GuessNumber, invocation("c1", "u1"))
	for i := 0; i < DefaultMaxAttempts; i++ {
		h.answer(t, "c1", "u1", "1")
	}
	res := <-done

	assert.Equal(t, DefaultMaxAttempts, res.session.Attempts)
	contents := h.platform.Contents()
	require.Len(t, contents, DefaultMaxAttempts+1)
	assert.Equal(t, "📈 Higher! (0 attempts left)", contents[DefaultMaxAttempts-1])
	assert.Equal(t, "❌ Game over! The number was **42**", contents[DefaultMaxAttempts])
	assert.Equal(t, 0, h.waiters.Len())
}

func TestGuessNumberTimeoutIsPerAttempt(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(60 * time.Millisecond)

	done := run(h.manager.GuessNumber, invocation("c1", "u1"))
	// Three guesses spread over more than one timeout; each re-arms the wait.
	for _, g := range []string{"1", "2", "3"} {
		time.Sleep(30 * time.Millisecond)
		h.answer(t, "c1", "u1", g)
	}
	res := <-done

	assert.Equal(t, models.SessionTimedOut, res.session.State)
	assert.Equal(t, 3, res.session.Attempts)
	contents := h.platform.Contents()
	assert.Equal(t, "⏰ Time's up! The number was **42**", contents[len(contents)-1])
}

func TestActiveReportsTargetWhilePending(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(time.Second)

	trivia := run(h.manager.Trivia, invocation("c1", "u1"))
	gtn := run(h.manager.GuessNumber, invocation("c2", "u1"))
	require.Eventually(t, func() bool { return h.waiters.Len() == 2 }, time.Second, time.Millisecond)

	targets := map[models.GameKind]string{}
	for _, s := range h.manager.Active() {
		targets[s.Kind] = s.Target
	}
	assert.Equal(t, map[models.GameKind]string{
		models.GameTrivia:      "Paris",
		models.GameGuessNumber: "42",
	}, targets)

	h.answer(t, "c1", "u1", "paris")
	h.answer(t, "c2", "u1", "42")
	<-trivia
	<-gtn
}

func TestOneSessionPerChannelAndKind(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(time.Second)

	first := run(h.manager.Trivia, invocation("c1", "u1"))
	require.Eventually(t, func() bool { return h.waiters.Len() == 1 }, time.Second, time.Millisecond)

	_, ok := h.manager.Trivia(invocation("c1", "u2"))
	assert.False(t, ok)
	assert.Equal(t, []string{"⏳ A trivia game is already running in this channel!"}, h.platform.Contents())

	other := run(h.manager.Trivia, invocation("c2", "u2"))
	gtn := run(h.manager.GuessNumber, invocation("c1", "u2"))
	require.Eventually(t, func() bool { return h.waiters.Len() == 3 }, time.Second, time.Millisecond)
	assert.Len(t, h.manager.Active(), 3)

	h.answer(t, "c1", "u1", "paris")
	h.answer(t, "c2", "u2", "paris")
	h.answer(t, "c1", "u2", "42")
	<-first
	<-other
	<-gtn
	assert.Empty(t, h.manager.Active())
}

func TestShutdownCancelsPendingSessions(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(time.Minute)

	var wg sync.WaitGroup
	results := make([]result, 2)
	for i, fn := range []func(*discord.Message) (models.GameSession, bool){h.manager.Trivia, h.manager.GuessNumber} {
		wg.Add(1)
		go func(i int, fn func(*discord.Message) (models.GameSession, bool)) {
			defer wg.Done()
			s, ok := fn(invocation("c1", "u1"))
			results[i] = result{session: s, ok: ok}
		}(i, fn)
	}
	require.Eventually(t, func() bool { return h.waiters.Len() == 2 }, time.Second, time.Millisecond)

	h.manager.Shutdown()
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, models.SessionCancelled, r.session.State)
	}
	assert.Empty(t, h.platform.Contents(), "cancelled sessions send no outcome")

	_, ok := h.manager.Trivia(invocation("c1", "u1"))
	assert.False(t, ok)
	assert.Empty(t, h.platform.Contents())
}

func TestIsNumeric(t *testing.T) {
	tests := map[string]bool{
		"42":   true,
		" 7 ":  false,
		"42\n": false,
		"007":  true,
		"":     false,
		"-5":   false,
		"4.2":  false,
		"four": false,
		"١٢":   false,
	}
	for in, want := range tests {
		if got := IsNumeric(in); got != want {
			t.Errorf("IsNumeric(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCompareGuess(t *testing.T) {
	assert.Equal(t, -1, compareGuess("10", 42))
	assert.Equal(t, 0, compareGuess("042", 42))
	assert.Equal(t, -1, compareGuess("7", 42))
	assert.Equal(t, 1, compareGuess("99", 42))
	assert.Equal(t, 1, compareGuess("999999999999999999999999", 42))
}

func TestQuestionAccepts(t *testing.T) {
	q := DefaultQuestions[7]
	assert.True(t, q.Accepts("Da Vinci"))
	assert.True(t, q.Accepts(" leonardo "))
	assert.False(t, q.Accepts("michelangelo"))
}
