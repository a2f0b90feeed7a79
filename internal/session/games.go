package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PancyStudios/PancyModGo/internal/dispatch"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

const (
	triviaColor = 0x3498DB
	guessColor  = 0xF1C40F
)

// Trivia asks one random question and consults exactly one reply from the invoker.
// It blocks until the game ends and returns the final session; ok is false when
// the game was refused.
func (m *Manager) Trivia(msg *discord.Message) (models.GameSession, bool) {
	q := m.questions[m.intn(len(m.questions))]
	s, err := m.begin(models.GameTrivia, msg, 1, q.Display)
	if err != nil {
		m.refuse(msg, "trivia", err)
		return models.GameSession{}, false
	}

	m.sayEmbed(msg.ChannelID, &discordgo.MessageEmbed{
		Title:       "🧠 Trivia Time!",
		Description: q.Prompt,
		Color:       triviaColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("You have %s to answer!", seconds(m.triviaTimeout))},
	})

	res := m.wait(s, m.triviaTimeout, nil)
	switch res.Status {
	case dispatch.Answered:
		m.countAttempt(s)
		if q.Accepts(res.Message.Content) {
			m.say(msg.ChannelID, fmt.Sprintf("✅ Correct, %s! The answer is **%s**", msg.AuthorMention(), q.Display))
		} else {
			m.say(msg.ChannelID, fmt.Sprintf("❌ Wrong! The correct answer was **%s**", q.Display))
		}
		return m.end(s, models.SessionResolved), true
	case dispatch.TimedOut:
		m.say(msg.ChannelID, fmt.Sprintf("⏰ Time's up! The answer was **%s**", q.Display))
		return m.end(s, models.SessionTimedOut), true
	default:
		return m.end(s, models.SessionCancelled), true
	}
}

// GuessNumber runs guess-the-number for the invoker. Every guess gets a fresh
// timeout; the game ends on a correct guess, a timeout or the last attempt.
func (m *Manager) GuessNumber(msg *discord.Message) (models.GameSession, bool) {
	target := GuessMin + m.intn(GuessMax-GuessMin+1)
	s, err := m.begin(models.GameGuessNumber, msg, m.maxAttempts, strconv.Itoa(target))
	if err != nil {
		m.refuse(msg, "guess-the-number", err)
		return models.GameSession{}, false
	}

	m.sayEmbed(msg.ChannelID, &discordgo.MessageEmbed{
		Title:       "🎯 Guess the Number!",
		Description: fmt.Sprintf("I'm thinking of a number between %d and %d.\nYou have %d attempts to guess it!", GuessMin, GuessMax, m.maxAttempts),
		Color:       guessColor,
	})

	for attempts := 0; attempts < m.maxAttempts; {
		res := m.wait(s, m.guessTimeout, IsNumeric)
		switch res.Status {
		case dispatch.TimedOut:
			m.say(msg.ChannelID, fmt.Sprintf("⏰ Time's up! The number was **%d**", target))
			return m.end(s, models.SessionTimedOut), true
		case dispatch.Cancelled:
			return m.end(s, models.SessionCancelled), true
		}

		attempts = m.countAttempt(s)
		left := m.maxAttempts - attempts

		switch compareGuess(res.Message.Content, target) {
		case 0:
			m.say(msg.ChannelID, fmt.Sprintf("🎉 Congratulations! You guessed it in %d attempts!", attempts))
			return m.end(s, models.SessionResolved), true
		case -1:
			m.say(msg.ChannelID, fmt.Sprintf("📈 Higher! (%d attempts left)", left))
		default:
			m.say(msg.ChannelID, fmt.Sprintf("📉 Lower! (%d attempts left)", left))
		}
	}

	m.say(msg.ChannelID, fmt.Sprintf("❌ Game over! The number was **%d**", target))
	return m.end(s, models.SessionResolved), true
}

func (m *Manager) countAttempt(s *models.GameSession) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Attempts++
	return s.Attempts
}

// IsNumeric reports whether content is a non-empty run of ASCII digits and nothing else
func IsNumeric(content string) bool {
	if content == "" {
		return false
	}
	for _, r := range content {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// compareGuess returns -1, 0 or 1 as the numeric guess is below, equal to or above target.
// Guesses too large for an int compare above.
func compareGuess(guess string, target int) int {
	n, err := strconv.Atoi(strings.TrimSpace(guess))
	switch {
	case err != nil, n > target:
		return 1
	case n < target:
		return -1
	default:
		return 0
	}
}

func seconds(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	}
	return d.String()
}
