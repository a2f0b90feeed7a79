// Package session runs the interactive trivia and guess-the-number games.
//
// A game runs on the goroutine of the command that started it and suspends on
// the waiter registry between turns, so other events keep flowing. Only one
// game of each kind may be pending per channel.
package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/PancyStudios/PancyModGo/internal/dispatch"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/PancyStudios/PancyModGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// Defaults for both games
const (
	DefaultTriviaTimeout = 15 * time.Second
	DefaultGuessTimeout  = 30 * time.Second
	DefaultMaxAttempts   = 7
	GuessMin             = 1
	GuessMax             = 100
)

// Awaiter suspends until a matching message arrives or the timeout elapses
type Awaiter interface {
	Wait(ctx context.Context, filter dispatch.Filter, timeout time.Duration) dispatch.WaitResult
}

var (
	errSessionActive = stderrors.New("session already pending in channel")
	errShuttingDown  = stderrors.New("session manager shut down")
)

type sessionKey struct {
	channelID string
	kind      models.GameKind
}

// Manager owns the pending game sessions
type Manager struct {
	platform discord.Platform
	waiters  Awaiter
	events   dispatch.EventPublisher

	triviaTimeout time.Duration
	guessTimeout  time.Duration
	maxAttempts   int
	questions     []Question
	intn          func(n int) int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	active map[sessionKey]*models.GameSession
}

// Option configures a Manager
type Option func(*Manager)

// WithTimeouts overrides the per-wait timeouts
func WithTimeouts(trivia, guess time.Duration) Option {
	return func(m *Manager) {
		m.triviaTimeout = trivia
		m.guessTimeout = guess
	}
}

// WithRandom overrides the random source; intn must return a value in [0, n)
func WithRandom(intn func(n int) int) Option {
	return func(m *Manager) {
		m.intn = intn
	}
}

// WithQuestions overrides the trivia pool
func WithQuestions(questions []Question) Option {
	return func(m *Manager) {
		m.questions = questions
	}
}

// WithEvents publishes session outcomes
func WithEvents(events dispatch.EventPublisher) Option {
	return func(m *Manager) {
		m.events = events
	}
}

// NewManager creates a session manager
func NewManager(platform discord.Platform, waiters Awaiter, opts ...Option) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		platform:      platform,
		waiters:       waiters,
		triviaTimeout: DefaultTriviaTimeout,
		guessTimeout:  DefaultGuessTimeout,
		maxAttempts:   DefaultMaxAttempts,
		questions:     DefaultQuestions,
		intn:          rand.Intn,
		ctx:           ctx,
		cancel:        cancel,
		active:        make(map[sessionKey]*models.GameSession),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Active returns a snapshot of the pending sessions, oldest first
func (m *Manager) Active() []models.GameSession {
	m.mu.Lock()
	out := make([]models.GameSession, 0, len(m.active))
	for _, s := range m.active {
		out = append(out, *s)
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Shutdown cancels every pending wait and blocks until the games have returned
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.cancel()
	m.mu.Unlock()
	m.wg.Wait()
}

// begin registers a pending session with its target. It fails with errShuttingDown
// after Shutdown and with errSessionActive when a game of the same kind is pending
// in the channel.
func (m *Manager) begin(kind models.GameKind, msg *discord.Message, maxAttempts int, target string) (*models.GameSession, error) {
	key := sessionKey{channelID: msg.ChannelID, kind: kind}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Err() != nil {
		return nil, errShuttingDown
	}
	if _, ok := m.active[key]; ok {
		return nil, errSessionActive
	}
	s := &models.GameSession{
		Kind:        kind,
		ChannelID:   msg.ChannelID,
		AuthorID:    msg.AuthorID,
		MaxAttempts: maxAttempts,
		Target:      target,
		State:       models.SessionPending,
		StartedAt:   time.Now(),
	}
	m.active[key] = s
	m.wg.Add(1)
	return s, nil
}

// end applies the terminal state and releases the (channel, kind) slot
func (m *Manager) end(s *models.GameSession, state models.SessionState) models.GameSession {
	m.mu.Lock()
	s.State = state
	final := *s
	delete(m.active, sessionKey{channelID: s.ChannelID, kind: s.Kind})
	m.mu.Unlock()
	m.wg.Done()

	logger.Debug(fmt.Sprintf("Sesión %s en %s terminada: %s", s.Kind, s.ChannelID, state), "Sessions")
	if m.events != nil {
		m.events.PublishEvent("session", map[string]interface{}{
			"kind":      string(final.Kind),
			"channelId": final.ChannelID,
			"authorId":  final.AuthorID,
			"attempts":  final.Attempts,
			"outcome":   state.String(),
		})
	}
	return final
}

// wait suspends for the session author's next message in the session channel
func (m *Manager) wait(s *models.GameSession, timeout time.Duration, accept func(string) bool) dispatch.WaitResult {
	m.mu.Lock()
	s.Deadline = time.Now().Add(timeout)
	m.mu.Unlock()

	return m.waiters.Wait(m.ctx, func(msg *discord.Message) bool {
		return msg.AuthorID == s.AuthorID && msg.ChannelID == s.ChannelID && (accept == nil || accept(msg.Content))
	}, timeout)
}

func (m *Manager) say(channelID, content string) {
	if _, err := m.platform.SendMessage(channelID, content); err != nil {
		logger.Error(fmt.Sprintf("Error enviando mensaje de juego en %s: %v", channelID, err), "Sessions")
	}
}

func (m *Manager) sayEmbed(channelID string, embed *discordgo.MessageEmbed) {
	if _, err := m.platform.SendEmbed(channelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando embed de juego en %s: %v", channelID, err), "Sessions")
	}
}

// refuse answers a failed begin; nothing is said during shutdown
func (m *Manager) refuse(msg *discord.Message, game string, err error) {
	if stderrors.Is(err, errSessionActive) {
		m.say(msg.ChannelID, fmt.Sprintf("⏳ A %s game is already running in this channel!", game))
	}
}
