// Package state provides the process-lifetime tables shared by every event handler.
// Each table is guarded by its own lock, so writes to one table never wait on another
// and concurrent writes to the same key are serialised instead of lost.
package state

import (
	"sort"
	"strings"
	"sync"

	"github.com/PancyStudios/PancyModGo/pkg/models"
)

// Store owns the warning ledger, the custom-command table, the reaction-role
// bindings and the welcome configuration.
type Store struct {
	warnings   map[string][]models.Warning
	warningsMu sync.RWMutex

	customCommands map[string]string
	customMu       sync.RWMutex

	bindings   map[string]map[string]string
	bindingsMu sync.RWMutex

	welcomeChannel string
	welcomeMu      sync.RWMutex
}

// Stats holds the size of every table
type Stats struct {
	WarnedUsers    int    `json:"warnedUsers"`
	Warnings       int    `json:"warnings"`
	CustomCommands int    `json:"customCommands"`
	BoundMessages  int    `json:"boundMessages"`
	Bindings       int    `json:"bindings"`
	WelcomeChannel string `json:"welcomeChannel,omitempty"`
}

// New creates an empty Store
func New() *Store {
	return &Store{
		warnings:       make(map[string][]models.Warning),
		customCommands: make(map[string]string),
		bindings:       make(map[string]map[string]string),
	}
}

// Warnings returns a copy of the user's warnings in creation order.
// A user without warnings yields nil.
func (s *Store) Warnings(userID string) []models.Warning {
	s.warningsMu.RLock()
	defer s.warningsMu.RUnlock()

	list, ok := s.warnings[userID]
	if !ok {
		return nil
	}
	out := make([]models.Warning, len(list))
	copy(out, list)
	return out
}

// HasWarnings reports whether the ledger has an entry for the user
func (s *Store) HasWarnings(userID string) bool {
	s.warningsMu.RLock()
	defer s.warningsMu.RUnlock()
	_, ok := s.warnings[userID]
	return ok
}

// AppendWarning records a warning and returns the user's new total
func (s *Store) AppendWarning(userID string, w models.Warning) int {
	s.warningsMu.Lock()
	defer s.warningsMu.Unlock()

	s.warnings[userID] = append(s.warnings[userID], w)
	return len(s.warnings[userID])
}

// ClearWarnings removes the user's entry entirely. It reports whether one existed.
func (s *Store) ClearWarnings(userID string) bool {
	s.warningsMu.Lock()
	defer s.warningsMu.Unlock()

	if _, ok := s.warnings[userID]; !ok {
		return false
	}
	delete(s.warnings, userID)
	return true
}

// CustomCommand looks a custom command up, ignoring case
func (s *Store) CustomCommand(name string) (string, bool) {
	s.customMu.RLock()
	defer s.customMu.RUnlock()
	resp, ok := s.customCommands[strings.ToLower(name)]
	return resp, ok
}

// SetCustomCommand stores a response under the lowercased name. Last write wins.
func (s *Store) SetCustomCommand(name, response string) {
	s.customMu.Lock()
	defer s.customMu.Unlock()
	s.customCommands[strings.ToLower(name)] = response
}

// DeleteCustomCommand removes a custom command and reports whether it existed
func (s *Store) DeleteCustomCommand(name string) bool {
	s.customMu.Lock()
	defer s.customMu.Unlock()

	key := strings.ToLower(name)
	if _, ok := s.customCommands[key]; !ok {
		return false
	}
	delete(s.customCommands, key)
	return true
}

// CustomCommands returns the registered names, sorted
func (s *Store) CustomCommands() []string {
	s.customMu.RLock()
	names := make([]string, 0, len(s.customCommands))
	for name := range s.customCommands {
		names = append(names, name)
	}
	s.customMu.RUnlock()

	sort.Strings(names)
	return names
}

// Binding returns the role bound to (messageID, emoji)
func (s *Store) Binding(messageID, emoji string) (string, bool) {
	s.bindingsMu.RLock()
	defer s.bindingsMu.RUnlock()

	roles, ok := s.bindings[messageID]
	if !ok {
		return "", false
	}
	roleID, ok := roles[emoji]
	return roleID, ok
}

// SetBinding binds (messageID, emoji) to a role, creating the message entry if needed
func (s *Store) SetBinding(messageID, emoji, roleID string) {
	s.bindingsMu.Lock()
	defer s.bindingsMu.Unlock()

	roles, ok := s.bindings[messageID]
	if !ok {
		roles = make(map[string]string)
		s.bindings[messageID] = roles
	}
	roles[emoji] = roleID
}

// DeleteBinding removes a single emoji entry. The message entry goes away with its last emoji.
func (s *Store) DeleteBinding(messageID, emoji string) bool {
	s.bindingsMu.Lock()
	defer s.bindingsMu.Unlock()

	roles, ok := s.bindings[messageID]
	if !ok {
		return false
	}
	if _, ok := roles[emoji]; !ok {
		return false
	}
	delete(roles, emoji)
	if len(roles) == 0 {
		delete(s.bindings, messageID)
	}
	return true
}

// DeleteBindings removes every binding of a message
func (s *Store) DeleteBindings(messageID string) {
	s.bindingsMu.Lock()
	defer s.bindingsMu.Unlock()
	delete(s.bindings, messageID)
}

// WelcomeChannel returns the configured welcome channel
func (s *Store) WelcomeChannel() (string, bool) {
	s.welcomeMu.RLock()
	defer s.welcomeMu.RUnlock()
	return s.welcomeChannel, s.welcomeChannel != ""
}

// SetWelcomeChannel sets the welcome channel. Last set wins.
func (s *Store) SetWelcomeChannel(channelID string) {
	s.welcomeMu.Lock()
	defer s.welcomeMu.Unlock()
	s.welcomeChannel = channelID
}

// Stats returns the size of every table
func (s *Store) Stats() Stats {
	var st Stats

	s.warningsMu.RLock()
	st.WarnedUsers = len(s.warnings)
	for _, list := range s.warnings {
		st.Warnings += len(list)
	}
	s.warningsMu.RUnlock()

	s.customMu.RLock()
	st.CustomCommands = len(s.customCommands)
	s.customMu.RUnlock()

	s.bindingsMu.RLock()
	st.BoundMessages = len(s.bindings)
	for _, roles := range s.bindings {
		st.Bindings += len(roles)
	}
	s.bindingsMu.RUnlock()

	st.WelcomeChannel, _ = s.WelcomeChannel()
	return st
}
