// Package status builds the runtime report served by the HTTP API and the MQTT status topic.
package status

import (
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/config"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/PancyStudios/PancyModGo/pkg/models"
	"github.com/PancyStudios/PancyModGo/pkg/state"
)

// Runtime is the gateway connection being reported on
type Runtime interface {
	IsReady() bool
	GuildCount() int
	Latency() time.Duration
	Uptime() time.Duration
}

// Sessions lists the games in progress
type Sessions interface {
	Active() []models.GameSession
}

// Counter reports how many gateway events were dispatched
type Counter interface {
	Processed() int64
}

// Broker reports the MQTT connection
type Broker interface {
	IsConnected() bool
}

// BotStatus describes the gateway connection
type BotStatus struct {
	Online    bool   `json:"isOnline"`
	Guilds    int    `json:"guilds"`
	LatencyMs int64  `json:"latencyMs"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version"`
}

// Report is a point-in-time snapshot of the bot
type Report struct {
	Bot             BotStatus            `json:"bot"`
	State           state.Stats          `json:"state"`
	Sessions        []models.GameSession `json:"sessions"`
	EventsProcessed int64                `json:"eventsProcessed"`
	ErrorCount      int64                `json:"errorCount"`
	MQTTConnected   bool                 `json:"mqttConnected"`
	GeneratedAt     time.Time            `json:"generatedAt"`
}

// Reporter assembles reports; nil sources are reported as empty
type Reporter struct {
	Runtime  Runtime
	Store    *state.Store
	Sessions Sessions
	Events   Counter
	Broker   Broker
}

// Report builds a snapshot
func (r *Reporter) Report() Report {
	report := Report{
		Bot:         BotStatus{Version: config.Version},
		Sessions:    []models.GameSession{},
		GeneratedAt: time.Now().UTC(),
	}

	if r.Runtime != nil {
		report.Bot.Online = r.Runtime.IsReady()
		report.Bot.Guilds = r.Runtime.GuildCount()
		report.Bot.LatencyMs = r.Runtime.Latency().Milliseconds()
		report.Bot.Uptime = r.Runtime.Uptime().Truncate(time.Second).String()
	}
	if r.Store != nil {
		report.State = r.Store.Stats()
	}
	if r.Sessions != nil {
		report.Sessions = append(report.Sessions, r.Sessions.Active()...)
	}
	if r.Events != nil {
		report.EventsProcessed = r.Events.Processed()
	}
	if r.Broker != nil {
		report.MQTTConnected = r.Broker.IsConnected()
	}
	if h := errors.Get(); h != nil {
		report.ErrorCount = h.Failures()
	}
	return report
}
