// Package main is the entry point for the PancyMod Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyModGo/internal/commands"
	"github.com/PancyStudios/PancyModGo/internal/dispatch"
	"github.com/PancyStudios/PancyModGo/internal/events"
	"github.com/PancyStudios/PancyModGo/internal/session"
	"github.com/PancyStudios/PancyModGo/internal/status"
	"github.com/PancyStudios/PancyModGo/pkg/config"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/PancyStudios/PancyModGo/pkg/mqtt"
	"github.com/PancyStudios/PancyModGo/pkg/state"
	"github.com/PancyStudios/PancyModGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando PancyMod Go...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	if cfg.BotToken == "" {
		logger.Critical("No se encontró botToken en el entorno", "Main")
		os.Exit(1)
	}

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	var sessions *session.Manager
	errors.Init(cfg.ErrorWebhook, func() {
		if sessions != nil {
			sessions.Shutdown()
		}
		if discordClient != nil {
			if err := discordClient.Stop(); err != nil {
				logger.Error(fmt.Sprintf("Error cerrando la sesión de Discord: %v", err), "Main")
			}
		}
	})
	defer errors.Get().Stop()

	// Initialize MQTT
	var publisher dispatch.EventPublisher
	var mqttClient *mqtt.MqttCommunicator
	if cfg.MQTTEnabled {
		mqttClientID := "pancymod"
		if !cfg.IsProd() {
			mqttClientID = "pancymod_canary"
		}

		mqttClient = mqtt.Init(
			cfg.MQTTHost,
			cfg.MQTTPort,
			cfg.MQTTUser,
			cfg.MQTTPassword,
			mqttClientID,
		)
		defer mqttClient.Destroy()
		publisher = mqttClient
	}

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken, cfg.Prefix)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Engine: shared state, pending-session waiters, games and the message pipeline
	store := state.New()
	waiters := dispatch.NewWaiters()
	sessions = session.NewManager(discordClient, waiters, session.WithEvents(publisher))
	dispatcher := dispatch.New(dispatch.Options{
		Platform: discordClient,
		Store:    store,
		Router:   discordClient.CommandHandler,
		Waiters:  waiters,
		BadWords: cfg.BadWords,
		Events:   publisher,
	})

	// Register commands using the commands package
	commands.RegisterAll(discordClient.CommandHandler, commands.Dependencies{
		Store:    store,
		Sessions: sessions,
		Events:   publisher,
		Runtime:  discordClient,
		Counter:  dispatcher,
	})

	// Register events using the events package
	events.RegisterAll(discordClient, dispatcher, cfg.Prefix)

	reporter := &status.Reporter{
		Runtime:  discordClient,
		Store:    store,
		Sessions: sessions,
		Events:   dispatcher,
	}
	if mqttClient != nil {
		reporter.Broker = mqttClient
		mqttClient.On("status", func(payload map[string]interface{}) (interface{}, error) {
			return reporter.Report(), nil
		})
	}

	// Initialize web server
	var webServer *web.Server
	if cfg.WebEnabled {
		webServer = web.Init(cfg.LogsWebServerHook, cfg.WebAllowedHost)
		web.SetupAPIRoutes(webServer, discordClient, reporter)
		webServer.StartAsync(cfg.Port)
	}

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}

	logger.Success("PancyMod Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando PancyMod Go...", "Main")

	// Pending games end as cancelled before the gateway goes away
	sessions.Shutdown()
	if err := discordClient.Stop(); err != nil {
		logger.Error(fmt.Sprintf("Error cerrando la sesión de Discord: %v", err), "Main")
	}
	dispatcher.Wait()

	if webServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := webServer.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("Error deteniendo el servidor web: %v", err), "Main")
		}
	}
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
