// Package main is the entry point for the HavenBot Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HavenStudios/HavenBotGo/internal/commands"
	"github.com/HavenStudios/HavenBotGo/internal/events"
	"github.com/HavenStudios/HavenBotGo/internal/tasks"
	"github.com/HavenStudios/HavenBotGo/internal/textcmd"
	"github.com/HavenStudios/HavenBotGo/pkg/config"
	"github.com/HavenStudios/HavenBotGo/pkg/database"
	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/errors"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/HavenStudios/HavenBotGo/pkg/moderation"
	"github.com/HavenStudios/HavenBotGo/pkg/mqtt"
	"github.com/HavenStudios/HavenBotGo/pkg/web"
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

	logger.System("Starting HavenBot Go...", "Main")
	logger.Info(fmt.Sprintf("Working directory: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database, it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize global DataManagers
	if db != nil {
		database.InitGlobalDataManagers(db)
	}

	// Initialize MQTT
	mqttClientID := "havenbot"
	if !cfg.IsProd() {
		mqttClientID = "havenbot_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize web server
	webServer := web.Init(cfg.LogsWebhook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Wire the moderation pipeline
	store := database.NewWarningStore(db)
	users := database.NewUserService(database.GlobalUserDM)
	pipeline := moderation.NewSessionPipeline(discordClient.Session, store, users, cfg.IDs(), mqttClient)

	// Register commands and events
	commands.RegisterAll(discordClient, pipeline)
	events.RegisterAll(discordClient, users, textcmd.New(pipeline, cfg.Prefix))

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {
			return
		}
	}(discordClient)

	// Weekly code-of-conduct broadcast
	scheduler := tasks.NewScheduler(
		&moderation.SessionResolver{Session: discordClient.Session},
		&moderation.SessionSender{Session: discordClient.Session},
		cfg.BroadcastChannelIDs,
	)
	scheduler.Start()
	defer scheduler.Stop()

	logger.Success("HavenBot Go started successfully!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Shutting down HavenBot Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
