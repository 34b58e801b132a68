package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks"
	"github.com/Freeeeeet/counseling_portal/internal/controller/handlers"
	"github.com/Freeeeeet/counseling_portal/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Services are the use-cases the bot screens are built on
type Services = callbacks.Services

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	loc *time.Location,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()

	callbackHandler := callbacks.NewHandler(
		services,
		state.NewAdapter(stateManager),
		loc,
		logger,
	)

	cmdHandlers := handlers.NewHandlers(
		callbackHandler.Handler,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers wires commands, dialog text and inline buttons
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/calendar", bot.MatchTypeExact, c.handlers.HandleCalendar)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/appointments", bot.MatchTypeExact, c.handlers.HandleAppointments)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypeExact, c.handlers.HandleHistory)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypeExact, c.handlers.HandleExport)

	// Counselor commands
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypeExact, c.handlers.HandleAvailability)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/students", bot.MatchTypeExact, c.handlers.HandleStudents)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sync", bot.MatchTypeExact, c.handlers.HandleSync)

	// Dialog steps
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Inline buttons
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands publishes the command menu
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏠 Main menu"},
		{Command: "calendar", Description: "📅 Month calendar"},
		{Command: "appointments", Description: "📋 Upcoming appointments"},
		{Command: "history", Description: "🕘 Past appointments"},
		{Command: "export", Description: "📤 Download .ics"},
		{Command: "availability", Description: "🗓 Edit availability (counselor)"},
		{Command: "students", Description: "👥 Students (counselor)"},
		{Command: "sync", Description: "🔄 Google Calendar (counselor)"},
		{Command: "login", Description: "🔐 Link portal account"},
		{Command: "logout", Description: "👋 Unlink account"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Notify sends a message to a user's private chat
func (c *BotController) Notify(ctx context.Context, telegramID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    telegramID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send notification to %d: %w", telegramID, err)
	}
	return nil
}

// Start runs long polling until ctx is done
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
