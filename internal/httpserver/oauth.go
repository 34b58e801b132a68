package httpserver

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const landingPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>%s</title>
<style>body{font-family:sans-serif;max-width:32rem;margin:4rem auto;text-align:center;color:#1F2937}</style>
</head><body><h1>%s</h1><p>%s</p></body></html>`

func renderLanding(c echo.Context, code int, title, message string) error {
	return c.HTML(code, fmt.Sprintf(landingPage, html.EscapeString(title), html.EscapeString(title), html.EscapeString(message)))
}

// oauthReturnHandler is where the backend sends the browser after Google
// consent. The query carries the signed state plus status=success|error and
// an optional error message.
func oauthReturnHandler(oauth OAuthCompleter, notifier service.Notifier, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := c.QueryParam("state")
		if state == "" || oauth == nil {
			return renderLanding(c, http.StatusBadRequest, "Link not recognized",
				"Open the calendar sync screen in Telegram and try connecting again.")
		}

		telegramID, err := oauth.CompleteOAuth(state)
		if err != nil {
			logger.Warn("Rejected OAuth return state", zap.Error(err))
			return renderLanding(c, http.StatusBadRequest, "Link expired",
				"This link is no longer valid. Open the calendar sync screen in Telegram and try again.")
		}

		success := c.QueryParam("status") != "error"
		text := "✅ Google Calendar connected. Your appointments will now sync automatically."
		if !success {
			reason := c.QueryParam("error")
			if reason == "" {
				reason = "authorization was not completed"
			}
			text = "⚠️ Google Calendar was not connected: " + reason + ". Use /sync to try again."
		}

		if notifier != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
			defer cancel()
			if err := notifier.Notify(ctx, telegramID, text); err != nil {
				logger.Error("Failed to notify about calendar link",
					zap.Int64("telegram_id", telegramID),
					zap.Error(err))
			}
		}

		logger.Info("Calendar OAuth returned",
			zap.Int64("telegram_id", telegramID),
			zap.Bool("success", success))

		if !success {
			return renderLanding(c, http.StatusOK, "Calendar not connected",
				"You can close this page and return to Telegram.")
		}
		return renderLanding(c, http.StatusOK, "Calendar connected",
			"You can close this page and return to Telegram.")
	}
}
