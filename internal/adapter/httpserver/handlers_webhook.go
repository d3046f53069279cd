package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/abhishekchotaliya/botmaster-twitter/internal/platform/errors"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/twitter"
)

type challengeResponse struct {
	ResponseToken string `json:"response_token"`
}

// handleChallenge answers Twitter's CRC verification request.
func (s *Server) handleChallenge(c echo.Context) error {
	token := c.QueryParam("crc_token")
	if token == "" {
		return apperrors.ValidationError("crc_token query parameter is required")
	}

	resp := challengeResponse{ResponseToken: s.adapter.ChallengeResponse(token)}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to write challenge response: %w", err)
	}
	return nil
}

// handleWebhook receives Account Activity deliveries. The response is
// always 200 with an empty body: Twitter marks endpoints unhealthy on
// non-2xx answers, so processing outcomes never surface here.
func (s *Server) handleWebhook(c echo.Context) error {
	var payload twitter.WebhookPayload
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		s.adapter.ReportError(c.Request().Context(), fmt.Errorf("webhook body decode: %w", err))
		return c.NoContent(http.StatusOK)
	}

	s.adapter.HandleDelivery(c.Request().Context(), payload)
	return c.NoContent(http.StatusOK)
}
