package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusly/lms-platform/internal/core/ports"
)

// CooldownHandler exposes the Rate-Limit Guard for the caller's own client key.
type CooldownHandler struct {
	guard ports.CooldownGuard
}

func NewCooldownHandler(guard ports.CooldownGuard) *CooldownHandler {
	return &CooldownHandler{guard: guard}
}

// Status handles GET /v1/signup/cooldown.
//
// @Summary      Current signup cooldown for the caller
// @Tags         signup
// @Produce      json
// @Success      200  {object}  ports.GuardStatus
// @Failure      500  {object}  errorResponse
// @Router       /v1/signup/cooldown [get]
func (h *CooldownHandler) Status(c echo.Context) error {
	st, err := h.guard.CheckAndMaybeBlock(c.Request().Context(), c.RealIP())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// Clear handles DELETE /v1/signup/cooldown, the manual override.
//
// @Summary      Clear the caller's signup cooldown
// @Tags         signup
// @Success      204
// @Failure      500  {object}  errorResponse
// @Router       /v1/signup/cooldown [delete]
func (h *CooldownHandler) Clear(c echo.Context) error {
	if err := h.guard.Clear(c.Request().Context(), c.RealIP()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stream handles GET /v1/signup/cooldown/stream as Server-Sent Events. One
// "cooldown" event is sent per second until the cooldown ends or the client
// disconnects.
//
// @Summary      Stream the caller's cooldown countdown
// @Tags         signup
// @Produce      text/event-stream
// @Success      200  {object}  ports.GuardStatus
// @Router       /v1/signup/cooldown/stream [get]
func (h *CooldownHandler) Stream(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	err := h.guard.Watch(c.Request().Context(), c.RealIP(), func(st ports.GuardStatus) error {
		data, err := json.Marshal(st)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: cooldown\ndata: %s\n\n", data); err != nil {
			return err
		}
		w.Flush()
		return nil
	})
	if err != nil && c.Request().Context().Err() == nil {
		_, _ = fmt.Fprint(w, "event: error\ndata: {\"error\":\"cooldown unavailable\"}\n\n")
		w.Flush()
	}
	return nil
}
