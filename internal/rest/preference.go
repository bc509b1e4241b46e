package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shopPicks/domain"
	"shopPicks/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PreferenceHandler struct {
		validate          *validator.Validate
		preferenceService PreferenceService
		timeout           time.Duration
	}

	PreferenceService interface {
		Get(ctx context.Context, userID uint) (domain.Preference, error)
		Patch(ctx context.Context, userID uint, patch domain.PreferencePatch) (domain.Preference, bool, error)
	}
)

func NewPreferenceHandler(svc PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		validate:          validator.New(),
		preferenceService: svc,
		timeout:           10 * time.Second,
	}
}

func (h *PreferenceHandler) Get(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pref, err := h.preferenceService.Get(ctx, userID)
	if err != nil {
		logger.Error("Failed to get preferences", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(pref))
}

func (h *PreferenceHandler) Patch(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var patch domain.PreferencePatch
	if err := c.Bind(&patch); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pref, changed, err := h.preferenceService.Patch(ctx, userID, patch)
	if err != nil {
		if isPreferenceValidationError(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to patch preferences", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"preference": pref,
		"changed":    changed,
	}))
}

func isPreferenceValidationError(err error) bool {
	msg := err.Error()
	return msg == "price min must not exceed price max" ||
		msg == "price min cannot be negative" ||
		msg == "price max cannot be negative" ||
		msg == "category must not be empty" ||
		msg == "brand must not be empty" ||
		strings.HasPrefix(msg, "too many ")
}
