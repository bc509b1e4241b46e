package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"shopPicks/business/interaction"
	"shopPicks/domain"
	"shopPicks/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	InteractionHandler struct {
		validate           *validator.Validate
		interactionService InteractionService
		timeout            time.Duration
	}

	InteractionService interface {
		Record(ctx context.Context, i *domain.Interaction) error
		ListByUser(ctx context.Context, userID uint) ([]domain.Interaction, error)
		ListByProduct(ctx context.Context, productID uint64) ([]domain.Interaction, error)
		Summarize(ctx context.Context, userID uint) (interaction.Summary, error)
	}

	RecordInteractionRequest struct {
		ProductID uint64                 `json:"product_id" validate:"required"`
		Type      string                 `json:"type" validate:"required,oneof=view like dislike favorite rating purchase"`
		Metadata  map[string]interface{} `json:"metadata"`
	}
)

func NewInteractionHandler(svc InteractionService) *InteractionHandler {
	return &InteractionHandler{
		validate:           validator.New(),
		interactionService: svc,
		timeout:            10 * time.Second,
	}
}

func (h *InteractionHandler) Record(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecordInteractionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	record := &domain.Interaction{
		UserID:    userID,
		ProductID: req.ProductID,
		Type:      req.Type,
		Metadata:  datatypes.JSONMap(req.Metadata),
		CreatedAt: time.Now(),
	}

	if err := h.interactionService.Record(ctx, record); err != nil {
		if err.Error() == "invalid interaction type" ||
			err.Error() == "rating must be between 1 and 5" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to record interaction", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(record))
}

func (h *InteractionHandler) ListMine(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	interactions, err := h.interactionService.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list interactions", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(interactions))
}

func (h *InteractionHandler) ListByProduct(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	interactions, err := h.interactionService.ListByProduct(ctx, productID)
	if err != nil {
		logger.Error("Failed to list interactions by product", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(interactions))
}

func (h *InteractionHandler) Summary(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.interactionService.Summarize(ctx, userID)
	if err != nil {
		logger.Error("Failed to summarize interactions", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}
