package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"shopPicks/business/recommendation"
	"shopPicks/domain"
	"shopPicks/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type (
	RecommendationHandler struct {
		validate    *validator.Validate
		recoService RecommendationService
		timeout     time.Duration
	}

	RecommendationService interface {
		Generate(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error)
		Refresh(ctx context.Context, userID uint) ([]domain.Recommendation, error)
		RefreshExpired(ctx context.Context) (int, error)
		ScoreFor(ctx context.Context, userID uint, productID uint64) (float64, error)
		Stats(ctx context.Context, userID uint) (recommendation.Stats, error)
		CollaborativeOnly(ctx context.Context, userID uint, limit int) ([]recommendation.CandidateScore, error)
		ContentBasedOnly(ctx context.Context, userID uint, limit int) ([]recommendation.CandidateScore, error)
	}

	RecommendQuery struct {
		N int `query:"n"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:    validator.New(),
		recoService: svc,
		timeout:     15 * time.Second,
	}
}

func (h *RecommendationHandler) Generate(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recoService.Generate(ctx, userID, q.N)
	if err != nil {
		logger.Error("Failed to generate recommendations", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendationHandler) Refresh(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recoService.Refresh(ctx, userID)
	if err != nil {
		if errors.Is(err, recommendation.ErrRefreshInProgress) {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to refresh recommendations", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendationHandler) RefreshExpired(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Minute)
	defer cancel()

	refreshed, err := h.recoService.RefreshExpired(ctx)
	if err != nil {
		logger.Error("Failed to refresh expired recommendations", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"refreshed_users": refreshed,
	}))
}

func (h *RecommendationHandler) Score(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	productID, err := strconv.ParseUint(c.QueryParam("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	score, err := h.recoService.ScoreFor(ctx, userID, productID)
	if err != nil {
		logger.Error("Failed to get recommendation score", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"product_id": productID,
		"score":      score,
	}))
}

func (h *RecommendationHandler) Stats(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.recoService.Stats(ctx, userID)
	if err != nil {
		logger.Error("Failed to get recommendation stats", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

// GET /api/v1/recommendations/collaborative?n=10
func (h *RecommendationHandler) Collaborative(c echo.Context) error {
	return h.singleAlgorithm(c, h.recoService.CollaborativeOnly)
}

// GET /api/v1/recommendations/content-based?n=10
func (h *RecommendationHandler) ContentBased(c echo.Context) error {
	return h.singleAlgorithm(c, h.recoService.ContentBasedOnly)
}

func (h *RecommendationHandler) singleAlgorithm(
	c echo.Context,
	score func(ctx context.Context, userID uint, limit int) ([]recommendation.CandidateScore, error),
) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	candidates, err := score(ctx, userID, q.N)
	if err != nil {
		logger.Error("Failed to run scorer", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(candidates))
}

func userIDFromContext(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok
}
