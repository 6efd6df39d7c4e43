package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/nap-planner/internal/domain/napschedule"
	apperrors "github.com/yanqian/nap-planner/pkg/errors"
)

// Handler wires the HTTP transport to the planner service.
type Handler struct {
	plannerSvc napschedule.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(plannerSvc napschedule.Service, logger *slog.Logger) *Handler {
	return &Handler{
		plannerSvc: plannerSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// PlanSchedule returns the projected naps and bedtime as JSON.
func (h *Handler) PlanSchedule(c *gin.Context) {
	resp, ok := h.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PlanScheduleText returns the formatted schedule as plain text.
func (h *Handler) PlanScheduleText(c *gin.Context) {
	resp, ok := h.plan(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, resp.Text+"\n")
}

// AgeConfig returns the table row used for an age, e.g. /age-configs/26?unit=weeks.
func (h *Handler) AgeConfig(c *gin.Context) {
	value, err := strconv.ParseFloat(c.Param("age"), 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "age must be a number", err))
		return
	}

	cfg, err := h.plannerSvc.AgeConfig(c.Request.Context(), napschedule.AgeInput{Value: &value, Unit: c.Query("unit")})
	if err != nil {
		abortWithError(c, domainError(err, "age_config_failed"))
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) plan(c *gin.Context) (napschedule.Response, bool) {
	var req napschedule.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return napschedule.Response{}, false
	}

	resp, err := h.plannerSvc.Plan(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "schedule_unavailable"))
		return napschedule.Response{}, false
	}
	return resp, true
}

func domainError(err error, fallbackCode string) *HTTPError {
	if apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	}
	return NewHTTPError(http.StatusInternalServerError, fallbackCode, "schedule unavailable", err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
