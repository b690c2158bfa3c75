package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusly/lms-platform/internal/api/metrics"
	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// ApplicationHandler serves the admin review of instructor applications.
type ApplicationHandler struct {
	service ports.ApplicationReviewService
}

func NewApplicationHandler(service ports.ApplicationReviewService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// List handles GET /v1/instructor-applications.
//
// @Summary      List instructor applications
// @Tags         instructor-applications
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(pending, approved, rejected)
// @Success      200     {object}  listApplicationsResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/instructor-applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	status := domain.ApplicationStatus(c.QueryParam("status"))
	switch status {
	case "", domain.ApplicationPending, domain.ApplicationApproved, domain.ApplicationRejected:
	default:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "status must be one of: pending approved rejected")
	}

	apps, err := h.service.List(c.Request().Context(), status)
	if err != nil {
		return err
	}
	if apps == nil {
		apps = []*domain.InstructorApplication{}
	}
	return c.JSON(http.StatusOK, listApplicationsResponse{Data: apps, Total: len(apps)})
}

// Review handles PATCH /v1/instructor-applications/:id.
//
// @Summary      Approve or reject an instructor application
// @Tags         instructor-applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Application ID"
// @Param        body  body      reviewApplicationRequest  true  "Decision"
// @Success      200   {object}  domain.InstructorApplication
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/instructor-applications/{id} [patch]
func (h *ApplicationHandler) Review(c echo.Context) error {
	reviewer, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req reviewApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	app, err := h.service.Review(c.Request().Context(), ports.ReviewInput{
		ApplicationID: c.Param("id"),
		Status:        domain.ApplicationStatus(req.Status),
		Reviewer:      reviewer,
		At:            time.Now(),
	})
	if err != nil {
		return err
	}

	metrics.ApplicationsReviewedTotal.WithLabelValues(string(app.Status)).Inc()
	return c.JSON(http.StatusOK, app)
}
