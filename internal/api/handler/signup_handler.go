package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusly/lms-platform/internal/api/metrics"
	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// SignupHandler exposes the signup workflow over HTTP.
type SignupHandler struct {
	service ports.SignupService
}

func NewSignupHandler(service ports.SignupService) *SignupHandler {
	return &SignupHandler{service: service}
}

// Student handles POST /v1/signup/student.
//
// @Summary      Sign up as a student
// @Tags         signup
// @Accept       json
// @Produce      json
// @Param        body  body      studentSignupRequest  true  "Student signup"
// @Success      201   {object}  signupResponse
// @Failure      409   {object}  signupResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  signupResponse
// @Failure      500   {object}  signupResponse
// @Failure      502   {object}  signupResponse
// @Failure      503   {object}  signupResponse
// @Router       /v1/signup/student [post]
func (h *SignupHandler) Student(c echo.Context) error {
	var req studentSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return h.submit(c, req.toDomain())
}

// Instructor handles POST /v1/signup/instructor.
//
// @Summary      Sign up as an instructor applicant
// @Description  Creates the account and profile, then files an instructor application for review.
// @Description  A 202 means the account works but the application must be resubmitted.
// @Tags         signup
// @Accept       json
// @Produce      json
// @Param        body  body      instructorSignupRequest  true  "Instructor signup"
// @Success      201   {object}  signupResponse
// @Success      202   {object}  signupResponse
// @Failure      409   {object}  signupResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  signupResponse
// @Failure      500   {object}  signupResponse
// @Failure      502   {object}  signupResponse
// @Failure      503   {object}  signupResponse
// @Router       /v1/signup/instructor [post]
func (h *SignupHandler) Instructor(c echo.Context) error {
	var req instructorSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return h.submit(c, req.toDomain())
}

func (h *SignupHandler) submit(c echo.Context, req domain.SignupRequest) error {
	start := time.Now()

	out, err := h.service.Submit(c.Request().Context(), c.RealIP(), req)
	if err != nil {
		return err
	}

	metrics.SignupOutcomesTotal.WithLabelValues(metricRole(req.Role), string(out.State), out.ErrorKind).Inc()
	metrics.SignupDuration.WithLabelValues(string(out.State)).Observe(time.Since(start).Seconds())
	if out.State == domain.StateBlocked {
		metrics.GuardBlocksTotal.Inc()
	}
	if out.OrphanRecorded {
		metrics.OrphansRecordedTotal.Inc()
	}

	if out.RetryAfterSeconds > 0 {
		c.Response().Header().Set("Retry-After", strconv.Itoa(out.RetryAfterSeconds))
	}
	return c.JSON(outcomeStatus(out), toSignupResponse(out))
}

func metricRole(role string) string {
	if role == domain.RoleInstructorPending {
		return domain.RoleInstructor
	}
	return role
}
