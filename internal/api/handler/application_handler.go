package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Submit handles POST /applications.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitApplicationRequest  true  "Application"
// @Success      200   {object}  domain.Application
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req submitApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.service.Submit(c.Request().Context(), userID, ports.SubmitApplicationInput{
		JobID:       req.Job,
		Resume:      req.Resume,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Mine handles GET /applications/my-applications.
//
// @Summary      The caller's applications, newest first
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.CandidateApplicationView
// @Failure      400  {object}  errorResponse
// @Router       /applications/my-applications [get]
func (h *ApplicationHandler) Mine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	apps, err := h.service.ListByCandidate(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// UpdateStatus handles PUT /applications/:id/status.
//
// @Summary      Change an application's status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Application id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Application
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.service.UpdateStatus(c.Request().Context(), userID, c.Param("id"), domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// ForJob handles GET /jobs/:id/applications.
//
// @Summary      Applications received for an owned job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {array}   ports.JobApplicationView
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id}/applications [get]
func (h *ApplicationHandler) ForJob(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	apps, err := h.service.ListByJob(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}
