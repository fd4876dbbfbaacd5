package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hireloop/jobboard/internal/core/ports"
)

// ProfileHandler serves the caller's own candidate and employer profiles.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetCandidate handles GET /candidates/me.
//
// @Summary      Get own candidate profile
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.CandidateProfile
// @Failure      400  {object}  errorResponse
// @Router       /candidates/me [get]
func (h *ProfileHandler) GetCandidate(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	p, err := h.service.GetCandidate(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateCandidate handles PUT /candidates/me.
//
// @Summary      Update own candidate profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      candidateUpdateRequest  true  "Profile fields"
// @Success      200   {object}  ports.CandidateProfile
// @Failure      400   {object}  errorResponse
// @Router       /candidates/me [put]
func (h *ProfileHandler) UpdateCandidate(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req candidateUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.UpdateCandidate(c.Request().Context(), userID, ports.CandidateUpdate{
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
		Resume:     req.Resume,
		Location:   req.Location,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// GetEmployer handles GET /employers/me.
//
// @Summary      Get own employer profile
// @Tags         employers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.EmployerProfile
// @Failure      400  {object}  errorResponse
// @Router       /employers/me [get]
func (h *ProfileHandler) GetEmployer(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	p, err := h.service.GetEmployer(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateEmployer handles PUT /employers/me.
//
// @Summary      Update own employer profile
// @Tags         employers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employerUpdateRequest  true  "Profile fields"
// @Success      200   {object}  ports.EmployerProfile
// @Failure      400   {object}  errorResponse
// @Router       /employers/me [put]
func (h *ProfileHandler) UpdateEmployer(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req employerUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.UpdateEmployer(c.Request().Context(), userID, ports.EmployerUpdate{
		CompanyName: req.CompanyName,
		Website:     req.Website,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
