package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
)

// JobHandler handles HTTP requests for the job catalog.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /jobs.
//
// @Summary      List active jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   ports.JobView
// @Failure      500  {object}  errorResponse
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Featured handles GET /jobs/featured.
//
// @Summary      Newest active jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   ports.JobView
// @Router       /jobs/featured [get]
func (h *JobHandler) Featured(c echo.Context) error {
	jobs, err := h.service.ListFeatured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Search handles GET /jobs/search.
//
// @Summary      Search active jobs
// @Tags         jobs
// @Produce      json
// @Param        title     query     string  false  "Title contains (case-insensitive)"
// @Param        location  query     string  false  "Location contains (case-insensitive)"
// @Param        type      query     string  false  "Exact job type"
// @Success      200       {array}   ports.JobView
// @Failure      400       {object}  errorResponse
// @Router       /jobs/search [get]
func (h *JobHandler) Search(c echo.Context) error {
	var q jobSearchQuery
	if err := c.Bind(&q); err != nil {
		return domain.Invalid("invalid query")
	}

	jobs, err := h.service.Search(c.Request().Context(), ports.JobSearch{
		Title:    q.Title,
		Location: q.Location,
		Type:     domain.JobType(q.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get handles GET /jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  ports.JobView
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Create handles POST /jobs.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Update handles PUT /jobs/:id.
//
// @Summary      Update an owned job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid payload")
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}

	job, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /jobs/:id.
//
// @Summary      Delete an owned job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Job removed"})
}

// Mine handles GET /jobs/employer/my-jobs.
//
// @Summary      Jobs posted by the caller
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Job
// @Failure      400  {object}  errorResponse
// @Router       /jobs/employer/my-jobs [get]
func (h *JobHandler) Mine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	jobs, err := h.service.ListByEmployer(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}
