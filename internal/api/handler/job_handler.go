package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/api/metrics"
	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// JobHandler serves job postings and applications.
type JobHandler struct {
	jobs ports.JobService
}

func NewJobHandler(jobs ports.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type createJobRequest struct {
	Title       string `json:"title"       validate:"required"`
	Company     string `json:"company"     validate:"required"`
	Location    string `json:"location"    validate:"required"`
	Type        string `json:"type"        validate:"omitempty,oneof=Full-time Part-time Contract Freelance Internship"`
	Description string `json:"description"`
}

type createJobResponse struct {
	messageResponse
	Job *domain.Job `json:"job"`
}

type jobItem struct {
	domain.Job
	PostedBy   domain.UserSummary `json:"postedBy"`
	HasApplied bool               `json:"hasApplied"`
	IsOwner    bool               `json:"isOwner"`
	PostedAgo  string             `json:"postedAgo"`
}

type jobsResponse struct {
	Success bool      `json:"success"`
	Jobs    []jobItem `json:"jobs"`
}

// List returns active jobs, newest first.
//
// @Summary      List active jobs
// @Tags         jobs
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  jobsResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	list, err := h.jobs.ListActive(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]jobItem, 0, len(list))
	for _, l := range list {
		items = append(items, jobItem{
			Job:        l.Job,
			PostedBy:   l.PostedBy,
			HasApplied: l.HasApplied,
			IsOwner:    l.IsOwner,
			PostedAgo:  l.PostedAgo,
		})
	}
	return c.JSON(http.StatusOK, jobsResponse{Success: true, Jobs: items})
}

// Create posts a new job.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createJobRequest  true  "Job posting"
// @Success      200   {object}  createJobResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/jobs/create [post]
func (h *JobHandler) Create(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.Create(c.Request().Context(), userID, ports.CreateJobInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createJobResponse{messageResponse: ok("Job posted successfully!"), Job: job})
}

// Apply records an application and messages the poster.
//
// @Summary      Apply to a job
// @Tags         jobs
// @Produce      json
// @Security     CookieAuth
// @Param        jobId  path      string  true  "Job id"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  messageResponse
// @Failure      404    {object}  messageResponse
// @Router       /api/jobs/apply/{jobId} [post]
func (h *JobHandler) Apply(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.jobs.Apply(c.Request().Context(), c.Param("jobId"), userID); err != nil {
		return err
	}
	metrics.JobApplicationsTotal.Inc()
	return c.JSON(http.StatusOK, ok("Application sent successfully!"))
}

// Deactivate hides a job. Only its poster may do so.
//
// @Summary      Deactivate a job
// @Tags         jobs
// @Produce      json
// @Security     CookieAuth
// @Param        jobId  path      string  true  "Job id"
// @Success      200    {object}  messageResponse
// @Failure      403    {object}  messageResponse
// @Failure      404    {object}  messageResponse
// @Router       /api/jobs/deactivate/{jobId} [put]
func (h *JobHandler) Deactivate(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.jobs.Deactivate(c.Request().Context(), c.Param("jobId"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Job deactivated successfully"))
}
