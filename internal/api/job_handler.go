package api

import (
	"net/http"
	"strconv"

	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/clique77/job-portal-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobs  *services.JobService
	saved *services.SavedJobService
}

func NewJobHandler(jobs *services.JobService, saved *services.SavedJobService) *JobHandler {
	return &JobHandler{jobs: jobs, saved: saved}
}

func (h *JobHandler) Search(c *gin.Context) {
	filter := models.JobFilter{
		Query:     c.Query("q"),
		Location:  c.Query("location"),
		Type:      models.JobType(c.Query("type")),
		Category:  c.Query("category"),
		Tag:       c.Query("tag"),
		Status:    models.JobStatus(c.Query("status")),
		SalaryMin: queryInt(c, "salaryMin"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}

	page, err := h.jobs.SearchJobs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListByEmployer(c *gin.Context) {
	jobs, err := h.jobs.ListEmployerJobs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req services.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	job, err := h.jobs.CreateJob(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	var req services.JobPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	job, err := h.jobs.UpdateJob(c.Request.Context(), c.Param("id"), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobs.DeleteJob(c.Request.Context(), c.Param("id"), actorFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) Save(c *gin.Context) {
	saved, err := h.saved.SaveJob(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *JobHandler) Unsave(c *gin.Context) {
	if err := h.saved.UnsaveJob(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) ListSaved(c *gin.Context) {
	saved, err := h.saved.ListSavedJobs(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// queryInt treats a missing or malformed value as zero.
func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}
