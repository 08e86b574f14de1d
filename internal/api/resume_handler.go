package api

import (
	"net/http"

	"github.com/clique77/job-portal-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumes *services.ResumeService
}

func NewResumeHandler(resumes *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

func (h *ResumeHandler) Add(c *gin.Context) {
	var req services.ResumeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resume, err := h.resumes.AddResume(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resume)
}

func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.resumes.ListResumes(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumes)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.resumes.DeleteResume(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
