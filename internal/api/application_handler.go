package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/clique77/job-portal-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req services.ApplyInput
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	if err := h.applications.Apply(c.Request.Context(), c.Param("id"), actorFrom(c).ID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	if err := h.applications.Withdraw(c.Request.Context(), c.Param("id"), actorFrom(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req services.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.applications.UpdateStatus(c.Request.Context(), c.Param("id"), c.Param("applicantId"), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	applications, err := h.applications.GetJobApplicants(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	applications, err := h.applications.GetMyApplications(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}
