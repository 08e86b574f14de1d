package api

import (
	"net/http"

	"github.com/clique77/job-portal-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companies *services.CompanyService
}

func NewCompanyHandler(companies *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type memberRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type roleRequest struct {
	Role string `json:"role"`
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req services.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	company, err := h.companies.CreateCompany(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companies.ListCompanies(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companies.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req services.CompanyPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	company, err := h.companies.UpdateCompany(c.Request.Context(), c.Param("id"), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.companies.DeleteCompany(c.Request.Context(), c.Param("id"), actorFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) ListMembers(c *gin.Context) {
	members, err := h.companies.ListCompanyMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *CompanyHandler) AddMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	membership, err := h.companies.AddUserToCompany(c.Request.Context(), c.Param("id"), req.UserID, req.Role, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, membership)
}

func (h *CompanyHandler) UpdateMemberRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	membership, err := h.companies.UpdateUserCompanyRole(c.Request.Context(), c.Param("id"), c.Param("userId"),
		req.Role, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, membership)
}

func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	err := h.companies.RemoveUserFromCompany(c.Request.Context(), c.Param("id"), c.Param("userId"), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) ListMine(c *gin.Context) {
	memberships, err := h.companies.ListUserCompanies(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memberships)
}
