package api

import (
	"net/http"
	"time"

	"github.com/clique77/job-portal-sub001/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDependencies struct {
	AuthHandler        *AuthHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	CompanyHandler     *CompanyHandler
	ResumeHandler      *ResumeHandler
	Tokens             tokenParser
	ApplyLimiter       Limiter
	AllowedOrigins     []string
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), requestMetrics(), corsMiddleware(deps.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.POST("/auth/register", deps.AuthHandler.Register)
	router.POST("/auth/login", deps.AuthHandler.Login)

	router.GET("/jobs", deps.JobHandler.Search)
	router.GET("/jobs/:id", deps.JobHandler.Get)
	router.GET("/employers/:id/jobs", deps.JobHandler.ListByEmployer)
	router.GET("/companies", deps.CompanyHandler.List)
	router.GET("/companies/:id", deps.CompanyHandler.Get)
	router.GET("/companies/:id/members", deps.CompanyHandler.ListMembers)

	private := router.Group("/", authenticate(deps.Tokens))
	{
		private.GET("/users/me", deps.AuthHandler.Me)
		private.PATCH("/users/me", deps.AuthHandler.UpdateProfile)
		private.GET("/users/me/applications", deps.ApplicationHandler.ListMine)
		private.GET("/users/me/saved-jobs", deps.JobHandler.ListSaved)
		private.GET("/users/me/companies", deps.CompanyHandler.ListMine)

		private.POST("/jobs", deps.JobHandler.Create)
		private.PATCH("/jobs/:id", deps.JobHandler.Update)
		private.DELETE("/jobs/:id", deps.JobHandler.Delete)
		private.POST("/jobs/:id/save", deps.JobHandler.Save)
		private.DELETE("/jobs/:id/save", deps.JobHandler.Unsave)

		private.POST("/jobs/:id/applications", rateLimit(deps.ApplyLimiter, "apply"), deps.ApplicationHandler.Apply)
		private.DELETE("/jobs/:id/applications", deps.ApplicationHandler.Withdraw)
		private.GET("/jobs/:id/applications", deps.ApplicationHandler.ListApplicants)
		private.PATCH("/jobs/:id/applications/:applicantId", deps.ApplicationHandler.UpdateStatus)

		private.POST("/resumes", deps.ResumeHandler.Add)
		private.GET("/resumes", deps.ResumeHandler.List)
		private.DELETE("/resumes/:id", deps.ResumeHandler.Delete)

		private.POST("/companies", deps.CompanyHandler.Create)
		private.PATCH("/companies/:id", deps.CompanyHandler.Update)
		private.DELETE("/companies/:id", deps.CompanyHandler.Delete)
		private.POST("/companies/:id/members", deps.CompanyHandler.AddMember)
		private.PATCH("/companies/:id/members/:userId", deps.CompanyHandler.UpdateMemberRole)
		private.DELETE("/companies/:id/members/:userId", deps.CompanyHandler.RemoveMember)
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.MaxAge = 12 * time.Hour
	return cors.New(config)
}
