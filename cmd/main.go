package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/clique77/job-portal-sub001/internal/api"
	"github.com/clique77/job-portal-sub001/internal/config"
	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/clique77/job-portal-sub001/internal/metrics"
	"github.com/clique77/job-portal-sub001/internal/repositories"
	"github.com/clique77/job-portal-sub001/internal/security"
	"github.com/clique77/job-portal-sub001/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const expiredJobsSchedule = "*/15 * * * *"

func newApplyLimiter(cfg *config.Config) api.Limiter {
	if cfg.Server.ApplyRateLimit <= 0 {
		return nil
	}

	if !cfg.Redis.Enabled() {
		return api.NewMemoryLimiter(cfg.Server.ApplyRateLimit)
	}

	options, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("invalid redis url: %v", err)
	}
	log.Info("apply rate limit backed by redis")
	return api.NewRedisLimiter(redis.NewClient(options), cfg.Server.ApplyRateLimit)
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()
	gin.SetMode(cfg.Server.Mode)

	dbContext, err := repositories.NewDbContext(cfg.DB)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	tokens, err := security.NewJWTProvider(cfg.Auth)
	if err != nil {
		log.Fatalf("can't create jwt provider: %v", err)
	}

	bus := EventBus.New()
	users := repositories.NewCachedUsers(repositories.NewUsersRepository(dbContext.DB))
	jobs := repositories.NewJobsRepository(dbContext.DB)
	resumes := repositories.NewResumesRepository(dbContext.DB)

	if _, err = services.NewNotifier(bus, users); err != nil {
		log.Fatalf("can't create notifier: %v", err)
	}

	authService, err := services.NewAuthService(users, tokens)
	if err != nil {
		log.Fatalf("can't create auth service: %v", err)
	}

	jobService, err := services.NewJobService(jobs)
	if err != nil {
		log.Fatalf("can't create job service: %v", err)
	}

	savedJobService, err := services.NewSavedJobService(jobs, repositories.NewSavedJobsRepository(dbContext.DB))
	if err != nil {
		log.Fatalf("can't create saved job service: %v", err)
	}

	applicationService, err := services.NewApplicationService(bus, jobs, users, resumes,
		repositories.NewApplicationsRepository(dbContext.DB))
	if err != nil {
		log.Fatalf("can't create application service: %v", err)
	}

	companyService, err := services.NewCompanyService(bus, repositories.NewCompaniesRepository(dbContext.DB),
		repositories.NewMembershipsRepository(dbContext.DB), users)
	if err != nil {
		log.Fatalf("can't create company service: %v", err)
	}

	resumeService, err := services.NewResumeService(resumes)
	if err != nil {
		log.Fatalf("can't create resume service: %v", err)
	}

	closer, err := services.NewJobsCloser(jobs, expiredJobsSchedule)
	if err != nil {
		log.Fatalf("can't create jobs closer: %v", err)
	}
	closer.Start()

	applyLimiter := newApplyLimiter(cfg)

	router := api.NewRouter(api.RouterDependencies{
		AuthHandler:        api.NewAuthHandler(authService),
		JobHandler:         api.NewJobHandler(jobService, savedJobService),
		ApplicationHandler: api.NewApplicationHandler(applicationService),
		CompanyHandler:     api.NewCompanyHandler(companyService),
		ResumeHandler:      api.NewResumeHandler(resumeService),
		Tokens:             tokens,
		ApplyLimiter:       applyLimiter,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
	})

	if err = api.NewServer(cfg.Server, router).Run(ctx); err != nil {
		log.Errorf("http server stopped with error: %v", err)
	}

	log.Info("Shutting down services...")
	closer.Stop()
	if limiterCloser, ok := applyLimiter.(io.Closer); ok {
		if err = limiterCloser.Close(); err != nil {
			log.Errorf("can't close rate limiter: %v", err)
		}
	}
	log.Info("Services stopped.")
}
