package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/clique77/job-portal-sub001/internal/config"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(cfg config.DBConfig) (*DbContext, error) {
	dialector, embedded := dialectorFor(cfg.ConnectionString)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer; serializing connections keeps
	// concurrent transactions from failing with SQLITE_BUSY.
	if embedded {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return &DbContext{DB: db}, nil
}

// dbLogWriter sends gorm's own messages through logrus tagged as db errors.
type dbLogWriter struct{}

func (dbLogWriter) Printf(format string, args ...any) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf(format, args...)
}

func newGormLogger() gormlogger.Interface {
	return gormlogger.New(dbLogWriter{}, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Error,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func dialectorFor(connectionString string) (gorm.Dialector, bool) {
	lower := strings.ToLower(connectionString)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=") {
		return postgres.Open(connectionString), false
	}
	return sqlite.Open(connectionString), true
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		model any
	}{
		{"User", &models.User{}},
		{"Job", &models.Job{}},
		{"Application", &models.Application{}},
		{"Company", &models.Company{}},
		{"UserCompany", &models.UserCompany{}},
		{"SavedJob", &models.SavedJob{}},
		{"Resume", &models.Resume{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.model); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
