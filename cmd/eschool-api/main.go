package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/eschool-api/api/swagger"
	"github.com/noah-isme/eschool-api/internal/handler"
	"github.com/noah-isme/eschool-api/internal/middleware"
	"github.com/noah-isme/eschool-api/internal/repository"
	"github.com/noah-isme/eschool-api/internal/service"
	"github.com/noah-isme/eschool-api/pkg/cache"
	"github.com/noah-isme/eschool-api/pkg/config"
	"github.com/noah-isme/eschool-api/pkg/database"
	"github.com/noah-isme/eschool-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/eschool-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/eschool-api/pkg/middleware/requestid"
	"github.com/noah-isme/eschool-api/pkg/validation"
)

// @title eSchool API
// @version 1.0.0
// @description School management backend: rosters, student accounts, grades, chat and calendars.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()
	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.EventsTTL, logr, cfg.Cache.Enabled)

	accounts := repository.NewAccountRepository(db)
	students := repository.NewStudentRepository(db)
	classes := repository.NewClassRepository(db)
	parents := repository.NewParentRepository(db)
	teachers := repository.NewTeacherRepository(db)
	subjects := repository.NewSubjectRepository(db)
	grades := repository.NewGradeRepository(db)
	absences := repository.NewAbsenceRepository(db)
	chats := repository.NewChatRepository(db)
	notices := repository.NewNoticeRepository(db)
	events := repository.NewEventRepository(db)
	dashboards := repository.NewDashboardRepository(db)

	validator := validation.New()
	authSvc := service.NewAuthService(accounts, validator, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	handlers := handler.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Account: handler.NewAccountHandler(service.NewAccountService(accounts, validator, logr)),
		Roster: handler.NewRosterHandler(
			service.NewRosterService(students, cfg.Roster.PageSize, metrics, logr),
			service.NewExportService(students, cfg.Roster.ExportMaxRow, logr),
		),
		Student: handler.NewStudentHandler(service.NewStudentService(students, accounts, classes, parents, accounts, validator, metrics, logr)),
		Search:  handler.NewSearchHandler(service.NewSearchService(students, teachers, parents, subjects, cfg.Search.Limit, logr)),
		Grade:   handler.NewGradeHandler(service.NewGradeService(grades, subjects, students, classes, logr)),
		Portal: handler.NewPortalHandler(service.NewPortalService(
			students, students, classes, subjects, absences, teachers, notices, cfg.Dashboard.RecentLimit, logr,
		)),
		Chat:      handler.NewChatHandler(service.NewChatService(chats, accounts, validator, logr)),
		Notice:    handler.NewNoticeHandler(service.NewNoticeService(notices)),
		Calendar:  handler.NewCalendarHandler(service.NewCalendarService(events, students, classes, subjects, cacheSvc, cfg.Cache.EventsTTL, logr)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(dashboards, notices, chats, cacheSvc, cfg.Dashboard.CacheTTL, cfg.Dashboard.RecentLimit, logr)),
		Metrics:   handler.NewMetricsHandler(metrics),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", handlers.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", handlers.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix, handlers, authSvc, accounts, logr)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
