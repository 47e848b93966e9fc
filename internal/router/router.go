package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"project-hub-api/internal/client"
	"project-hub-api/internal/events"
	"project-hub-api/internal/handler"
	"project-hub-api/internal/metrics"
	"project-hub-api/internal/middleware"
	"project-hub-api/internal/repository"
	"project-hub-api/internal/service"
)

// Config carries the dependencies the router wires together
type Config struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	JWTSecret   string
	BasePath    string
	Metrics     *metrics.Metrics
	S3Client    client.S3ClientInterface
	EmailClient client.EmailClientInterface
	Bus         *events.Bus
	Hub         *handler.Hub
}

// Setup builds the full route tree and returns the engine together
// with the notification service, which background jobs share.
func Setup(cfg Config) (*gin.Engine, service.NotificationService) {
	r := gin.New()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS())
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	projectRepo := repository.NewProjectRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	userRepo := repository.NewUserRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	fileRepo := repository.NewFileRepository(cfg.DB)
	activityRepo := repository.NewActivityRepository(cfg.DB)
	notificationRepo := repository.NewNotificationRepository(cfg.DB)

	// Services
	notificationSvc := service.NewNotificationService(notificationRepo, cfg.Redis, cfg.Logger)
	fanoutSvc := service.NewFanoutService(
		notificationRepo, taskRepo, userRepo, projectRepo,
		cfg.Bus, cfg.EmailClient, notificationSvc, cfg.Metrics, cfg.Logger)
	activitySvc := service.NewActivityService(activityRepo, cfg.Bus, cfg.Logger)
	projectSvc := service.NewProjectService(projectRepo, activitySvc, cfg.Logger)
	taskSvc := service.NewTaskService(taskRepo, projectRepo, fanoutSvc, activitySvc, cfg.Bus, cfg.Logger)
	commentSvc := service.NewCommentService(commentRepo, taskRepo, projectRepo, fanoutSvc, activitySvc, cfg.Logger)
	fileSvc := service.NewFileService(fileRepo, projectRepo, cfg.S3Client, fanoutSvc, activitySvc, cfg.Logger)
	userSvc := service.NewUserService(userRepo, cfg.S3Client, cfg.Bus, cfg.Logger)
	panelResolver := service.NewPanelEntityResolver(taskRepo, activityRepo, userRepo, fileRepo)

	// Handlers
	projectHandler := handler.NewProjectHandler(projectSvc, cfg.Logger)
	taskHandler := handler.NewTaskHandler(taskSvc, cfg.Logger)
	commentHandler := handler.NewCommentHandler(commentSvc, cfg.Logger)
	fileHandler := handler.NewFileHandler(fileSvc, cfg.Logger)
	userHandler := handler.NewUserHandler(userSvc, cfg.Logger)
	activityHandler := handler.NewActivityHandler(activitySvc, cfg.Logger)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, cfg.Logger)
	emailHandler := handler.NewEmailHandler(cfg.EmailClient, cfg.Logger)
	wsHandler := handler.NewWSHandler(cfg.Hub, cfg.Bus, panelResolver, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// Probes and operational endpoints stay outside the base path
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group(cfg.BasePath)
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/members", projectHandler.ListMembers)
			projects.POST("/:id/members", projectHandler.AddMember)
			projects.DELETE("/:id/members/:userId", projectHandler.RemoveMember)
			projects.GET("/:id/files", fileHandler.ListFiles)
			projects.GET("/:id/activities", activityHandler.ListByProject)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.GET("/:id/comments", commentHandler.ListComments)
		}

		comments := api.Group("/comments")
		{
			comments.POST("", commentHandler.CreateComment)
			comments.PUT("/:id", commentHandler.UpdateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}

		files := api.Group("/files")
		{
			files.POST("", fileHandler.UploadFile)
			files.GET("/:id", fileHandler.GetFile)
			files.GET("/:id/download", fileHandler.GetDownloadURL)
			files.DELETE("/:id", fileHandler.DeleteFile)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
			users.POST("/me/avatar", userHandler.UploadAvatar)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/activities", activityHandler.ListByUser)
		}

		api.GET("/activities", activityHandler.ListRecent)

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.PATCH("/read-all", notificationHandler.MarkAllAsRead)
			notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
		}

		emails := api.Group("/emails")
		{
			emails.POST("/invite", emailHandler.SendInvite)
			emails.POST("/welcome", emailHandler.SendWelcome)
		}

		api.GET("/ws", wsHandler.ServeWS)
	}

	return r, notificationSvc
}
