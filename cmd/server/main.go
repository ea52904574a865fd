package main

import (
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/access"
	"github.com/AranyaAryaman/noJIRA/internal/config"
	"github.com/AranyaAryaman/noJIRA/internal/database"
	"github.com/AranyaAryaman/noJIRA/internal/handlers"
	"github.com/AranyaAryaman/noJIRA/internal/logger"
	"github.com/AranyaAryaman/noJIRA/internal/middleware"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"github.com/AranyaAryaman/noJIRA/internal/services"
	"github.com/AranyaAryaman/noJIRA/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogFile)
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// File storage for attachments
	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Fatalf("Failed to initialize upload storage: %v", err)
	}

	db := database.GetDB()
	engine := access.NewEngine(db)

	// Repositories
	personRepo := repository.NewPersonRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	// Services
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authService := services.NewAuthService(personRepo, cfg.JWTSecret, tokenTTL)
	teamService := services.NewTeamService(teamRepo, personRepo, engine)
	projectService := services.NewProjectService(projectRepo, personRepo, engine)
	taskService := services.NewTaskService(taskRepo, personRepo, engine)
	commentService := services.NewCommentService(commentRepo, engine, store)
	attachmentService := services.NewAttachmentService(attachmentRepo, engine, store)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokenTTL)
	personHandler := handlers.NewPersonHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)

	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			// People directory
			people := protected.Group("/people")
			{
				people.GET("/me", personHandler.Me)
				people.GET("/search", personHandler.SearchPeople)
				people.GET("/:person_id", personHandler.GetPerson)
			}

			// Teams
			teams := protected.Group("/teams")
			{
				teams.POST("", teamHandler.CreateTeam)
				teams.GET("", teamHandler.ListTeams)
				teams.GET("/:team_id", teamHandler.GetTeam)
				teams.PATCH("/:team_id", teamHandler.UpdateTeam)
				teams.DELETE("/:team_id", teamHandler.DeleteTeam)
				teams.GET("/:team_id/members", teamHandler.ListMembers)
				teams.POST("/:team_id/members", teamHandler.AddMember)
				teams.PATCH("/:team_id/members/:person_id", teamHandler.UpdateMemberRole)
				teams.DELETE("/:team_id/members/:person_id", teamHandler.RemoveMember)
			}

			// Projects
			projects := protected.Group("/projects")
			{
				projects.POST("", projectHandler.CreateProject)
				projects.GET("", projectHandler.ListProjects)
				projects.GET("/:project_id", projectHandler.GetProject)
				projects.PATCH("/:project_id", projectHandler.UpdateProject)
				projects.DELETE("/:project_id", projectHandler.DeleteProject)
				projects.POST("/:project_id/members", projectHandler.AddMember)
				projects.PATCH("/:project_id/members/:person_id", projectHandler.UpdateMemberRole)
				projects.DELETE("/:project_id/members/:person_id", projectHandler.RemoveMember)
				projects.POST("/:project_id/teams", projectHandler.LinkTeam)
				projects.DELETE("/:project_id/teams/:team_id", projectHandler.UnlinkTeam)
				projects.POST("/:project_id/tasks", taskHandler.CreateTask)
				projects.GET("/:project_id/tasks", taskHandler.ListTasks)
			}

			// Tasks
			tasks := protected.Group("/tasks")
			{
				tasks.GET("/:task_id", taskHandler.GetTask)
				tasks.PATCH("/:task_id", taskHandler.UpdateTask)
				tasks.DELETE("/:task_id", taskHandler.DeleteTask)
				tasks.GET("/:task_id/watchers", taskHandler.ListWatchers)
				tasks.POST("/:task_id/watchers", taskHandler.AddWatcher)
				tasks.DELETE("/:task_id/watchers/:person_id", taskHandler.RemoveWatcher)
				tasks.GET("/:task_id/history", taskHandler.ListHistory)
				tasks.POST("/:task_id/comments", commentHandler.CreateComment)
				tasks.GET("/:task_id/comments", commentHandler.ListComments)
				tasks.POST("/:task_id/attachments", attachmentHandler.UploadTaskAttachment)
				tasks.GET("/:task_id/attachments", attachmentHandler.ListTaskAttachments)
				tasks.GET("/:task_id/attachments/:attachment_id", attachmentHandler.DownloadTaskAttachment)
				tasks.DELETE("/:task_id/attachments/:attachment_id", attachmentHandler.DeleteTaskAttachment)
			}

			// Comments
			comments := protected.Group("/comments")
			{
				comments.PATCH("/:comment_id", commentHandler.UpdateComment)
				comments.DELETE("/:comment_id", commentHandler.DeleteComment)
				comments.POST("/:comment_id/attachments", attachmentHandler.UploadCommentAttachment)
				comments.GET("/:comment_id/attachments", attachmentHandler.ListCommentAttachments)
				comments.GET("/:comment_id/attachments/:attachment_id", attachmentHandler.DownloadCommentAttachment)
				comments.DELETE("/:comment_id/attachments/:attachment_id", attachmentHandler.DeleteCommentAttachment)
			}
		}
	}

	logger.Infof("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
