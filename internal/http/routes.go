package http

import (
	"taskmanager/internal/http/handlers"
	"taskmanager/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	r.GET("/health", healthHandler.Health)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
	}

	task := r.Group("/task")
	task.Use(middleware.Auth())
	{
		task.GET("/getTasks", h.GetTasks)
		task.POST("/addTask", h.AddTask)
		task.PATCH("/editTask/:taskId", h.EditTask)
		task.DELETE("/removeTask/:taskId", h.RemoveTask)
		task.DELETE("/deleteTasks", h.DeleteTasks)
		task.GET("/dashboard", h.Dashboard)
	}
}
