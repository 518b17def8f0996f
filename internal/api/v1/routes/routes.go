package routes

import (
	"github.com/gin-gonic/gin"

	"voicemail-whisper/internal/api/v1/handlers"
	"voicemail-whisper/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	ClipService  services.ClipService
	AudioService services.AudioService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	clipHandler := handlers.NewClipHandler(container.ClipService)
	clips := router.Group("/clips")
	{
		clips.POST("", clipHandler.Create)
		clips.POST("/upload", clipHandler.Upload)
		clips.GET("", clipHandler.List)
		clips.GET("/:id", clipHandler.Get)
		clips.GET("/:id/raw", clipHandler.Raw)
		clips.PUT("/:id/validity", clipHandler.SetValidity)
	}
}

// RegisterRootRoutes registers the unversioned paths polled by existing clients:
// upload, status, debug and the audio files themselves.
func RegisterRootRoutes(router gin.IRouter, container *ServiceContainer, audioPrefix string) {
	clipHandler := handlers.NewClipHandler(container.ClipService)
	router.POST("/store", clipHandler.Upload)
	router.GET("/status/:id", clipHandler.Get)
	router.GET("/debug/:id", clipHandler.Raw)

	if container.AudioService != nil {
		audioHandler := handlers.NewAudioHandler(container.AudioService)
		router.GET(audioPrefix+":ref", audioHandler.Serve)
	}
}
