package handlers

import (
	"github.com/gin-gonic/gin"

	"voicemail-whisper/internal/api/middleware"
	"voicemail-whisper/internal/api/v1/services"
)

// AudioHandler serves stored clips.
type AudioHandler struct {
	service services.AudioService
}

func NewAudioHandler(service services.AudioService) *AudioHandler {
	return &AudioHandler{service: service}
}

// Serve handles GET /storage/audio/:ref
//
// @Summary Download a clip's audio
// @Tags audio
// @Produce octet-stream
// @Param ref path string true "Audio reference"
// @Success 200 {file} file "Audio file"
// @Failure 404 {object} errors.APIError "Audio not found"
// @Router /storage/audio/{ref} [get]
func (h *AudioHandler) Serve(c *gin.Context) {
	path, err := h.service.AudioPath(c.Request.Context(), c.Param("ref"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.File(path)
}
