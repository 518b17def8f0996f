package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voicemail-whisper/internal/api/errors"
	"voicemail-whisper/internal/api/middleware"
	"voicemail-whisper/internal/api/v1/dto"
	"voicemail-whisper/internal/api/v1/services"
)

// AudioFormField is the multipart field holding an uploaded clip.
const AudioFormField = "audio"

// ClipHandler handles clip-related API endpoints
type ClipHandler struct {
	service services.ClipService
}

// NewClipHandler creates a new clip handler
func NewClipHandler(service services.ClipService) *ClipHandler {
	return &ClipHandler{
		service: service,
	}
}

// Upload handles POST /store and POST /api/v1/clips/upload
// Stores an uploaded clip and starts the pipeline
//
// @Summary Upload a voicemail clip
// @Tags clips
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio clip"
// @Success 200 {object} dto.CreateClipResponse "Clip stored, processing started"
// @Failure 400 {object} errors.APIError "No file uploaded"
// @Failure 422 {object} errors.APIError "Unsupported audio format"
// @Router /store [post]
func (h *ClipHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile(AudioFormField)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("No file uploaded"))
		return
	}
	defer file.Close()

	response, err := h.service.UploadClip(c.Request.Context(), header.Filename, file, header.Size)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/v1/clips
// Submits audio already in the audio store
//
// @Summary Submit a stored clip
// @Tags clips
// @Accept json
// @Produce json
// @Param clip body dto.CreateClipRequest true "Audio reference"
// @Success 201 {object} dto.CreateClipResponse "Clip created"
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /api/v1/clips [post]
func (h *ClipHandler) Create(c *gin.Context) {
	var req dto.CreateClipRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.CreateClip(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /status/:id and GET /api/v1/clips/:id
//
// @Summary Get the status view of a clip
// @Tags clips
// @Produce json
// @Param id path int true "Clip ID" minimum(1)
// @Success 200 {object} status.StatusView "Current status, pending stages as placeholders"
// @Failure 400 {object} errors.APIError "Invalid clip ID"
// @Failure 404 {object} errors.APIError "Clip not found"
// @Router /status/{id} [get]
func (h *ClipHandler) Get(c *gin.Context) {
	id, ok := clipID(c)
	if !ok {
		return
	}

	response, err := h.service.GetStatus(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Raw handles GET /debug/:id and GET /api/v1/clips/:id/raw
//
// @Summary Get the stored clip record
// @Tags clips
// @Produce json
// @Param id path int true "Clip ID" minimum(1)
// @Success 200 {object} model.Clip "Stored record"
// @Failure 404 {object} errors.APIError "Clip not found"
// @Router /debug/{id} [get]
func (h *ClipHandler) Raw(c *gin.Context) {
	id, ok := clipID(c)
	if !ok {
		return
	}

	response, err := h.service.GetRaw(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/clips
//
// @Summary List clips, newest first
// @Tags clips
// @Produce json
// @Param limit query int false "Max clips" default(100) minimum(1) maximum(1000)
// @Param status query string false "Comma separated statuses"
// @Success 200 {object} dto.ClipListResponse
// @Failure 400 {object} errors.APIError "Invalid query parameters"
// @Router /api/v1/clips [get]
func (h *ClipHandler) List(c *gin.Context) {
	var query dto.ListClipsQuery

	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListClips(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SetValidity handles PUT /api/v1/clips/:id/validity
//
// @Summary Record the manual review verdict
// @Tags clips
// @Accept json
// @Produce json
// @Param id path int true "Clip ID" minimum(1)
// @Param verdict body dto.SetValidityRequest true "Verdict"
// @Success 200 {object} status.StatusView
// @Failure 404 {object} errors.APIError "Clip not found"
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /api/v1/clips/{id}/validity [put]
func (h *ClipHandler) SetValidity(c *gin.Context) {
	id, ok := clipID(c)
	if !ok {
		return
	}

	var req dto.SetValidityRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.SetValidity(c.Request.Context(), id, *req.IsValid)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func clipID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid clip ID"))
		return 0, false
	}
	return id, true
}
