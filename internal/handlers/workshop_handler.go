package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
	"github.com/macalbert/cdk-intro-workshop/internal/models"
)

// WorkshopHandler serves the workshop demo endpoints
type WorkshopHandler struct {
	info models.ServiceInfo
}

// NewWorkshopHandler creates a handler reporting the given deployment
func NewWorkshopHandler(service config.ServiceConfig) *WorkshopHandler {
	return &WorkshopHandler{
		info: models.NewServiceInfo(service),
	}
}

// Root godoc
// @Summary Root endpoint
// @Description Returns a welcome message
// @Tags workshop
// @Produce json
// @Success 200 {object} models.WelcomeMessage
// @Router / [get]
func (h *WorkshopHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewWelcomeMessage())
}

// Health godoc
// @Summary Health check
// @Description Returns the health status of the service
// @Tags workshop
// @Produce json
// @Success 200 {object} models.HealthStatus
// @Router /health [get]
func (h *WorkshopHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewHealthStatus())
}

// Info godoc
// @Summary Service information
// @Description Returns detailed information about the service and deployment
// @Tags workshop
// @Produce json
// @Success 200 {object} models.ServiceInfo
// @Router /info [get]
func (h *WorkshopHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.info)
}

// Echo godoc
// @Summary Echo data
// @Description Echoes back the provided JSON data
// @Tags workshop
// @Accept json
// @Produce json
// @Param data body object true "Any JSON object"
// @Success 200 {object} models.EchoResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 413 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /echo [post]
func (h *WorkshopHandler) Echo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		if isBodyTooLarge(err) {
			respondError(c, http.StatusRequestEntityTooLarge, "Request too large", err)
			return
		}
		respondError(c, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	payload, err := models.ParseEchoPayload(body)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid request body", err)
		return
	}

	c.JSON(http.StatusOK, models.NewEchoResponse(payload))
}
