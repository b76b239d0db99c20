package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/labvitta/labfin/internal/core/ports/services"
	"github.com/labvitta/labfin/internal/dto"
	"github.com/labvitta/labfin/internal/middleware"
)

// checkHandler handles HTTP requests related to checks.
type checkHandler struct {
	checkService portssvc.CheckSvcFacade
}

// newCheckHandler creates a new checkHandler.
func newCheckHandler(checkService portssvc.CheckSvcFacade) *checkHandler {
	return &checkHandler{checkService: checkService}
}

// registerCheckRoutes wires the check endpoints into the router group.
func registerCheckRoutes(rg *gin.RouterGroup, checkService portssvc.CheckSvcFacade) {
	h := newCheckHandler(checkService)
	checks := rg.Group("/checks")
	{
		checks.POST("", h.registerCheck)
		checks.GET("", h.listChecks)
		checks.GET("/:checkID", h.getCheck)
		checks.POST("/:checkID/transition", h.transitionCheck)
		checks.PUT("/:checkID", h.updateCheck)
		checks.PUT("/:checkID/location", h.setCheckLocation)
	}
}

// registerCheck godoc
// @Summary Register a new check
// @Description Registers a received or issued check in its initial ABERTO status
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   check body dto.RegisterCheckRequest true "Check to register"
// @Success 201 {object} dto.CheckResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /checks [post]
func (h *checkHandler) registerCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerCheck", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	check, err := h.checkService.RegisterCheck(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCheckResponse(check))
}

// listChecks godoc
// @Summary List checks
// @Description Lists checks, optionally filtered by kind and status
// @Tags checks
// @Produce  json
// @Param   kind query string false "Check kind (RECEBIDO/EMITIDO)"
// @Param   status query string false "Check status"
// @Success 200 {array} dto.CheckResponse
// @Router /checks [get]
func (h *checkHandler) listChecks(c *gin.Context) {
	var params dto.ListChecksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	checks, err := h.checkService.ListChecks(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"checks": dto.ToCheckResponses(checks)})
}

// getCheck godoc
// @Summary Get a check
// @Description Retrieves a check with its history and permitted actions
// @Tags checks
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Success 200 {object} dto.CheckResponse
// @Failure 404 {object} map[string]string "Check not found"
// @Router /checks/{checkID} [get]
func (h *checkHandler) getCheck(c *gin.Context) {
	checkID := strings.TrimSpace(c.Param("checkID"))

	check, err := h.checkService.GetCheckByID(c.Request.Context(), checkID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckResponse(check))
}

// transitionCheck godoc
// @Summary Transition a check's situacao
// @Description Applies a status change, cascading the localizacao for received checks
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Param   transition body dto.TransitionCheckRequest true "Requested status"
// @Success 200 {object} dto.CheckResponse
// @Failure 409 {object} map[string]string "Transition not permitted or check terminal"
// @Router /checks/{checkID}/transition [post]
func (h *checkHandler) transitionCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("checkID")

	var req dto.TransitionCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transitionCheck", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	check, err := h.checkService.Transition(c.Request.Context(), checkID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckResponse(check))
}

// updateCheck godoc
// @Summary Update a check's fields
// @Description Edits bank/party/amount/date fields; blocked once terminal
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Param   fields body dto.UpdateCheckRequest true "Fields to update"
// @Success 200 {object} dto.CheckResponse
// @Failure 409 {object} map[string]string "Check is terminal"
// @Router /checks/{checkID} [put]
func (h *checkHandler) updateCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("checkID")

	var req dto.UpdateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCheck", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	check, err := h.checkService.UpdateFields(c.Request.Context(), checkID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckResponse(check))
}

// setCheckLocation godoc
// @Summary Set a received check's localizacao
// @Description Sets the location independently of the status cascade
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Param   location body dto.SetCheckLocationRequest true "New location"
// @Success 200 {object} dto.CheckResponse
// @Failure 409 {object} map[string]string "Check is terminal"
// @Router /checks/{checkID}/location [put]
func (h *checkHandler) setCheckLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("checkID")

	var req dto.SetCheckLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setCheckLocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	check, err := h.checkService.SetLocation(c.Request.Context(), checkID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckResponse(check))
}
