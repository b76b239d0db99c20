package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/labvitta/labfin/internal/core/ports/services"
	"github.com/labvitta/labfin/internal/dto"
	"github.com/labvitta/labfin/internal/middleware"
)

// ledgerHandler handles HTTP requests for visit payment ledgers.
type ledgerHandler struct {
	ledgerService portssvc.VisitLedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.VisitLedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// registerLedgerRoutes wires the ledger endpoints into the router group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.VisitLedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)
	ledgers := rg.Group("/ledgers")
	{
		ledgers.POST("", h.createLedger)
		ledgers.GET("/:ledgerID", h.getLedger)
		ledgers.POST("/:ledgerID/entries", h.addEntry)
		ledgers.PUT("/:ledgerID/entries/:entryID", h.editEntry)
		ledgers.POST("/:ledgerID/entries/:entryID/reverse", h.reverseEntry)
	}
	rg.GET("/visits/:visitID/ledger", h.getLedgerByVisit)
}

// parseEntryID reads the numeric entry id path parameter. A non-numeric id
// can never match an entry, so it is reported as a bad request rather than
// a not-found.
func parseEntryID(c *gin.Context) (int64, bool) {
	entryID, err := strconv.ParseInt(c.Param("entryID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return 0, false
	}
	return entryID, true
}

// createLedger godoc
// @Summary Create a visit ledger
// @Description Creates the empty payment ledger owned by a visit
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledger body dto.CreateLedgerRequest true "Ledger to create"
// @Success 201 {object} dto.LedgerResponse
// @Failure 409 {object} map[string]string "Visit already owns a ledger"
// @Router /ledgers [post]
func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// getLedger godoc
// @Summary Get a ledger
// @Description Retrieves a ledger with its entries and running totals
// @Tags ledgers
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Ledger not found"
// @Router /ledgers/{ledgerID} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	ledgerID := c.Param("ledgerID")

	ledger, err := h.ledgerService.GetLedgerByID(c.Request.Context(), ledgerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// getLedgerByVisit godoc
// @Summary Get the ledger owned by a visit
// @Description Retrieves the single ledger attached to a visit
// @Tags ledgers
// @Produce  json
// @Param   visitID path string true "Visit ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Visit has no ledger"
// @Router /visits/{visitID}/ledger [get]
func (h *ledgerHandler) getLedgerByVisit(c *gin.Context) {
	visitID := c.Param("visitID")

	ledger, err := h.ledgerService.GetLedgerByVisitID(c.Request.Context(), visitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// addEntry godoc
// @Summary Add a payment entry
// @Description Appends a payment entry; a single entry may not exceed the pending balance
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   entry body dto.AddLedgerEntryRequest true "Entry to add"
// @Success 200 {object} dto.LedgerResponse
// @Failure 409 {object} map[string]string "Entry would overpay the ledger"
// @Router /ledgers/{ledgerID}/entries [post]
func (h *ledgerHandler) addEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.AddLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	ledger, err := h.ledgerService.AddEntry(c.Request.Context(), ledgerID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// editEntry godoc
// @Summary Edit a payment entry
// @Description Replaces the editable fields of an entry in place; reversed entries reject edits
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   entryID path int true "Entry ID"
// @Param   entry body dto.EditLedgerEntryRequest true "Fields to update"
// @Success 200 {object} dto.LedgerResponse
// @Failure 409 {object} map[string]string "Entry is reversed"
// @Router /ledgers/{ledgerID}/entries/{entryID} [put]
func (h *ledgerHandler) editEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	entryID, ok := parseEntryID(c)
	if !ok {
		return
	}

	var req dto.EditLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for editEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	ledger, err := h.ledgerService.EditEntry(c.Request.Context(), ledgerID, entryID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// reverseEntry godoc
// @Summary Reverse a payment entry
// @Description Marks an entry ESTORNADO without removing it; double reversal is rejected
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   entryID path int true "Entry ID"
// @Param   reversal body dto.ReverseLedgerEntryRequest true "Reversal note"
// @Success 200 {object} dto.LedgerResponse
// @Failure 409 {object} map[string]string "Entry already reversed"
// @Router /ledgers/{ledgerID}/entries/{entryID}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	entryID, ok := parseEntryID(c)
	if !ok {
		return
	}

	var req dto.ReverseLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	ledger, err := h.ledgerService.ReverseEntry(c.Request.Context(), ledgerID, entryID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}
