package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/labvitta/labfin/internal/core/ports/services"
	"github.com/labvitta/labfin/internal/dto"
	"github.com/labvitta/labfin/internal/middleware"
)

// accountHandler handles HTTP requests for payable/receivable accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// registerAccountRoutes wires the account endpoints into the router group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.registerAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.POST("/:accountID/payments", h.recordPayment)
		accounts.POST("/:accountID/cancel", h.cancelAccount)
	}
}

// registerAccount godoc
// @Summary Register an account
// @Description Registers a payable or receivable account with a generated sequential code
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.RegisterAccountRequest true "Account to register"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /accounts [post]
func (h *accountHandler) registerAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	account, err := h.accountService.RegisterAccount(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account, time.Now().UTC()))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts, optionally filtered by kind and derived situacao
// @Tags accounts
// @Produce  json
// @Param   kind query string false "Account kind (PAGAR/RECEBER)"
// @Param   status query string false "Derived situacao"
// @Success 200 {array} dto.AccountResponse
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts, time.Now().UTC())})
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account with its payments, history and derived situacao
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account, time.Now().UTC()))
}

// recordPayment godoc
// @Summary Record a payment against an account
// @Description Appends a partial or full settlement; the situacao is re-derived on read
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   payment body dto.RecordAccountPaymentRequest true "Payment to record"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Account is cancelled"
// @Router /accounts/{accountID}/payments [post]
func (h *accountHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.RecordAccountPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	account, err := h.accountService.RecordPayment(c.Request.Context(), accountID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account, time.Now().UTC()))
}

// cancelAccount godoc
// @Summary Cancel an account
// @Description Applies the manual CANCELADO override; payments stay on record
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   cancel body dto.CancelAccountRequest true "Cancellation note"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Account already cancelled"
// @Router /accounts/{accountID}/cancel [post]
func (h *accountHandler) cancelAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.CancelAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cancelAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, _ := middleware.GetActorFromContext(c)
	account, err := h.accountService.CancelAccount(c.Request.Context(), accountID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account, time.Now().UTC()))
}
