package api

import (
	"net/http"

	"github.com/ledgercore/fin-ledger/internal/domain"
	"github.com/ledgercore/fin-ledger/internal/service"
)

// StatementHandler handles the ledger API requests: deposits, withdrawals,
// balance and single-operation lookups. All of its routes require an
// authenticated user.
type StatementHandler struct {
	ledgerService service.LedgerService
}

// NewStatementHandler creates a new StatementHandler with the given dependencies.
func NewStatementHandler(ledgerService service.LedgerService) *StatementHandler {
	return &StatementHandler{
		ledgerService: ledgerService,
	}
}

// Deposit handles POST /statements/deposit.
func (h *StatementHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.createStatement(w, r, domain.OperationDeposit)
}

// Withdraw handles POST /statements/withdraw.
func (h *StatementHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.createStatement(w, r, domain.OperationWithdraw)
}

// createStatement parses and validates the shared deposit/withdraw payload
// and records the operation for the authenticated user.
func (h *StatementHandler) createStatement(
	w http.ResponseWriter,
	r *http.Request,
	opType domain.OperationType,
) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateStatementRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := ValidateRequest(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	statement, err := h.ledgerService.CreateStatement(r.Context(), service.CreateStatementInput{
		UserID:      userID,
		Type:        opType,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, NewStatementResponse(statement))
}

// GetBalance handles GET /statements/balance.
func (h *StatementHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.ledgerService.GetBalance(r.Context(), userID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewBalanceResponse(result))
}

// GetStatementOperation handles GET /statements/{statement_id}.
func (h *StatementHandler) GetStatementOperation(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	statementID, err := getPathUUID(r, "statement_id")
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	statement, err := h.ledgerService.GetStatementOperation(r.Context(), userID, statementID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewStatementResponse(statement))
}
