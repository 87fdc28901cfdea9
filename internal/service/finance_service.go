// Package service exposes the HTTP surface: transaction CRUD, the monthly
// summary and the workbook import endpoint.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mfcastro/financas/backend/internal/auth"
	"github.com/mfcastro/financas/backend/internal/importer"
	"github.com/mfcastro/financas/backend/internal/model"
	"github.com/mfcastro/financas/backend/internal/store"
)

// LinkSender issues passwordless sign-in links. Satisfied by
// *auth.FirebaseAuth; nil in local dev where the middleware injects a
// fixed user.
type LinkSender interface {
	SendLoginLink(ctx context.Context, email string) (string, error)
}

// Archiver stores a copy of an uploaded workbook. Nil disables archival.
type Archiver interface {
	Store(ctx context.Context, userID, filename string, data []byte) (string, error)
}

// FinanceService carries the collaborators every handler needs.
type FinanceService struct {
	store    store.Store
	links    LinkSender
	importer *importer.Importer
	archive  Archiver
	log      zerolog.Logger
}

// NewFinanceService wires the handlers over a record store.
func NewFinanceService(s store.Store, links LinkSender, archive Archiver, log zerolog.Logger) *FinanceService {
	return &FinanceService{
		store:    s,
		links:    links,
		importer: importer.New(s),
		archive:  archive,
		log:      log,
	}
}

type createTransactionRequest struct {
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	Kind          string  `json:"type"`
	PaymentMethod string  `json:"payment_method"`
	IsRecurring   bool    `json:"is_recurring"`
}

// handleCreateTransaction inserts a single transaction for the
// authenticated user. Income payloads are normalized the way the dashboard
// form does it: category Entrada, no payment method, never recurring.
func (s *FinanceService) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("date must be formatted YYYY-MM-DD"))
		return
	}

	tx := &model.Transaction{
		ID:          uuid.New().String(),
		UserID:      claims.UID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Kind:        model.Kind(req.Kind),
		CreatedAt:   time.Now().UTC(),
	}

	switch tx.Kind {
	case model.KindIncome:
		tx.Category = model.CategoryIncome
		tx.PaymentMethod = ""
		tx.IsRecurring = false
	case model.KindExpense:
		if tx.Category == "" {
			tx.Category = model.CategoryDefaultExpense
		}
		tx.PaymentMethod = model.PaymentMethod(req.PaymentMethod)
		if tx.PaymentMethod == "" {
			tx.PaymentMethod = model.PaymentDebit
		}
		tx.IsRecurring = req.IsRecurring
	}

	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.store.CreateTransaction(r.Context(), tx); err != nil {
		writeError(w, http.StatusInternalServerError, auth.WrapStoreError("create transaction", err))
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

// handleListTransactions returns the authenticated user's transactions for
// one calendar month, newest first, along with the computed summary. An
// optional view parameter partitions the list for one dashboard view; the
// summary always covers the whole month.
func (s *FinanceService) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	now := time.Now().UTC()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, errors.New("month must be between 1 and 12"))
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	pageSize := int32(queryInt(r, "page_size", 0))
	pageToken := r.URL.Query().Get("page_token")

	txs, nextToken, err := s.store.ListTransactions(r.Context(), claims.UID, &start, &end, pageSize, pageToken)
	if err != nil {
		writeError(w, http.StatusInternalServerError, auth.WrapStoreError("list transactions", err))
		return
	}

	resp := struct {
		Transactions  []*model.Transaction `json:"transactions"`
		Summary       Summary              `json:"summary"`
		NextPageToken string               `json:"next_page_token,omitempty"`
	}{
		Transactions:  txs,
		Summary:       Summarize(txs),
		NextPageToken: nextToken,
	}

	if view := r.URL.Query().Get("view"); view != "" {
		resp.Transactions = FilterView(txs, View(view))
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleDeleteTransaction removes one record by ID after checking that the
// caller owns it.
func (s *FinanceService) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	id := r.PathValue("id")
	tx, err := s.store.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if tx.UserID != claims.UID {
		writeError(w, http.StatusForbidden, errors.New("cannot delete another user's transaction"))
		return
	}

	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, auth.WrapStoreError("delete transaction", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCategories returns the fixed expense category labels offered by
// the dashboard form.
func (s *FinanceService) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": model.ExpenseCategories})
}

// handleSession echoes the authenticated user's claims.
func (s *FinanceService) handleSession(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":  claims.UID,
		"email":    claims.Email,
		"verified": claims.Verified,
	})
}

// handleLoginLink generates a passwordless sign-in link for the given
// email. Public endpoint: it runs before any session exists.
func (s *FinanceService) handleLoginLink(w http.ResponseWriter, r *http.Request) {
	if s.links == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("identity provider not configured"))
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, errors.New("email is required"))
		return
	}

	link, err := s.links.SendLoginLink(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.log.Info().Str("email", req.Email).Msg("sign-in link generated")
	s.log.Debug().Str("link", link).Msg("sign-in link")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
