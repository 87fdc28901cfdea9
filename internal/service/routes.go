package service

import "net/http"

// Routes registers every endpoint on the mux. Authentication is applied
// by middleware around the whole mux, not per route.
func (s *FinanceService) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/auth/login-link", s.handleLoginLink)
	mux.HandleFunc("GET /v1/auth/session", s.handleSession)

	mux.HandleFunc("GET /v1/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /v1/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /v1/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /v1/transactions/import", s.handleImport)

	mux.HandleFunc("GET /v1/categories", s.handleCategories)
}
