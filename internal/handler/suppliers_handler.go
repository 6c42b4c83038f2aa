package handler

import (
	"encoding/json"
	"net/http"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/penquin501/supplychain-prescreen-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Suppliers
// ============================================================

func listSuppliersHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/suppliers")
		defer span.End()

		suppliers, err := svc.ListSuppliers(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, suppliers)
	}
}

func createSupplierHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/suppliers")
		defer span.End()

		var req domain.CreateSupplierRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		created, err := svc.CreateSupplier(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getSupplierHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/suppliers/{supplierId}")
		defer span.End()

		supplier, err := svc.GetSupplier(ctx, chi.URLParam(r, "supplierId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, supplier)
	}
}

// ============================================================
// Scoring inputs
// ============================================================

func listFinancialsHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/suppliers/{supplierId}/financials")
		defer span.End()

		statements, err := svc.ListFinancialStatements(ctx, chi.URLParam(r, "supplierId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, statements)
	}
}

func listTransactionsHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/suppliers/{supplierId}/transactions")
		defer span.End()

		txns, err := svc.ListTransactions(ctx, chi.URLParam(r, "supplierId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, txns)
	}
}

func listDocumentsHandler(svc *service.PrescreenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/suppliers/{supplierId}/documents")
		defer span.End()

		docs, err := svc.ListDocuments(ctx, chi.URLParam(r, "supplierId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, docs)
	}
}
