package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (a *API) writeDebtError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeErr(w, http.StatusNotFound, detailDebtNotFound)
	case errors.Is(err, common.ErrorValidation):
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
	default:
		a.internalError(w, r, "debt operation failed", err)
	}
}

// CreateDebt handles POST /api/debts/.
func (a *API) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var body debtCreateRequest
	if !a.decode(w, r, &body) {
		return
	}
	user := UserFromContext(r.Context())

	d, err := a.debts.Create(r.Context(), user.ID, services.DebtInput{
		Type:        body.DebtType,
		PersonName:  body.PersonName,
		Amount:      body.Amount,
		Currency:    body.Currency,
		Description: body.Description,
		DueDate:     body.DueDate,
	})
	if err != nil {
		a.writeDebtError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newDebtResponse(d))
}

// ListDebts handles GET /api/debts/?debt_type=.
func (a *API) ListDebts(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	list, err := a.debts.List(r.Context(), user.ID, r.URL.Query().Get("debt_type"))
	if err != nil {
		a.writeDebtError(w, r, err)
		return
	}
	out := make([]debtResponse, 0, len(list))
	for _, d := range list {
		out = append(out, newDebtResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetDebt handles GET /api/debts/{id}.
func (a *API) GetDebt(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	d, err := a.debts.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		a.writeDebtError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDebtResponse(d))
}

// UpdateDebt handles PUT and PATCH /api/debts/{id}; absent fields are kept.
func (a *API) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	var body debtUpdateRequest
	if !a.decode(w, r, &body) {
		return
	}
	user := UserFromContext(r.Context())

	d, err := a.debts.Update(r.Context(), user.ID, chi.URLParam(r, "id"), services.DebtPatch{
		Type:        body.DebtType,
		PersonName:  body.PersonName,
		Amount:      body.Amount,
		Currency:    body.Currency,
		Description: body.Description,
		DueDate:     body.DueDate,
	})
	if err != nil {
		a.writeDebtError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDebtResponse(d))
}

// DeleteDebt handles DELETE /api/debts/{id}.
func (a *API) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := a.debts.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		a.writeDebtError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
