package httpapi

import "net/http"

// Summary handles GET /api/monitoring/.
func (a *API) Summary(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	sums, err := a.debts.Summary(r.Context(), user.ID)
	if err != nil {
		a.internalError(w, r, "monitoring summary failed", err)
		return
	}
	out := summaryResponse{Summary: make([]currencySummary, 0, len(sums))}
	for _, s := range sums {
		out.Summary = append(out.Summary, currencySummary{
			Currency:    s.Currency,
			TotalOwedTo: s.TotalOwedTo,
			TotalOwedBy: s.TotalOwedBy,
			Balance:     s.Balance,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
