package httpapi

import "net/http"

// Me handles GET /api/users/me.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newUserResponse(UserFromContext(r.Context())))
}
