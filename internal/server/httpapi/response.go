package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/debtmanager/internal/common"
)

// errorBody is the JSON error shape: {"detail": "..."}.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorBody{Detail: detail})
}

// writeUnauthorized answers 401 with the Bearer challenge header.
func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeErr(w, http.StatusUnauthorized, detail)
}

const (
	detailBadCredentials = "Incorrect username or password"
	detailInvalidToken   = "Could not validate credentials"
	detailExpiredToken   = "Token has expired"
	detailNotAuthed      = "Not authenticated"
	detailInternal       = "internal error"
	detailInvalidBody    = "invalid request body"
	detailDebtNotFound   = "Debt not found"
	detailUsernameTaken  = "Username already registered"
	detailEmailTaken     = "Email already registered"
)
