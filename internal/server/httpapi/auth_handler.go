package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/server/auth"
	"github.com/dmitrijs2005/debtmanager/internal/server/services"
)

func newTokenResponse(p *auth.TokenPair) tokenResponse {
	return tokenResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, TokenType: "bearer"}
}

// Login handles POST /api/auth/login.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if !a.decode(w, r, &body) {
		return
	}

	pair, err := a.auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		recordAuthAttempt("login", false)
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeUnauthorized(w, detailBadCredentials)
			return
		}
		a.internalError(w, r, "login failed", err)
		return
	}

	recordAuthAttempt("login", true)
	a.log.Info(r.Context(), "user logged in", "username", body.Username)
	writeJSON(w, http.StatusOK, newTokenResponse(pair))
}

// Refresh handles POST /api/auth/refresh.
func (a *API) Refresh(w http.ResponseWriter, r *http.Request) {
	var body refreshRequest
	if !a.decode(w, r, &body) {
		return
	}

	pair, err := a.auth.Refresh(r.Context(), body.RefreshToken)
	if err != nil {
		recordAuthAttempt("refresh", false)
		switch {
		case errors.Is(err, common.ErrTokenExpired):
			writeUnauthorized(w, detailExpiredToken)
		case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrUserNotFound):
			writeUnauthorized(w, detailInvalidToken)
		default:
			a.internalError(w, r, "refresh failed", err)
		}
		return
	}

	recordAuthAttempt("refresh", true)
	writeJSON(w, http.StatusOK, newTokenResponse(pair))
}

// Register handles POST /api/auth/register.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if !a.decode(w, r, &body) {
		return
	}

	user, err := a.auth.Register(r.Context(), services.RegisterInput{
		UserName:  body.Username,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
	})
	if err != nil {
		recordAuthAttempt("register", false)
		switch {
		case errors.Is(err, common.ErrUsernameTaken):
			writeErr(w, http.StatusBadRequest, detailUsernameTaken)
		case errors.Is(err, common.ErrEmailTaken):
			writeErr(w, http.StatusBadRequest, detailEmailTaken)
		case errors.Is(err, common.ErrorValidation):
			writeErr(w, http.StatusUnprocessableEntity, err.Error())
		default:
			a.internalError(w, r, "register failed", err)
		}
		return
	}

	recordAuthAttempt("register", true)
	a.log.Info(r.Context(), "user registered", "username", user.UserName)
	writeJSON(w, http.StatusCreated, newUserResponse(user))
}
