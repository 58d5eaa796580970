package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/debtmanager/internal/logging"
	"github.com/dmitrijs2005/debtmanager/internal/server/services"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// API holds the HTTP handlers of the debt manager.
type API struct {
	auth     *services.AuthService
	debts    *services.DebtService
	settings *services.SettingsService
	validate *validator.Validate
	log      logging.Logger
}

func NewAPI(a *services.AuthService, d *services.DebtService, s *services.SettingsService, log logging.Logger) *API {
	return &API{
		auth:     a,
		debts:    d,
		settings: s,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// decode reads a JSON body into dst and validates it. On failure the error
// response is already written and false is returned.
func (a *API) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, detailInvalidBody)
		return false
	}
	if err := a.validate.Struct(dst); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

func (a *API) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	a.log.Error(r.Context(), msg, "error", err)
	writeErr(w, http.StatusInternalServerError, detailInternal)
}
