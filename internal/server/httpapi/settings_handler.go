package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/debtmanager/internal/server/services"
)

// GetSettings handles GET /api/settings/.
func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	st, err := a.settings.Get(r.Context(), user.ID)
	if err != nil {
		a.internalError(w, r, "load settings failed", err)
		return
	}
	writeJSON(w, http.StatusOK, newSettingsResponse(st))
}

// UpdateSettings handles PUT /api/settings/.
func (a *API) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body settingsRequest
	if !a.decode(w, r, &body) {
		return
	}
	user := UserFromContext(r.Context())

	st, err := a.settings.Update(r.Context(), user.ID, services.SettingsPatch{
		DefaultCurrency:      body.DefaultCurrency,
		ReminderTime:         body.ReminderTime,
		ReminderEnabled:      body.ReminderEnabled,
		NotificationsEnabled: body.NotificationsEnabled,
		Theme:                body.Theme,
	})
	if err != nil {
		a.internalError(w, r, "save settings failed", err)
		return
	}
	writeJSON(w, http.StatusOK, newSettingsResponse(st))
}
