package app

import (
	"net/http"

	"github.com/DavideRizzari/movieverse/api"
	"github.com/DavideRizzari/movieverse/internal/vcs"
)

func (app *application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	systemInfo := api.SystemInfo{
		Version:     vcs.Version(),
		Environment: app.config.env,
	}

	resp := api.HealthcheckResponse{
		Status:     status,
		SystemInfo: systemInfo,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
