package handler

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/deskboard/internal/config"
	"github.com/templui/deskboard/internal/db"
	"github.com/templui/deskboard/internal/respond"
)

// SystemHandler serves health and configuration diagnostics.
type SystemHandler struct {
	cfg            *config.Config
	db             *sqlx.DB
	storageBackend string
}

func NewSystemHandler(cfg *config.Config, db *sqlx.DB, storageBackend string) *SystemHandler {
	return &SystemHandler{
		cfg:            cfg,
		db:             db,
		storageBackend: storageBackend,
	}
}

type configReport struct {
	HasDatabase      bool      `json:"hasDatabase"`
	HasRemoteStorage bool      `json:"hasRemoteStorage"`
	HasSessionSecret bool      `json:"hasSessionSecret"`
	HasWeatherAPIKey bool      `json:"hasWeatherApiKey"`
	HasRedis         bool      `json:"hasRedis"`
	Environment      string    `json:"environment"`
	StorageBackend   string    `json:"storageBackend"`
	DatabaseDriver   string    `json:"databaseDriver"`
	DatabaseStatus   string    `json:"databaseStatus"`
	Timestamp        time.Time `json:"timestamp"`
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Config reports which integrations are configured without revealing any value.
func (h *SystemHandler) Config(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, configReport{
		HasDatabase:      h.cfg.DBConnection != "",
		HasRemoteStorage: h.cfg.HasRemoteStorage(),
		HasSessionSecret: h.cfg.HasSessionSecret(),
		HasWeatherAPIKey: h.cfg.WeatherAPIKey != "",
		HasRedis:         h.cfg.RedisURL != "",
		Environment:      h.cfg.AppEnv,
		StorageBackend:   h.storageBackend,
		DatabaseDriver:   h.cfg.DBDriver,
		DatabaseStatus:   db.Status(r.Context(), h.db),
		Timestamp:        time.Now().UTC(),
	})
}
