// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/database"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ReportStore - чтение результатов запусков
type ReportStore interface {
	ListRuns(limit int) ([]models.ETLRunLog, error)
	LatestRun() (*models.ETLRunLog, error)
	GetRun(runID string) (*models.ETLRunLog, error)
	RunStats() (*models.ETLStateMonitor, error)
	GetContracts(runID string, filter database.ContractFilter) ([]database.ContractRow, error)
	GetSummaries(runID, rollup string) ([]models.CategorySummary, error)
	GetSnapshotCSV(runID string) ([]byte, error)
}

// SetupRoutes настраивает все маршруты API и WebSocket
func SetupRoutes(router *mux.Router, store ReportStore, ws http.HandlerFunc, logger *zap.Logger) {
	// Применяем CORS middleware
	router.Use(CORSMiddleware)

	// WebSocket уведомления о новых запусках
	if ws != nil {
		router.HandleFunc("/ws", ws)
	}

	h := &handlers{store: store, logger: logger}

	// API запусков. Фиксированные пути регистрируются раньше {runId}.
	router.HandleFunc("/api/runs", h.listRuns).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/runs/latest", h.latestRun).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/runs/stats", h.runStats).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/runs/{runId}", h.getRun).Methods("GET", "OPTIONS")

	// Данные запуска
	router.HandleFunc("/api/runs/{runId}/contracts", h.getContracts).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/runs/{runId}/summaries/{rollup}", h.getSummaries).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/runs/{runId}/export.csv", h.exportCSV).Methods("GET", "OPTIONS")
}

// CORSMiddleware разрешает запросы с любого origin
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
