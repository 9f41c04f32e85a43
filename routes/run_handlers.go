// routes/run_handlers.go
package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 200
)

type handlers struct {
	store  ReportStore
	logger *zap.Logger
}

// RunsResponse структура ответа API для списка запусков
type RunsResponse struct {
	Runs []models.ETLRunLog `json:"runs"`
}

func (h *handlers) listRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultRunsLimit, 1, maxRunsLimit)
	if err != nil {
		http.Error(w, "Неверный формат параметра limit", http.StatusBadRequest)
		return
	}

	runs, err := h.store.ListRuns(limit)
	if err != nil {
		h.internalError(w, "Ошибка получения списка запусков", err)
		return
	}
	if runs == nil {
		runs = []models.ETLRunLog{}
	}

	h.writeJSON(w, RunsResponse{Runs: runs})
}

func (h *handlers) latestRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.store.LatestRun()
	if err != nil {
		h.internalError(w, "Ошибка получения последнего запуска", err)
		return
	}
	if run == nil {
		http.Error(w, "Успешных запусков нет", http.StatusNotFound)
		return
	}

	h.writeJSON(w, run)
}

func (h *handlers) runStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.RunStats()
	if err != nil {
		h.internalError(w, "Ошибка получения статистики запусков", err)
		return
	}

	h.writeJSON(w, stats)
}

func (h *handlers) getRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.requireRun(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, run)
}

// requireRun находит запуск из пути запроса; при ошибке ответ уже записан
func (h *handlers) requireRun(w http.ResponseWriter, r *http.Request) (*models.ETLRunLog, bool) {
	runID := mux.Vars(r)["runId"]

	run, err := h.store.GetRun(runID)
	if err != nil {
		h.internalError(w, "Ошибка получения запуска", err)
		return nil, false
	}
	if run == nil {
		http.Error(w, "Запуск не найден", http.StatusNotFound)
		return nil, false
	}

	return run, true
}

func (h *handlers) internalError(w http.ResponseWriter, message string, err error) {
	h.logger.Error(message, zap.Error(err))
	http.Error(w, message, http.StatusInternalServerError)
}

// writeJSON кодирует ответ целиком до записи заголовков,
// чтобы ошибка кодирования стала ответом 500
func (h *handlers) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.internalError(w, "Ошибка кодирования ответа", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(append(data, '\n')); err != nil {
		h.logger.Warn("Ошибка записи ответа", zap.Error(err))
	}
}

// queryInt читает целый параметр не меньше min с ограничением сверху
func queryInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return 0, strconv.ErrSyntax
	}
	if max > 0 && v > max {
		v = max
	}
	return v, nil
}
