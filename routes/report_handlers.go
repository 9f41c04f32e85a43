// routes/report_handlers.go
package routes

import (
	"fmt"
	"net/http"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/database"
	"github.com/gorilla/mux"
)

const (
	defaultContractsLimit = 100
	maxContractsLimit     = 1000
)

// ContractsResponse структура ответа API для строк таблицы
type ContractsResponse struct {
	RunID     string                 `json:"run_id"`
	Contracts []database.ContractRow `json:"contracts"`
	Limit     int                    `json:"limit"`
	Offset    int                    `json:"offset"`
}

// SummariesResponse структура ответа API для сводки
type SummariesResponse struct {
	RunID     string                   `json:"run_id"`
	Rollup    string                   `json:"rollup"`
	Summaries []models.CategorySummary `json:"summaries"`
}

func (h *handlers) getContracts(w http.ResponseWriter, r *http.Request) {
	run, ok := h.requireRun(w, r)
	if !ok {
		return
	}

	recordType := r.URL.Query().Get("type")
	if recordType != "" && !models.RecordType(recordType).Valid() {
		http.Error(w, "Параметр type должен быть funded или defund", http.StatusBadRequest)
		return
	}

	limit, err := queryInt(r, "limit", defaultContractsLimit, 1, maxContractsLimit)
	if err != nil {
		http.Error(w, "Неверный формат параметра limit", http.StatusBadRequest)
		return
	}
	offset, err := queryInt(r, "offset", 0, 0, 0)
	if err != nil {
		http.Error(w, "Неверный формат параметра offset", http.StatusBadRequest)
		return
	}

	contracts, err := h.store.GetContracts(run.RunID, database.ContractFilter{Type: recordType, Limit: limit, Offset: offset})
	if err != nil {
		h.internalError(w, "Ошибка получения строк таблицы", err)
		return
	}

	h.writeJSON(w, ContractsResponse{RunID: run.RunID, Contracts: contracts, Limit: limit, Offset: offset})
}

func (h *handlers) getSummaries(w http.ResponseWriter, r *http.Request) {
	rollup := mux.Vars(r)["rollup"]
	if rollup != models.RollupSector && rollup != models.RollupOrganization {
		http.Error(w, "Сводка должна быть sector или organization", http.StatusBadRequest)
		return
	}

	run, ok := h.requireRun(w, r)
	if !ok {
		return
	}

	summaries, err := h.store.GetSummaries(run.RunID, rollup)
	if err != nil {
		h.internalError(w, "Ошибка получения сводки", err)
		return
	}

	h.writeJSON(w, SummariesResponse{RunID: run.RunID, Rollup: rollup, Summaries: summaries})
}

func (h *handlers) exportCSV(w http.ResponseWriter, r *http.Request) {
	run, ok := h.requireRun(w, r)
	if !ok {
		return
	}

	data, err := h.store.GetSnapshotCSV(run.RunID)
	if err != nil {
		h.internalError(w, "Ошибка чтения снимка", err)
		return
	}
	if data == nil {
		http.Error(w, "Снимок запуска не найден", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"usaid_contracts_%s.csv\"", run.RunID))
	w.Write(data)
}
