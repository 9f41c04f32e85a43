// websocket/types.go
package websocket

import (
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/models"
)

// Event - сообщение, рассылаемое клиентам
type Event struct {
	Type          string                   `json:"type"`
	Run           *models.ETLRunLog        `json:"run,omitempty"`
	Sectors       []models.CategorySummary `json:"sectors,omitempty"`
	Organizations []models.CategorySummary `json:"organizations,omitempty"`
	SentAt        time.Time                `json:"sent_at"`
}
