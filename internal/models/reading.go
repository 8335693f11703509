package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reading is a single sensor reading. Reading tables routinely grow into
// millions of rows, which is why their list endpoint avoids counting them.
type Reading struct {
	DefaultModel
	Sensor     string          `json:"sensor" gorm:"index" example:"air-quality-042"`          // Identifier of the reporting sensor
	Value      decimal.Decimal `json:"value" gorm:"type:DECIMAL(20,8)" example:"17.25"`        // The measured value
	RecordedAt time.Time       `json:"recordedAt" gorm:"index" example:"2024-06-01T10:15:00Z"` // Time the value was measured
	Unit       string          `json:"unit" example:"ug/m3" default:""`                        // Unit of the measured value
}
