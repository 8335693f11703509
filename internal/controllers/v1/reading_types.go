package v1

import (
	"fmt"
	"time"

	"github.com/Ubiwhere/fast-pagination/internal/models"
	"github.com/Ubiwhere/fast-pagination/internal/pagination"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReadingEditable struct {
	Sensor     string          `json:"sensor" example:"air-quality-042"`          // Identifier of the reporting sensor
	Value      decimal.Decimal `json:"value" example:"17.25"`                     // The measured value
	RecordedAt time.Time       `json:"recordedAt" example:"2024-06-01T10:15:00Z"` // Time the value was measured
	Unit       string          `json:"unit" example:"ug/m3" default:""`           // Unit of the measured value
}

// model returns the database resource for the API representation of the
// editable fields
func (editable ReadingEditable) model() models.Reading {
	return models.Reading{
		Sensor:     editable.Sensor,
		Value:      editable.Value,
		RecordedAt: editable.RecordedAt,
		Unit:       editable.Unit,
	}
}

type ReadingLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/readings/d430d7c3-d14c-4712-9336-ee56965a6673"` // The reading itself
}

// Reading is the representation of a Reading in API v1.
type Reading struct {
	models.DefaultModel
	ReadingEditable
	Links ReadingLinks `json:"links"`
}

// newReading returns the API v1 representation of the resource
func newReading(c *gin.Context, model models.Reading) Reading {
	url := c.GetString(string(models.ContextURL))

	return Reading{
		DefaultModel: model.DefaultModel,
		ReadingEditable: ReadingEditable{
			Sensor:     model.Sensor,
			Value:      model.Value,
			RecordedAt: model.RecordedAt,
			Unit:       model.Unit,
		},
		Links: ReadingLinks{
			Self: fmt.Sprintf("%s/v1/readings/%s", url, model.ID),
		},
	}
}

// ReadingListResponse is the paginated envelope around a list of readings.
type ReadingListResponse = pagination.Paginated[Reading]

type ReadingResponse struct {
	Data Reading `json:"data"` // The Reading
}

type ReadingQueryFilter struct {
	Sensor string `form:"sensor" filterField:"false"` // Filter by sensor identifier prefix
	Unit   string `form:"unit"`                       // Filter by unit
}

func (f ReadingQueryFilter) model() models.Reading {
	return models.Reading{
		Unit: f.Unit,
	}
}
