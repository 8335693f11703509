package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Ubiwhere/fast-pagination/internal/config"
	v1 "github.com/Ubiwhere/fast-pagination/internal/controllers/v1"
	"github.com/Ubiwhere/fast-pagination/internal/httperrors"
	"github.com/Ubiwhere/fast-pagination/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestReading creates a reading via the API and returns its
// representation.
func (suite *TestSuiteStandard) createTestReading(editable v1.ReadingEditable) v1.ReadingResponse {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/readings", editable)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ReadingResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestOptionsReadings() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/readings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsReadingDetail() {
	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/readings/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsReadingDetailInvalidUUID() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/readings/NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetReadings() {
	suite.createTestReadings(95, "air-quality-042")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings?page=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReadingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), int64(2), response.CurrentPage)
	assert.Len(suite.T(), response.Results, 10)
	assert.Nil(suite.T(), response.Count)

	require.NotNil(suite.T(), response.Next)
	assert.Equal(suite.T(), "http://example.com/v1/readings?page=3", *response.Next)

	require.NotNil(suite.T(), response.Previous)
	assert.Equal(suite.T(), "http://example.com/v1/readings?page=1", *response.Previous)
}

func (suite *TestSuiteStandard) TestGetReadingsNoCountKey() {
	suite.createTestReadings(15, "air-quality-042")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// The count key must be absent entirely, not null
	var raw map[string]any
	test.DecodeResponse(suite.T(), &r, &raw)

	assert.NotContains(suite.T(), raw, "count")
	assert.Contains(suite.T(), raw, "next")
	assert.Contains(suite.T(), raw, "previous")
	assert.Contains(suite.T(), raw, "results")
}

func (suite *TestSuiteStandard) TestGetReadingsShowCount() {
	suite.createTestReadings(95, "air-quality-042")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings?page=2&show_count=true", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReadingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Count)
	assert.Equal(suite.T(), int64(95), *response.Count)
}

func (suite *TestSuiteStandard) TestGetReadingsShowCountValues() {
	suite.createTestReadings(5, "air-quality-042")

	tests := []struct {
		value     string
		showCount bool
	}{
		{"TRUE", true},
		{"True", true},
		{"false", false},
		{"1", false},
		{"yes", false},
	}

	for _, tt := range tests {
		suite.T().Run(fmt.Sprintf("value=%s", tt.value), func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/readings?show_count="+tt.value, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var raw map[string]any
			test.DecodeResponse(t, &r, &raw)

			if tt.showCount {
				assert.Contains(t, raw, "count")
			} else {
				assert.NotContains(t, raw, "count")
			}
		})
	}
}

func (suite *TestSuiteStandard) TestGetReadingsPageBeyondData() {
	suite.createTestReadings(15, "air-quality-042")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings?page=9999", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response httperrors.HTTPError
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "invalid page (9999): that page contains no results", response.Error)
}

func (suite *TestSuiteStandard) TestGetReadingsInvalidPage() {
	suite.createTestReadings(15, "air-quality-042")

	tests := []struct {
		page    string
		message string
	}{
		{"0", "invalid page (0): that page number is less than 1"},
		{"-1", "invalid page (-1): that page number is less than 1"},
		{"banana", "invalid page (banana): that page number is not an integer"},
	}

	for _, tt := range tests {
		suite.T().Run(fmt.Sprintf("page=%s", tt.page), func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/readings?page="+tt.page, "")
			test.AssertHTTPStatus(t, &r, http.StatusNotFound)

			var response httperrors.HTTPError
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.message, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestGetReadingsEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReadingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), int64(1), response.CurrentPage)
	assert.NotNil(suite.T(), response.Results)
	assert.Len(suite.T(), response.Results, 0)
	assert.Nil(suite.T(), response.Next)
	assert.Nil(suite.T(), response.Previous)
}

func (suite *TestSuiteStandard) TestGetReadingsLastPage() {
	suite.createTestReadings(15, "air-quality-042")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings?page=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReadingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Results, 5)
	assert.Nil(suite.T(), response.Next)
	require.NotNil(suite.T(), response.Previous)
}

func (suite *TestSuiteStandard) TestGetReadingsPageSize() {
	suite.createTestReadings(60, "air-quality-042")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings?page_size=20", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReadingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Results, 20)
}

func (suite *TestSuiteStandard) TestGetReadingsPageSizeCapped() {
	suite.createTestReadings(60, "air-quality-042")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings?page_size=500", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReadingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// Capped at the configured maximum of 50
	assert.Len(suite.T(), response.Results, 50)
}

func (suite *TestSuiteStandard) TestGetReadingsPaginationDisabled() {
	suite.T().Setenv(config.EnvPrefix+config.OptionPageSize, "0")
	suite.createTestReadings(15, "air-quality-042")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response []v1.Reading
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response, 15)
}

func (suite *TestSuiteStandard) TestGetReadingsFilterSensor() {
	suite.createTestReadings(3, "air-quality-042")
	suite.createTestReadings(2, "noise-007")
	suite.createTestReadings(1, "")

	tests := []struct {
		query string
		count int
	}{
		{"sensor=air", 3},
		{"sensor=air-quality-042", 3},
		{"sensor=noise", 2},
		{"sensor=", 1},
		{"sensor=water", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/readings?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ReadingListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Results, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestGetReadingsFilterUnit() {
	suite.createTestReadings(3, "air-quality-042")
	suite.createTestReading(v1.ReadingEditable{
		Sensor:     "temperature-001",
		Value:      decimal.NewFromFloat(21.5),
		RecordedAt: time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC),
		Unit:       "celsius",
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings?unit=celsius", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReadingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Results, 1)
	assert.Equal(suite.T(), "temperature-001", response.Results[0].Sensor)
}

func (suite *TestSuiteStandard) TestGetReadingsOrder() {
	suite.createTestReadings(15, "air-quality-042")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReadingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// Newest readings first
	require.Len(suite.T(), response.Results, 10)
	assert.True(suite.T(), response.Results[0].RecordedAt.After(response.Results[9].RecordedAt))
}

func (suite *TestSuiteStandard) TestGetReadingsDBError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings?show_count=true", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestGetReading() {
	reading := suite.createTestReading(v1.ReadingEditable{
		Sensor:     "air-quality-042",
		Value:      decimal.NewFromFloat(17.25),
		RecordedAt: time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC),
		Unit:       "ug/m3",
	})

	r := test.Request(suite.T(), http.MethodGet, reading.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReadingResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), reading.Data.ID, response.Data.ID)
	assert.Equal(suite.T(), "air-quality-042", response.Data.Sensor)
	assert.True(suite.T(), response.Data.Value.Equal(decimal.NewFromFloat(17.25)))
}

func (suite *TestSuiteStandard) TestGetReadingInvalidUUID() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/readings/NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response httperrors.HTTPError
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "the specified resource ID is not a valid UUID", response.Error)
}

func (suite *TestSuiteStandard) TestGetReadingNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/readings/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response httperrors.HTTPError
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "there is no reading matching your query", response.Error)
}

func (suite *TestSuiteStandard) TestCreateReading() {
	reading := suite.createTestReading(v1.ReadingEditable{
		Sensor:     "air-quality-042",
		Value:      decimal.NewFromFloat(17.25),
		RecordedAt: time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC),
		Unit:       "ug/m3",
	})

	assert.NotEmpty(suite.T(), reading.Data.ID)
	assert.True(suite.T(), strings.HasPrefix(reading.Data.Links.Self, "http://example.com/v1/readings/"))
}

func (suite *TestSuiteStandard) TestCreateReadingEmptyBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/readings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response httperrors.HTTPError
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "the request body must not be empty", response.Error)
}

func (suite *TestSuiteStandard) TestCreateReadingInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/readings", `{ "sensor": 2`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response httperrors.HTTPError
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "the body of your request contains invalid or un-parseable data. Please check and try again", response.Error)
}
