package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Ubiwhere/fast-pagination/internal/httperrors"
	"github.com/Ubiwhere/fast-pagination/internal/httputil"
	"github.com/Ubiwhere/fast-pagination/internal/models"
	"github.com/Ubiwhere/fast-pagination/internal/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Controller holds the request independent configuration for the readings
// API. It is constructed once at startup.
type Controller struct {
	PageOptions pagination.Options
}

// RegisterReadingRoutes registers the routes for readings with the
// RouterGroup that is passed.
func (co Controller) RegisterReadingRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsReadings)
		r.GET("", co.GetReadings)
		r.POST("", co.CreateReading)
	}

	// Reading with ID
	{
		r.OPTIONS("/:id", co.OptionsReadingDetail)
		r.GET("/:id", co.GetReading)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Readings
// @Success		204
// @Router			/v1/readings [options]
func (co Controller) OptionsReadings(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Readings
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/readings/{id} [options]
func (co Controller) OptionsReadingDetail(c *gin.Context) {
	_, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperrors.InvalidUUID(c)
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get readings
// @Description	Returns a paginated list of readings. The total count is not computed unless show_count=true is passed.
// @Tags			Readings
// @Produce		json
// @Success		200	{object}	ReadingListResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/v1/readings [get]
// @Param			page		query	int		false	"Page to return. Defaults to 1."
// @Param			page_size	query	int		false	"Number of readings per page, capped at the configured maximum."
// @Param			show_count	query	string	false	"Set to 'true' to compute the exact total count. Expensive on large tables."
// @Param			sensor		query	string	false	"Filter by sensor identifier prefix"
// @Param			unit		query	string	false	"Filter by unit"
func (co Controller) GetReadings(c *gin.Context) {
	var filter ReadingQueryFilter
	if err := c.Bind(&filter); err != nil {
		httperrors.InvalidQueryString(c)
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.Order("datetime(readings.recorded_at) DESC").Where(&model, queryFields...)

	if filter.Sensor != "" {
		q = q.Where("readings.sensor LIKE ?", fmt.Sprintf("%s%%", filter.Sensor))
	} else if slices.Contains(setFields, "Sensor") {
		q = q.Where("readings.sensor = ''")
	}

	page, err := pagination.Paginate[models.Reading](c, co.PageOptions, q)
	if err != nil {
		httperrors.New(c, status(err), err.Error())
		return
	}

	// Pagination can be disabled by configuration. All matching readings
	// are returned as a plain list then.
	if page == nil {
		var readings []models.Reading
		err = q.Find(&readings).Error
		if err != nil {
			httperrors.Handler(c, err)
			return
		}

		data := make([]Reading, 0, len(readings))
		for _, reading := range readings {
			data = append(data, newReading(c, reading))
		}

		c.JSON(http.StatusOK, data)
		return
	}

	data := make([]Reading, 0, len(page.Items))
	for _, reading := range page.Items {
		data = append(data, newReading(c, reading))
	}

	envelope, err := pagination.Envelope(c, page, data)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// @Summary		Get reading
// @Description	Returns a specific reading
// @Tags			Readings
// @Produce		json
// @Success		200	{object}	ReadingResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/readings/{id} [get]
func (co Controller) GetReading(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperrors.InvalidUUID(c)
		return
	}

	var reading models.Reading
	err = models.DB.First(&reading, "id = ?", id).Error
	if err != nil {
		httperrors.New(c, status(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, ReadingResponse{Data: newReading(c, reading)})
}

// @Summary		Create reading
// @Description	Creates a new reading
// @Tags			Readings
// @Produce		json
// @Success		201		{object}	ReadingResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			reading	body		ReadingEditable	true	"Reading"
// @Router			/v1/readings [post]
func (co Controller) CreateReading(c *gin.Context) {
	var editable ReadingEditable

	if err := c.ShouldBindJSON(&editable); err != nil {
		if errors.Is(io.EOF, err) {
			httperrors.New(c, http.StatusBadRequest, "the request body must not be empty")
			return
		}

		httperrors.New(c, http.StatusBadRequest, "the body of your request contains invalid or un-parseable data. Please check and try again")
		return
	}

	reading := editable.model()
	err := models.DB.Create(&reading).Error
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, ReadingResponse{Data: newReading(c, reading)})
}
