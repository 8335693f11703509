package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/go-sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// HTTPError is the response body for all error responses.
type HTTPError struct {
	Error string `json:"error" example:"there is no reading matching your query"`
}

// New writes an error response with the formatted message as body.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	msg := ""
	if len(msgAndArgs) == 1 {
		if msgAsStr, ok := msgAndArgs[0].(string); ok {
			msg = msgAsStr
		}
		msg = fmt.Sprintf("%+v", msg)
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.JSON(status, HTTPError{
		Error: msg,
	})
}

func InvalidUUID(c *gin.Context) {
	New(c, http.StatusBadRequest, "the specified resource ID is not a valid UUID")
}

func InvalidQueryString(c *gin.Context) {
	New(c, http.StatusBadRequest, "the query string contains unparseable data. Please check the values")
}

// Handler maps errors from the database and from request parsing to error
// responses.
func Handler(c *gin.Context, err error) {
	switch {
	// No record found => 404
	case errors.Is(err, gorm.ErrRecordNotFound):
		New(c, http.StatusNotFound, "there is no resource for the ID you specified")

	// Database error => 500, log the details
	case reflect.TypeOf(err) == reflect.TypeOf(&sqlite.Error{}):
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		New(c, http.StatusInternalServerError, "a database error occurred during your request")

	// End of file reached while reading the body
	case errors.Is(io.EOF, err):
		New(c, http.StatusBadRequest, "the request body must not be empty")

	// Number parsing error => 400
	case reflect.TypeOf(err) == reflect.TypeOf(&strconv.NumError{}):
		New(c, http.StatusBadRequest, err.Error())

	// All other errors
	default:
		New(c, http.StatusInternalServerError, "an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c))
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}
}
