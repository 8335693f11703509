package httputil

import (
	"net/url"
	"reflect"
)

// GetURLFields inspects which query parameters of a filter struct are set in
// the request URL.
//
// queryFields contains the names of all set fields that can be used directly
// as arguments to a gorm Where statement. As gorm uses interface{} for the
// Where statement, this cannot be a []string.
//
// setFields contains the names of all set fields. This is useful to filter
// for zero values without declaring pointer fields on the filter.
//
// Fields tagged with filterField:"false" are excluded from queryFields, they
// are handled by explicit logic in the controllers.
func GetURLFields(url *url.URL, filter any) ([]any, []string) {
	var queryFields []any
	var setFields []string

	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := val.Type().Field(i).Tag.Get("form")
		filterField := val.Type().Field(i).Tag.Get("filterField")

		if url.Query().Has(param) {
			setFields = append(setFields, field)

			if filterField != "false" {
				queryFields = append(queryFields, field)
			}
		}
	}

	return queryFields, setFields
}
