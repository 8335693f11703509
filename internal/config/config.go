package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix for all environment variables of the
// FAST_PAGINATION settings block.
const EnvPrefix = "FAST_PAGINATION_"

// Names of the recognized options within the settings block. Variables with
// any other name are ignored.
const (
	OptionBaseResponseURL    = "BASE_RESPONSE_URL"
	OptionPageSize           = "PAGE_SIZE"
	OptionPageSizeQueryParam = "PAGE_SIZE_QUERY_PARAM"
	OptionMaxPageSize        = "MAX_PAGE_SIZE"
)

// Defaults for all options. Options that are not set fall back to these.
const (
	DefaultBaseResponseURL    = "https://ubiwhere.com/api/resource/?"
	DefaultPageSize           = 100
	DefaultPageSizeQueryParam = "page_size"
	DefaultMaxPageSize        = 9000
)

// Settings holds the pagination configuration. It is loaded exactly once at
// startup and passed to the components that need it, it must not be modified
// afterwards.
type Settings struct {
	// BaseResponseURL is the URL used when rendering example responses,
	// e.g. in the OpenAPI schema. It always ends with "?" after Load.
	BaseResponseURL string

	// PageSize is the number of items per page by default. A value of 0
	// disables pagination.
	PageSize int

	// PageSizeQueryParam is the name of the query parameter that controls
	// the number of items in an API response.
	PageSizeQueryParam string

	// MaxPageSize is the maximum number of items that can be requested
	// in a single page.
	MaxPageSize int

	// ExampleURL is derived from BaseResponseURL and PageSizeQueryParam
	// when the settings are loaded. It is never recomputed.
	ExampleURL string
}

// MissingSettingError is returned by Load when settings are set, but empty.
type MissingSettingError struct {
	Settings []string
}

func (e MissingSettingError) Error() string {
	return fmt.Sprintf("the following settings are missing: '%s'. Please set them as '%s*' environment variables", strings.Join(e.Settings, " / "), EnvPrefix)
}

// Load reads the settings block from the environment.
//
// Options that are not set fall back to their defaults. Options that are set
// to an empty string are collected and reported with a single
// MissingSettingError so that an operator can fix all of them at once.
func Load() (Settings, error) {
	settings := Settings{
		BaseResponseURL:    DefaultBaseResponseURL,
		PageSize:           DefaultPageSize,
		PageSizeQueryParam: DefaultPageSizeQueryParam,
		MaxPageSize:        DefaultMaxPageSize,
	}

	var missing []string

	if raw, ok := lookup(OptionBaseResponseURL, &missing); ok {
		settings.BaseResponseURL = raw
	}

	if raw, ok := lookup(OptionPageSizeQueryParam, &missing); ok {
		settings.PageSizeQueryParam = raw
	}

	if raw, ok := lookup(OptionPageSize, &missing); ok {
		size, err := parseSize(OptionPageSize, raw)
		if err != nil {
			return Settings{}, err
		}
		settings.PageSize = size
	}

	if raw, ok := lookup(OptionMaxPageSize, &missing); ok {
		size, err := parseSize(OptionMaxPageSize, raw)
		if err != nil {
			return Settings{}, err
		}
		settings.MaxPageSize = size
	}

	if len(missing) > 0 {
		return Settings{}, MissingSettingError{Settings: missing}
	}

	// The example URL is built exactly once, here. BaseResponseURL is
	// normalized so that appending a query parameter name is always valid.
	if !strings.HasSuffix(settings.BaseResponseURL, "?") {
		settings.BaseResponseURL += "?"
	}
	settings.ExampleURL = settings.BaseResponseURL + settings.PageSizeQueryParam

	return settings, nil
}

// lookup reads a single option from the environment. Options that are set to
// an empty string are recorded in missing.
func lookup(option string, missing *[]string) (string, bool) {
	raw, ok := os.LookupEnv(EnvPrefix + option)
	if !ok {
		return "", false
	}

	if raw == "" {
		*missing = append(*missing, option)
		return "", false
	}

	return raw, true
}

func parseSize(option, raw string) (int, error) {
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", EnvPrefix, option, err)
	}

	if size < 0 {
		return 0, fmt.Errorf("%s%s must not be negative, is %d", EnvPrefix, option, size)
	}

	return size, nil
}
