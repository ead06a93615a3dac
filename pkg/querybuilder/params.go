package querybuilder

import (
	"net/url"
	"strings"

	"github.com/greenhouse-labs/catalog/internal/constants"
)

// Params is the raw query-string map of one list request.
type Params map[string]string

// ParamsFromValues keeps the first value of each key.
func ParamsFromValues(values url.Values) Params {
	params := make(Params, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}

// Get returns the trimmed value of key.
func (p Params) Get(key string) string {
	return strings.TrimSpace(p[key])
}

func isReserved(key string) bool {
	switch key {
	case constants.QueryParamPage,
		constants.QueryParamLimit,
		constants.QueryParamSort,
		constants.QueryParamSearch,
		constants.QueryParamStartDate,
		constants.QueryParamEndDate:
		return true
	}
	return false
}
