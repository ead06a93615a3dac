package validation

import (
	"fmt"
)

var customValidationMessages = map[string]map[string]string{
	"email": {
		"required": "email is required",
		"email":    "email must be a valid email address",
	},
	"password": {
		"required": "password is required",
		"min":      "password must be at least 8 characters",
	},
	"newPassword": {
		"required": "newPassword is required",
		"min":      "newPassword must be at least 8 characters",
	},
	"slug": {
		"slug": "slug may only contain lowercase letters, digits and single hyphens",
	},
	"categoryId": {
		"required": "categoryId is required",
		"gt":       "categoryId must reference an existing category",
	},
	"plantId": {
		"required": "plantId is required",
		"gt":       "plantId must reference an existing plant",
	},
}

// CustomMessage returns the field-specific messages keyed by tag, or nil.
func CustomMessage(field string) map[string]string {
	return customValidationMessages[field]
}

func DefaultMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must have length %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, param)
	case "slug":
		return fmt.Sprintf("%s must be a lowercase slug", field)
	case "boolean":
		return fmt.Sprintf("%s must be true or false", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
