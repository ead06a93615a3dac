package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"github.com/greenhouse-labs/catalog/pkg/validation"
)

const maxBodyBytes = 1 << 20

type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() (*ValidationMiddleware, error) {
	v, err := validation.New()
	if err != nil {
		return nil, err
	}
	return &ValidationMiddleware{validate: v}, nil
}

// ValidateRequestBody decodes the JSON body into a value from factory,
// validates it and stores it under GinKeyRequestBody. factory must return a
// pointer. The body is restored for later readers.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
			if err != nil {
				logger.WarnWithContext(ctx, "Failed to read request body").Err(err).Log()
				c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse("Failed to read request body", nil))
				return
			}
			if len(body) > maxBodyBytes {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, constants.BuildErrorResponse("Request body too large", nil))
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		req := factory()
		if err := json.Unmarshal(body, req); err != nil {
			logger.WarnWithContext(ctx, "Malformed JSON body").
				Int("body_size", len(body)).
				Err(err).
				Log()
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid JSON format", []string{err.Error()}))
			return
		}

		if err := m.validate.Struct(req); err != nil {
			messages := validation.Messages(err)
			logger.WarnWithContext(ctx, "Request validation failed").
				Path(c.Request.URL.Path).
				Any("errors", messages).
				Log()
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse("Validation failed", messages))
			return
		}

		c.Set(constants.GinKeyRequestBody, req)
		c.Next()
	}
}
