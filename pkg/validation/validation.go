package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const slugPattern = `^[a-z0-9]+(?:-[a-z0-9]+)*$`

var slugRegexp = regexp.MustCompile(slugPattern)

func validateSlug(fl validator.FieldLevel) bool {
	return slugRegexp.MatchString(fl.Field().String())
}

// jsonFieldName reports fields by their JSON name so messages match what the
// client sent.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// Register installs the custom tags and JSON field naming on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	return v.RegisterValidation("slug", validateSlug)
}

// New returns a validator that reads `binding` tags, the same tags gin uses.
func New() (*validator.Validate, error) {
	v := validator.New()
	v.SetTagName("binding")
	if err := Register(v); err != nil {
		return nil, err
	}
	return v, nil
}

var (
	ginOnce sync.Once
	ginErr  error
)

// RegisterGinValidations installs the custom tags on gin's default binding
// validator. Safe to call more than once.
func RegisterGinValidations() error {
	ginOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			ginErr = errors.New("gin binding engine is not a go-playground validator")
			return
		}
		ginErr = Register(v)
	})
	return ginErr
}

// Messages turns validator errors into client-facing messages. Other errors
// (malformed JSON, type mismatches) yield their own text.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if fieldMessages := CustomMessage(e.Field()); fieldMessages != nil {
			if msg, ok := fieldMessages[e.Tag()]; ok {
				messages = append(messages, msg)
				continue
			}
		}
		messages = append(messages, DefaultMessage(e.Field(), e.Tag(), e.Param()))
	}
	return messages
}
