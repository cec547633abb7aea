package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const SignupCodeLength = 6

// IsPhone10 reports whether s is exactly ten ASCII digits.
func IsPhone10(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsSignupCode accepts six characters from [A-Z0-9], ignoring case.
func IsSignupCode(s string) bool {
	if len(s) != SignupCodeLength {
		return false
	}
	for _, c := range strings.ToUpper(s) {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

var registerOnce sync.Once

// Register adds the phone10 and signupcode tags to gin's validator and
// reports field names by their json tag.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
			return IsPhone10(fl.Field().String())
		})
		_ = v.RegisterValidation("signupcode", func(fl validator.FieldLevel) bool {
			return IsSignupCode(fl.Field().String())
		})

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
}

var messages = map[string]string{
	"required":   "is required",
	"email":      "must be a valid email",
	"min":        "is too short",
	"max":        "is too long",
	"gt":         "must be greater than %s",
	"gte":        "must be at least %s",
	"lte":        "must be at most %s",
	"oneof":      "must be one of: %s",
	"phone10":    "must be exactly 10 digits",
	"signupcode": "must be 6 letters or digits",
}

// Describe turns a binding error into a short client facing sentence.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body."
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, fe.Param())
		}
		parts = append(parts, fe.Field()+" "+msg)
	}

	return strings.Join(parts, "; ") + "."
}
