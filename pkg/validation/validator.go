package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the `trimmed` tag (no leading or trailing whitespace).
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register applies the project rules to v. Init calls it on Gin's engine.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("trimmed", trimmed)
	v.RegisterAlias("pwd", "min=8,max=72") // bcrypt ignores bytes past 72
}

func trimmed(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return true
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.String {
		return false
	}
	s := f.String()
	return s == strings.TrimSpace(s)
}

// Violation is a single client-facing validation failure.
type Violation struct {
	Field   string
	Message string
}

// tag priority: presence, then type, then whitespace, then size.
var rank = map[string]int{
	"required": 0,
	"trimmed":  2,
	"min":      3,
	"max":      3,
}

// First picks the violation a client should see first. Errors are ranked by
// rule kind and, within a kind, by struct field order.
func First(err error) (Violation, bool) {
	if err == nil {
		return Violation{}, false
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return Violation{Field: ute.Field, Message: "Incorrect field type: expected " + ute.Type.String()}, true
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return Violation{Field: "body", Message: "Malformed JSON"}, true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Violation{Field: "body", Message: "Invalid request body"}, true
	}
	best := verrs[0]
	for _, fe := range verrs[1:] {
		if rankOf(fe.ActualTag()) < rankOf(best.ActualTag()) {
			best = fe
		}
	}
	return Violation{Field: best.Field(), Message: formatFieldError(best)}, true
}

func rankOf(tag string) int {
	if r, ok := rank[tag]; ok {
		return r
	}
	return len(rank)
}

// formatFieldError switches on the resolved tag so aliases like pwd report
// the underlying min or max.
func formatFieldError(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "Missing " + fe.Field()
	case "trimmed":
		return "Cannot start or end with whitespace"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long", fe.Param())
	default:
		return "Invalid value"
	}
}
