// Package validation turns submitted catalog forms into validated input.
// Every string is trimmed, every rule of every field is evaluated so all
// violations are reported at once, and the values are HTML-escaped whether
// or not they passed.  Handlers only ever persist the Input structs returned
// by the Check functions.
package validation

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// V returns the shared validator with the catalog rules registered.
func V() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(formName)
		_ = validate.RegisterValidation("nonnegint", nonNegativeInt)
	})
	return validate
}

// formName reports fields by their form key so errors line up with inputs.
func formName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// nonNegativeInt accepts base-10 integers between 0 and MaxInt32.
func nonNegativeInt(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Field().String())
	return err == nil && n >= 0 && n <= math.MaxInt32
}

// FieldError is one violated rule on one form field.
type FieldError struct {
	Field string
	Msg   string
}

// Errors lists every violation of a submission in field order.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Msg)
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field has at least one violation.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Add appends a violation found outside the struct rules, such as a
// reference that does not resolve.
func (e Errors) Add(field, msg string) Errors {
	return append(e, FieldError{Field: field, Msg: msg})
}

// messages maps "StructField.tag" to the text shown next to the input.
var messages = map[string]string{
	"Name.required":     "Design name required",
	"Name.max":          "Design name must be at most 100 characters",
	"Descr.required":    "Description required",
	"Descr.max":         "Description must be at most 500 characters",
	"PartNum.required":  "Part Number must not be empty.",
	"PartNum.max":       "Part Number must be at most 24 characters.",
	"Design.required":   "Design must not be empty.",
	"Design.uuid":       "Design must be selected from the list.",
	"Drill.required":    "Drill must not be empty.",
	"Drill.uuid":        "Drill must be selected from the list.",
	"Amount.required":   "Amount must not be empty.",
	"Amount.nonnegint":  "Amount must be a whole number of 0 or more.",
	"Location.required": "Location must not be empty.",
	"Location.oneof":    "Location must be Tech Center or Warehouse.",
}

// check runs the struct rules and converts the result to Errors.
func check(form any) Errors {
	err := V().Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "", Msg: err.Error()}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out = append(out, FieldError{Field: fe.Field(), Msg: msg})
	}
	return out
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces HTML-significant characters with entities.
func Escape(s string) string { return escaper.Replace(s) }
