package core

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom texts; {0} is the field label, {1} the tag param
	requiredTag  = "required"
	requiredText = "{0} is required"
	emailTag     = "email"
	emailText    = "{0} is invalid"
	minTag       = "min"
	minText      = "{0} must be at least {1} characters"

	labelsMu    sync.RWMutex
	fieldLabels = make(map[string]string)
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	RegisterCustomTranslation(requiredTag, requiredText, true)
	RegisterCustomTranslation(emailTag, emailText, true)
	RegisterCustomTranslation(minTag, minText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, FieldLabel(fe.Field()), fe.Param())
			return s
		},
	)
}

// RegisterFieldLabels sets the display labels used in validation messages, keyed by JSON field name.
func RegisterFieldLabels(labels map[string]string) {
	labelsMu.Lock()
	defer labelsMu.Unlock()
	for fld, label := range labels {
		fieldLabels[fld] = label
	}
}

// FieldLabel returns the display label of a JSON field name: "first_name" -> "First name".
func FieldLabel(field string) string {
	labelsMu.RLock()
	label, ok := fieldLabels[field]
	labelsMu.RUnlock()
	if ok {
		return label
	}
	label = strings.TrimSpace(strings.ReplaceAll(field, "_", " "))
	if label == "" {
		return field
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
