package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	requiredTag  = "required"
	requiredText = "this field is required"

	eqFieldTag  = "eqfield"
	eqFieldText = "values do not match"
)

// Validator bundles a validator instance with its English translator.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New returns a validator reporting JSON field names and English messages.
func New() *Validator {
	validate := validator.New()
	english := en.New()
	translator, _ := ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerTranslation(validate, translator, requiredTag, requiredText)
	registerTranslation(validate, translator, eqFieldTag, eqFieldText)

	return &Validator{validate: validate, translator: translator}
}

// Engine exposes the underlying validator for services that only need Struct.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Struct validates s and returns field errors keyed by JSON name, or nil.
func (v *Validator) Struct(s interface{}) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fe.Translate(v.translator)
	}
	return fields
}

func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}
