package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"

	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validator validates request structs and renders failures in Brazilian Portuguese.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a validator with the pt-BR default messages and the custom rules
// notblank (non-empty after trimming) and clock (empty or HH:MM).
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := ptBRTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	custom := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{tag: "notblank", fn: notBlank, message: "{0} não pode ficar em branco"},
		{tag: "clock", fn: clock, message: "{0} deve estar no formato HH:MM"},
	}
	for _, rule := range custom {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, err
		}
		if err := registerMessage(validate, trans, rule.tag, rule.message); err != nil {
			return nil, err
		}
	}

	return &Validator{validate: validate, translator: trans}, nil
}

// MustNew panics when the translations cannot be registered.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Struct validates s and returns a VALIDATION_ERROR carrying the translated messages.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Translate(v.translator))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, strings.Join(messages, "; "))
}

// IsClock reports whether value is a 24-hour HH:MM time.
func IsClock(value string) bool {
	return clockPattern.MatchString(value)
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

func clock(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || IsClock(value)
}

func registerMessage(validate *validator.Validate, trans ut.Translator, tag, message string) error {
	return validate.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, message, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}
