// Package validate wraps struct-tag validation and ID handling so
// handlers share one validator instance and one message style.
package validate

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()
	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validate, translator)
}

// Check validates the struct tags of val. The first violation comes
// back translated to a readable message.
func Check(val any) error {
	err := validate.Struct(val)
	if err == nil {
		return nil
	}

	var verrors validator.ValidationErrors
	if !errors.As(err, &verrors) || len(verrors) == 0 {
		return err
	}

	return errors.New(verrors[0].Translate(translator))
}

// GenerateID produces a fresh resource identifier.
func GenerateID() string {
	return uuid.NewString()
}

// CheckID rejects identifiers that are not well formed.
func CheckID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("ID is not in its proper form")
	}
	return nil
}
