package manifest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/skosovsky/codegen"
)

var (
	validate  *validator.Validate //nolint:gochecknoglobals
	translate ut.Translator       //nolint:gochecknoglobals
)

//nolint:gochecknoinits
func init() {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	translate, _ = uni.GetTranslator("en")
	validate = validator.New(validator.WithRequiredStructEnabled())

	if err := entranslations.RegisterDefaultTranslations(validate, translate); err != nil {
		panic(err)
	}

	for tag, text := range map[string]string{
		"required_without": "{0} is required when {1} is not set",
		"excluded_with":    "{0} must not be set together with {1}",
	} {
		if err := validate.RegisterTranslation(tag, translate,
			func(ut ut.Translator) error { return ut.Add(tag, text, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, err := ut.T(fe.Tag(), fe.Field(), strings.ToLower(fe.Param()))
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		); err != nil {
			panic(err)
		}
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// validateManifest checks the shape of m. Engine-specific field combinations
// are checked while building.
func validateManifest(m *fileManifest) error {
	var errs validator.ValidationErrors
	if err := validate.Struct(m); !errors.As(err, &errs) {
		return err
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		where := strings.TrimPrefix(fe.Namespace(), "fileManifest.")
		msgs = append(msgs, where+": "+fe.Translate(translate))
	}

	return fmt.Errorf("%w: %s", codegen.ErrInvalidManifest, strings.Join(msgs, "; "))
}
