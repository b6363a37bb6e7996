package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	esTranslations "github.com/go-playground/validator/v10/translations/es"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/probaar-api/internal/domain"
)

// Validator valida DTOs de entrada con las etiquetas `validate` y traduce los mensajes al español.
type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

// NewValidator registra las traducciones y usa el nombre JSON de cada campo.
func NewValidator() (*Validator, error) {
	v := validator.New()
	esLocale := es.New()
	uni := ut.New(esLocale, esLocale)
	trans, _ := uni.GetTranslator("es")
	if err := esTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v, trans: trans}, nil
}

// Struct devuelve *domain.ValidationError con un mensaje por campo inválido.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(val.trans)
	}
	return &domain.ValidationError{Fields: fields}
}

// bind parsea el cuerpo JSON y lo valida.
func bind(c *fiber.Ctx, val *Validator, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return val.Struct(out)
}
