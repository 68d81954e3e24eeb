package validation

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/core/locale"
)

// Validator checks console forms before anything is sent to the backend.
type Validator struct {
	validate *validator.Validate
	decoder  *form.Decoder
	bundle   *locale.Bundle
}

func New(bundle *locale.Bundle) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v, decoder: form.NewDecoder(), bundle: bundle}
}

// Struct validates s and returns a VALIDATION_FAILED AppError listing every
// offending field, localized for the request.
func (v *Validator) Struct(ctx context.Context, s interface{}) error {
	err := v.validate.StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewInternalError("validation failed", err)
	}
	lang := errors.LocaleFromContext(ctx)
	fields := make([]errors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errors.ValidationError{
			Field:   fieldPath(fe),
			Message: v.message(lang, fe),
			Code:    fe.Tag(),
		})
	}
	return errors.NewValidationFieldErrors(fields)
}

// DecodeForm fills dst from url-encoded form values, Rows[0].Field style.
func (v *Validator) DecodeForm(dst interface{}, values map[string][]string) error {
	if err := v.decoder.Decode(dst, values); err != nil {
		return errors.NewValidationError(err.Error(), errors.ErrCodeBadRequest)
	}
	return nil
}

func (v *Validator) message(lang string, fe validator.FieldError) string {
	data := map[string]interface{}{"Field": fe.Field(), "Param": fe.Param()}
	if v.bundle == nil {
		return fe.Error()
	}
	id := "Validation." + fe.Tag()
	msg := v.bundle.T(lang, id, data)
	if msg == id {
		return v.bundle.T(lang, "Validation.default", data)
	}
	return msg
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
