// Package locale holds the console's French and English strings.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	errors "github.com/frahmantamala/trackit/internal"
)

//go:embed messages/*.json
var messagesFS embed.FS

var Supported = []language.Tag{language.French, language.English}

type Bundle struct {
	bundle  *i18n.Bundle
	def     language.Tag
	matcher language.Matcher
}

func New(defaultLocale string) (*Bundle, error) {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}

	bundle := i18n.NewBundle(def)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := messagesFS.ReadDir("messages")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		data, err := messagesFS.ReadFile(path.Join("messages", f.Name()))
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name(), err)
		}
	}

	return &Bundle{
		bundle:  bundle,
		def:     def,
		matcher: language.NewMatcher(Supported),
	}, nil
}

// Default returns the configured fallback locale code.
func (b *Bundle) Default() string {
	base, _ := b.def.Base()
	return base.String()
}

// Match picks the supported locale closest to the candidates, or the
// default when none is usable.
func (b *Bundle) Match(candidates ...string) string {
	var tags []language.Tag
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if tag, err := language.Parse(c); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return b.Default()
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.Default()
	}
	base, _ := Supported[idx].Base()
	return base.String()
}

func (b *Bundle) MatchAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return b.Default()
	}
	codes := make([]string, len(tags))
	for i, t := range tags {
		codes[i] = t.String()
	}
	return b.Match(codes...)
}

// T localizes id. Unknown ids come back unchanged.
func (b *Bundle) T(lang, id string, data map[string]interface{}) string {
	l := i18n.NewLocalizer(b.bundle, lang, b.def.String())
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}

// ErrorMessage is the text a toast or error body shows for err. Backend
// messages win for 400, 409 and 422 since they name the offending field.
func (b *Bundle) ErrorMessage(lang string, err error) string {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		return b.T(lang, "Errors."+string(errors.ErrCodeUnknown), nil)
	}
	switch appErr.Code {
	case errors.ErrCodeBadRequest, errors.ErrCodeConflict, errors.ErrCodeUnprocessable:
		if appErr.Upstream != "" {
			return appErr.Upstream
		}
	case errors.ErrCodeValidationFailed:
		if detailed := appErr.GetDetailedMessage(); detailed != appErr.Message {
			return detailed
		}
	case errors.ErrCodeBulkPartial:
		if data, ok := appErr.Details.(map[string]interface{}); ok {
			return b.T(lang, "Errors."+string(appErr.Code), data)
		}
	}
	msg := b.T(lang, "Errors."+string(appErr.Code), nil)
	if msg == "Errors."+string(appErr.Code) {
		return appErr.Message
	}
	return msg
}

// Localized returns a copy of err whose message is in lang.
func (b *Bundle) Localized(lang string, err *errors.AppError) *errors.AppError {
	out := *err
	out.Message = b.ErrorMessage(lang, err)
	return &out
}
