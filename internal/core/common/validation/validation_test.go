package validation_test

import (
	"context"
	"net/url"
	"testing"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/core/common/validation"
	"github.com/frahmantamala/trackit/internal/core/locale"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

type row struct {
	Serial string `json:"numero_serie" form:"NumeroSerie" validate:"required"`
}

type bulkForm struct {
	Marque string `json:"marque" form:"Marque" validate:"required"`
	Statut string `json:"statut" form:"Statut" validate:"omitempty,oneof=disponible affecte"`
	Rows   []row  `json:"rows" form:"Rows" validate:"required,min=1,unique=Serial,dive"`
}

var _ = Describe("Validator", func() {
	var (
		v   *validation.Validator
		ctx context.Context
	)

	BeforeEach(func() {
		bundle, err := locale.New("fr")
		Expect(err).NotTo(HaveOccurred())
		v = validation.New(bundle)
		ctx = errors.ContextWithLocale(context.Background(), "en")
	})

	It("should accept a complete form", func() {
		f := bulkForm{Marque: "Dell", Rows: []row{{Serial: "A"}, {Serial: "B"}}}
		Expect(v.Struct(ctx, f)).To(Succeed())
	})

	It("should reject missing required fields", func() {
		err := v.Struct(ctx, bulkForm{Rows: []row{{Serial: ""}}})
		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(errors.ErrCodeValidationFailed))

		details := appErr.Details.(errors.ValidationErrors)
		fields := []string{}
		for _, fe := range details.Errors {
			fields = append(fields, fe.Field)
		}
		Expect(fields).To(ConsistOf("marque", "rows[0].numero_serie"))
		Expect(details.Errors[0].Message).To(Equal("marque is required."))
	})

	It("should reject duplicate rows", func() {
		err := v.Struct(ctx, bulkForm{Marque: "HP", Rows: []row{{Serial: "A"}, {Serial: "A"}}})
		appErr, _ := errors.IsAppError(err)
		Expect(appErr.Details.(errors.ValidationErrors).Errors[0].Code).To(Equal("unique"))
	})

	It("should localize messages in French by default", func() {
		err := v.Struct(errors.ContextWithLocale(context.Background(), "fr"), bulkForm{Marque: "HP", Statut: "perdu", Rows: []row{{Serial: "A"}}})
		Expect(err.Error()).To(Equal("statut doit être l'une des valeurs : disponible affecte."))
	})

	It("should decode indexed form rows", func() {
		var f bulkForm
		values := url.Values{
			"Marque":              {"Dell"},
			"Rows[0].NumeroSerie": {"SN1"},
			"Rows[1].NumeroSerie": {"SN2"},
		}
		Expect(v.DecodeForm(&f, values)).To(Succeed())
		Expect(f.Marque).To(Equal("Dell"))
		Expect(f.Rows).To(HaveLen(2))
		Expect(f.Rows[1].Serial).To(Equal("SN2"))
	})
})
