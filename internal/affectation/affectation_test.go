package affectation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/affectation"
	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/core/common/validation"
	"github.com/frahmantamala/trackit/internal/core/crud"
	"github.com/frahmantamala/trackit/internal/core/datamodel"
	affectationDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/affectation"
	"github.com/frahmantamala/trackit/internal/core/events"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/core/pagecache"
	"github.com/frahmantamala/trackit/internal/transport"
	"github.com/frahmantamala/trackit/pkg/logger"
)

func TestAffectation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Affectation Suite")
}

func date(s string) datamodel.Date {
	d, err := datamodel.ParseDate(s)
	Expect(err).NotTo(HaveOccurred())
	return d
}

type backend struct {
	mu     sync.Mutex
	items  []affectationDatamodel.Affectation
	closed map[string]string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/affectations":
		json.NewEncoder(w).Encode(b.items)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/close"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/affectations/"), "/close")
		var form affectation.CloseDTO
		json.NewDecoder(r.Body).Decode(&form)
		b.closed[id] = form.DateFin
		if id == "2" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		item := b.items[0]
		item.DateFin = date(form.DateFin)
		json.NewEncoder(w).Encode(item)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type recorder struct {
	mu     sync.Mutex
	mutate []*events.ResourceMutatedEvent
}

func (r *recorder) PublishSync(ctx context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev, ok := e.(*events.ResourceMutatedEvent); ok {
		r.mutate = append(r.mutate, ev)
	}
	return nil
}

var _ = Describe("Affectation", func() {
	var (
		server  *httptest.Server
		be      *backend
		rec     *recorder
		bundle  *locale.Bundle
		service *affectation.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		lg := logger.Discard()
		pos := int64(7)
		be = &backend{
			closed: map[string]string{},
			items: []affectationDatamodel.Affectation{
				{ID: 1, DateDebut: date("2024-01-10"), Matricule: "M1", NumeroSerie: "SN-1"},
				{ID: 2, DateDebut: date("2024-02-01"), DateFin: date("2024-03-01"), Matricule: "M2", PositionID: &pos},
				{ID: 3, DateDebut: date("2024-04-01"), DateFin: date("2024-12-31"), Matricule: "M1", NumeroSerie: "SN-3"},
			},
		}
		server = httptest.NewServer(be)
		rec = &recorder{}

		var err error
		bundle, err = locale.New("fr")
		Expect(err).NotTo(HaveOccurred())
		service = affectation.NewService(crud.Deps{
			Client:    apiclient.NewClient(apiclient.Config{BaseURL: server.URL + "/api", Timeout: time.Second}, rec, lg),
			Store:     pagecache.NewMemoryStore(time.Hour),
			PageSize:  10,
			Validator: validation.New(bundle),
			Publisher: rec,
			Locale:    bundle,
			Logger:    lg,
		})
		service.SetClock(func() time.Time { return time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC) })

		ctx = errors.ContextWithPrincipal(context.Background(), &errors.Principal{SessionID: "s1", Token: "t"})
		ctx = errors.ContextWithLocale(ctx, "en")
	})

	AfterEach(func() {
		server.Close()
	})

	keys := func(items []affectationDatamodel.Affectation) []int64 {
		out := make([]int64, len(items))
		for i, a := range items {
			out[i] = a.ID
		}
		return out
	}

	Describe("List", func() {
		It("should order by start date, newest first", func() {
			view, err := service.List(ctx, url.Values{})
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(view.Rows)).To(Equal([]int64{3, 2, 1}))
		})

		It("should keep running affectations on the active filter", func() {
			view, err := service.List(ctx, url.Values{"filter[active]": {"true"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(view.Rows)).To(ConsistOf(int64(1), int64(3)))
		})

		It("should filter by position", func() {
			view, err := service.List(ctx, url.Values{"filter[position]": {"7"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(view.Rows)).To(Equal([]int64{2}))
		})
	})

	Describe("Close", func() {
		It("should default the end date to today and patch the page", func() {
			_, err := service.List(ctx, url.Values{})
			Expect(err).NotTo(HaveOccurred())

			item, err := service.Close(ctx, "1", affectation.CloseDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(be.closed["1"]).To(Equal("2024-05-02"))
			Expect(item.DateFin.String()).To(Equal("2024-05-02"))

			view, err := service.List(ctx, url.Values{"filter[active]": {"false"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(view.Rows)).To(ContainElement(int64(1)))

			Expect(rec.mutate).To(HaveLen(1))
			Expect(rec.mutate[0].Action).To(Equal(events.ActionClosed))
			Expect(rec.mutate[0].Key).To(Equal("1"))
		})

		It("should reject a malformed end date", func() {
			_, err := service.Close(ctx, "1", affectation.CloseDTO{DateFin: "02/05/2024"})
			Expect(err).To(HaveOccurred())
			Expect(be.closed).To(BeEmpty())
		})
	})

	Describe("Handler", func() {
		var router *chi.Mux

		BeforeEach(func() {
			h := affectation.NewHandler(transport.NewBaseHandler(logger.Discard(), bundle, "sid"), service)
			router = chi.NewRouter()
			router.Route("/affectations", func(r chi.Router) {
				r.Use(func(next http.Handler) http.Handler {
					return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
						next.ServeHTTP(w, r.WithContext(withSession(r.Context(), ctx)))
					})
				})
				h.Routes(r)
			})
		})

		It("should close with an empty body", func() {
			req := httptest.NewRequest(http.MethodPost, "/affectations/1/close", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(be.closed["1"]).To(Equal("2024-05-02"))
		})

		It("should answer 204 when the backend echoes nothing", func() {
			req := httptest.NewRequest(http.MethodPost, "/affectations/2/close", strings.NewReader(`{"date_fin":"2024-04-30"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(be.closed["2"]).To(Equal("2024-04-30"))
		})
	})
})

// withSession carries the test principal and locale onto a routed request,
// keeping chi's route context.
func withSession(reqCtx, session context.Context) context.Context {
	reqCtx = errors.ContextWithPrincipal(reqCtx, errors.PrincipalFromContext(session))
	if lang := errors.LocaleFromContext(session); lang != "" {
		reqCtx = errors.ContextWithLocale(reqCtx, lang)
	}
	return reqCtx
}
