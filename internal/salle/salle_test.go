package salle_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/core/common/validation"
	"github.com/frahmantamala/trackit/internal/core/crud"
	"github.com/frahmantamala/trackit/internal/core/events"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/core/pagecache"
	"github.com/frahmantamala/trackit/internal/salle"
	"github.com/frahmantamala/trackit/internal/transport"
	"github.com/frahmantamala/trackit/pkg/logger"
)

func TestSalle(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Salle Suite")
}

type nopPublisher struct{}

func (nopPublisher) PublishSync(ctx context.Context, e events.Event) error { return nil }

func backend(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/salles":
		w.Write([]byte(`{"data":[
			{"id":1,"nom":"Atelier","etage":0,"site":"Paris"},
			{"id":2,"nom":"Bureau 12","etage":1,"site":"Lyon"},
			{"id":3,"nom":"Archives","etage":1,"site":"Paris"}
		]}`))
	case "/api/salles/1/positions":
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 10, "libelle": "P-01", "port": "A1", "salle_id": 1},
		})
	case "/api/salles/3/positions":
		w.Write([]byte(`null`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

var _ = Describe("Salle", func() {
	var (
		server  *httptest.Server
		service *salle.Service
		router  *chi.Mux
		ctx     context.Context
	)

	BeforeEach(func() {
		lg := logger.Discard()
		server = httptest.NewServer(http.HandlerFunc(backend))
		bundle, err := locale.New("fr")
		Expect(err).NotTo(HaveOccurred())
		service = salle.NewService(crud.Deps{
			Client:    apiclient.NewClient(apiclient.Config{BaseURL: server.URL + "/api", Timeout: time.Second}, nopPublisher{}, lg),
			Store:     pagecache.NewMemoryStore(time.Hour),
			PageSize:  10,
			Validator: validation.New(bundle),
			Publisher: nopPublisher{},
			Locale:    bundle,
			Logger:    lg,
		})
		ctx = errors.ContextWithPrincipal(context.Background(), &errors.Principal{SessionID: "s1", Token: "t"})

		h := salle.NewHandler(transport.NewBaseHandler(lg, bundle, "sid"), service)
		router = chi.NewRouter()
		router.Route("/salles", func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r.WithContext(withSession(r.Context(), ctx)))
				})
			})
			h.Routes(r)
		})
	})

	AfterEach(func() {
		server.Close()
	})

	It("should filter by floor and site", func() {
		view, err := service.List(ctx, url.Values{"filter[etage]": {"1"}, "filter[site]": {"Paris"}})
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Rows).To(HaveLen(1))
		Expect(view.Rows[0].Nom).To(Equal("Archives"))
	})

	It("should order rooms by name", func() {
		view, err := service.List(ctx, url.Values{})
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Rows[0].Nom).To(Equal("Archives"))
		Expect(view.Rows[2].Nom).To(Equal("Bureau 12"))
	})

	It("should serve the positions of a room", func() {
		req := httptest.NewRequest(http.MethodGet, "/salles/1/positions", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp salle.PositionsResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.SalleID).To(Equal("1"))
		Expect(resp.Positions).To(HaveLen(1))
		Expect(resp.Positions[0].Libelle).To(Equal("P-01"))
	})

	It("should answer an empty list for a room without positions", func() {
		positions, err := service.Positions(ctx, "3")
		Expect(err).NotTo(HaveOccurred())
		Expect(positions).NotTo(BeNil())
		Expect(positions).To(BeEmpty())
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
