package apiclient_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAPIClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Client Suite")
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) PublishSync(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) failures() []*events.APIFailedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*events.APIFailedEvent
	for _, e := range p.events {
		if f, ok := e.(*events.APIFailedEvent); ok {
			out = append(out, f)
		}
	}
	return out
}

type widget struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

var _ = Describe("Client", func() {
	var (
		server    *httptest.Server
		mux       *http.ServeMux
		publisher *recordingPublisher
		client    *apiclient.Client
		widgets   *apiclient.Resource[widget]
		ctx       context.Context
	)

	BeforeEach(func() {
		mux = http.NewServeMux()
		server = httptest.NewServer(mux)
		publisher = &recordingPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		client = apiclient.NewClient(apiclient.Config{BaseURL: server.URL + "/api/", Timeout: time.Second}, publisher, logger)
		widgets = apiclient.NewResource[widget](client, "widgets")
		ctx = errors.ContextWithPrincipal(context.Background(), &errors.Principal{SessionID: "sess-1", Token: "tok-1"})
		ctx = errors.ContextWithLocale(ctx, "en")
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("successful calls", func() {
		It("should send the session token and decode a bare list", func() {
			mux.HandleFunc("/api/widgets", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer tok-1"))
				Expect(r.Header.Get("Accept-Language")).To(Equal("en"))
				Expect(r.URL.Query().Get("q")).To(Equal("x"))
				w.Write([]byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`))
			})

			list, err := widgets.List(ctx, url.Values{"q": {"x"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[1].Name).To(Equal("b"))
		})

		It("should unwrap a data envelope", func() {
			mux.HandleFunc("/api/widgets/7", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":{"id":7,"name":"seven"},"message":"ok"}`))
			})

			got, err := widgets.Get(ctx, "7")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("seven"))
		})

		It("should post JSON bodies and accept an empty response", func() {
			mux.HandleFunc("/api/widgets", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
				var body widget
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				Expect(body.Name).To(Equal("new"))
				w.WriteHeader(http.StatusCreated)
			})

			got, err := widgets.Create(ctx, widget{Name: "new"})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(widget{}))
		})

		It("should escape path keys", func() {
			Expect(apiclient.JoinPath("widgets", "a/b")).To(Equal("/widgets/a%2Fb"))
		})
	})

	Describe("error mapping", func() {
		DescribeTable("should map statuses to codes",
			func(status int, body string, code errors.ErrorCode, upstream string) {
				mux.HandleFunc("/api/widgets/1", func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(status)
					w.Write([]byte(body))
				})

				err := widgets.Delete(ctx, "1")
				appErr, ok := errors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(code))
				Expect(appErr.Upstream).To(Equal(upstream))
			},
			Entry("400", http.StatusBadRequest, `{"message":"bad field"}`, errors.ErrCodeBadRequest, "bad field"),
			Entry("401", http.StatusUnauthorized, `{"error":"token expired"}`, errors.ErrCodeSessionExpired, "token expired"),
			Entry("403", http.StatusForbidden, ``, errors.ErrCodeForbidden, ""),
			Entry("404", http.StatusNotFound, `{"error":{"message":"no such widget"}}`, errors.ErrCodeNotFound, "no such widget"),
			Entry("409", http.StatusConflict, `duplicate key`, errors.ErrCodeConflict, "duplicate key"),
			Entry("422", http.StatusUnprocessableEntity, `{"detail":"date_fin before date_debut"}`, errors.ErrCodeUnprocessable, "date_fin before date_debut"),
			Entry("500", http.StatusInternalServerError, `<html>oops</html>`, errors.ErrCodeServerError, ""),
			Entry("503", http.StatusServiceUnavailable, ``, errors.ErrCodeServerError, ""),
			Entry("418", http.StatusTeapot, ``, errors.ErrCodeUnknown, ""),
		)

		It("should map an unreachable backend to a network error", func() {
			server.Close()
			_, err := widgets.List(ctx, nil)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeNetwork))
		})

		It("should publish exactly one failure event per failed call", func() {
			mux.HandleFunc("/api/widgets", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			})

			_, err := widgets.List(ctx, nil)
			Expect(err).To(HaveOccurred())

			failures := publisher.failures()
			Expect(failures).To(HaveLen(1))
			Expect(failures[0].SessionID).To(Equal("sess-1"))
			Expect(failures[0].Locale).To(Equal("en"))
			Expect(failures[0].Resource).To(Equal("widgets"))
			Expect(failures[0].Err.Code).To(Equal(errors.ErrCodeServerError))
		})

		It("should not publish for quiet calls", func() {
			mux.HandleFunc("/api/widgets", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
			})

			_, err := widgets.Create(apiclient.Quiet(ctx), widget{Name: "dup"})
			Expect(err).To(HaveOccurred())
			Expect(publisher.failures()).To(BeEmpty())
		})

		It("should report undecodable bodies", func() {
			mux.HandleFunc("/api/widgets", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data": "not a list"}`))
			})

			_, err := widgets.List(ctx, nil)
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeServerError))
		})
	})
})
