package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/auth"
	"github.com/frahmantamala/trackit/internal/core/common/validation"
	sessionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/session"
	"github.com/frahmantamala/trackit/internal/core/events"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/session"
	sessionPostgres "github.com/frahmantamala/trackit/internal/session/postgres"
	"github.com/frahmantamala/trackit/internal/transport"
	"github.com/frahmantamala/trackit/pkg/logger"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

type fakeBackend struct {
	logouts  int
	failMe   bool
	lastAuth string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lastAuth = r.Header.Get("Authorization")
	switch {
	case r.URL.Path == "/api/auth/login":
		var dto auth.LoginDTO
		_ = json.NewDecoder(r.Body).Decode(&dto)
		if dto.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"bad credentials"}`))
			return
		}
		role := "user"
		if dto.Username == "admin" {
			role = "admin"
		}
		w.Write([]byte(`{"token":"backend-token","user":{"matricule":"EMP001","username":"` + dto.Username + `","role":"` + role + `"}}`))
	case r.URL.Path == "/api/auth/logout":
		f.logouts++
		w.WriteHeader(http.StatusInternalServerError)
	case r.URL.Path == "/api/auth/me":
		if f.failMe {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data":{"matricule":"EMP001","username":"admin","role":"admin","nom":"Martin"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

var _ = Describe("Auth", func() {
	var (
		server   *httptest.Server
		backend  *fakeBackend
		sessions *session.Service
		service  *auth.Service
		handler  *auth.Handler
		ctx      context.Context
	)

	BeforeEach(func() {
		lg := logger.Discard()
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&sessionDatamodel.Session{})).To(Succeed())

		bundle, err := locale.New("fr")
		Expect(err).NotTo(HaveOccurred())

		backend = &fakeBackend{}
		server = httptest.NewServer(backend)

		bus := events.NewEventBus(lg)
		client := apiclient.NewClient(apiclient.Config{BaseURL: server.URL + "/api", Timeout: time.Second}, bus, lg)
		sessions = session.NewService(sessionPostgres.NewSessionRepository(db), bus, time.Hour, lg)
		bus.Subscribe(events.EventTypeAPIFailed, sessions.HandleAPIFailed)

		service = auth.NewService(auth.NewBackend(client), sessions, validation.New(bundle), lg)
		handler = auth.NewHandler(transport.NewBaseHandler(lg, bundle, "trackit_session"), service, false)
		ctx = context.Background()
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("Service", func() {
		It("should open a session with the backend token", func() {
			sess, err := service.Login(ctx, auth.LoginDTO{Username: "admin", Password: "secret"}, "en")
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.Token).To(Equal("backend-token"))
			Expect(sess.User.Role).To(BeEquivalentTo("admin"))
			Expect(sess.Locale).To(Equal("en"))
		})

		It("should reject missing fields before calling the backend", func() {
			_, err := service.Login(ctx, auth.LoginDTO{Username: "admin"}, "fr")
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeValidationFailed))
			Expect(backend.lastAuth).To(BeEmpty())
		})

		It("should turn a backend 401 into invalid credentials", func() {
			_, err := service.Login(ctx, auth.LoginDTO{Username: "admin", Password: "wrong"}, "fr")
			Expect(err).To(Equal(errors.ErrInvalidCredentials))
		})

		It("should end the session even when the backend logout fails", func() {
			sess, _ := service.Login(ctx, auth.LoginDTO{Username: "admin", Password: "secret"}, "fr")
			ctx = errors.ContextWithPrincipal(ctx, sess.Principal())

			Expect(service.Logout(ctx)).To(Succeed())
			Expect(backend.logouts).To(Equal(1))
			Expect(backend.lastAuth).To(Equal("Bearer backend-token"))

			_, err := sessions.Resolve(ctx, sess.ID)
			Expect(err).To(HaveOccurred())
		})

		It("should refresh the user from the backend on request", func() {
			sess, _ := service.Login(ctx, auth.LoginDTO{Username: "admin", Password: "secret"}, "fr")
			ctx = errors.ContextWithPrincipal(ctx, sess.Principal())

			me, err := service.CurrentUser(ctx, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(me.User.Nom).To(Equal("Martin"))
		})

		It("should force a logout when the backend refuses the token", func() {
			sess, _ := service.Login(ctx, auth.LoginDTO{Username: "admin", Password: "secret"}, "fr")
			ctx = errors.ContextWithPrincipal(ctx, sess.Principal())
			backend.failMe = true

			_, err := service.CurrentUser(ctx, true)
			Expect(errors.IsSessionExpired(err)).To(BeTrue())

			_, err = sessions.Resolve(ctx, sess.ID)
			Expect(err).To(Equal(errors.ErrNotAuthenticated))
		})
	})

	Describe("Handler", func() {
		login := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/console/login", strings.NewReader(body))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)
			return rec
		}

		It("should set the session cookie and point at the dashboard", func() {
			rec := login(`{"username":"jdoe","password":"secret"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal("trackit_session"))
			Expect(cookies[0].HttpOnly).To(BeTrue())

			var body auth.MeResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Redirect).To(Equal(auth.HomePath))
			Expect(rec.Body.String()).NotTo(ContainSubstring("backend-token"))
		})

		It("should answer bad credentials with a localized 401", func() {
			rec := login(`{"username":"jdoe","password":"nope"}`)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("INVALID_CREDENTIALS"))
			Expect(rec.Body.String()).To(ContainSubstring("incorrect"))
		})

		It("should send requests without a session to the login page", func() {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Fail("next handler must not run")
			})
			req := httptest.NewRequest(http.MethodGet, "/console/me", nil)
			rec := httptest.NewRecorder()
			handler.SessionMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring(`"redirect":"/login"`))
		})

		It("should put the principal on the context", func() {
			rec := login(`{"username":"admin","password":"secret"}`)
			cookie := rec.Result().Cookies()[0]

			var seen *errors.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = errors.PrincipalFromContext(r.Context())
			})
			req := httptest.NewRequest(http.MethodGet, "/console/me", nil)
			req.AddCookie(cookie)
			handler.SessionMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

			Expect(seen).NotTo(BeNil())
			Expect(seen.IsAdmin()).To(BeTrue())
			Expect(seen.Token).To(Equal("backend-token"))
		})
	})
})
