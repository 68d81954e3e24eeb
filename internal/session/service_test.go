package session_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	errors "github.com/frahmantamala/trackit/internal"
	sessionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/session"
	"github.com/frahmantamala/trackit/internal/core/datamodel/utilisateur"
	"github.com/frahmantamala/trackit/internal/core/events"
	"github.com/frahmantamala/trackit/internal/session"
	sessionPostgres "github.com/frahmantamala/trackit/internal/session/postgres"
)

func TestSession(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session Suite")
}

func signed(claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	Expect(err).NotTo(HaveOccurred())
	return token
}

var _ = Describe("Session Service", func() {
	var (
		ctx     context.Context
		service *session.Service
		bus     *events.EventBus
		ended   []*events.SessionEndedEvent
		now     time.Time
		user    utilisateur.Utilisateur
	)

	BeforeEach(func() {
		ctx = context.Background()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&sessionDatamodel.Session{})).To(Succeed())

		ended = nil
		bus = events.NewEventBus(lg)
		bus.Subscribe(events.EventTypeSessionEnded, func(ctx context.Context, e events.Event) error {
			ended = append(ended, e.(*events.SessionEndedEvent))
			return nil
		})

		now = time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
		service = session.NewService(sessionPostgres.NewSessionRepository(db), bus, 8*time.Hour, lg)
		service.SetClock(func() time.Time { return now })
		bus.Subscribe(events.EventTypeAPIFailed, service.HandleAPIFailed)

		user = utilisateur.Utilisateur{Matricule: "EMP001", Username: "jdupont", Role: utilisateur.RoleAdmin, Nom: "Dupont"}
	})

	Describe("TokenExpiry", func() {
		It("should read exp without checking the signature", func() {
			exp, ok := session.TokenExpiry(signed(jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}))
			Expect(ok).To(BeTrue())
			Expect(exp.Unix()).To(Equal(now.Add(time.Hour).Unix()))
		})

		It("should report tokens without exp or that are not JWTs", func() {
			_, ok := session.TokenExpiry(signed(jwt.MapClaims{"sub": "EMP001"}))
			Expect(ok).To(BeFalse())
			_, ok = session.TokenExpiry("opaque-token")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Start and Resolve", func() {
		It("should expire with the token", func() {
			token := signed(jwt.MapClaims{"exp": now.Add(30 * time.Minute).Unix()})
			sess, err := service.Start(ctx, token, user, "fr")
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.ID).NotTo(BeEmpty())
			Expect(sess.ExpiresAt.Unix()).To(Equal(now.Add(30 * time.Minute).Unix()))

			got, err := service.Resolve(ctx, sess.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Token).To(Equal(token))
			Expect(got.User.Nom).To(Equal("Dupont"))
			Expect(got.Principal().IsAdmin()).To(BeTrue())
		})

		It("should fall back to the ttl for opaque tokens", func() {
			sess, err := service.Start(ctx, "opaque", user, "fr")
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.ExpiresAt).To(Equal(now.Add(8 * time.Hour)))
		})

		It("should refuse an already expired token", func() {
			_, err := service.Start(ctx, signed(jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), user, "fr")
			Expect(errors.IsSessionExpired(err)).To(BeTrue())
		})

		It("should end a session once it expires", func() {
			sess, _ := service.Start(ctx, "opaque", user, "fr")
			now = now.Add(9 * time.Hour)

			_, err := service.Resolve(ctx, sess.ID)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeNotAuthenticated))
			Expect(ended).To(HaveLen(1))
			Expect(ended[0].Reason).To(Equal(session.ReasonExpired))
		})

		It("should report unknown ids as not authenticated", func() {
			_, err := service.Resolve(ctx, "nope")
			Expect(err).To(Equal(errors.ErrNotAuthenticated))
			_, err = service.Resolve(ctx, "")
			Expect(err).To(Equal(errors.ErrNotAuthenticated))
		})
	})

	Describe("End", func() {
		It("should delete the session and announce it", func() {
			sess, _ := service.Start(ctx, "opaque", user, "fr")
			Expect(service.End(ctx, sess.ID, session.ReasonLogout)).To(Succeed())

			_, err := service.Resolve(ctx, sess.ID)
			Expect(err).To(HaveOccurred())
			Expect(ended).To(HaveLen(1))
			Expect(ended[0].SessionID).To(Equal(sess.ID))
		})
	})

	Describe("HandleAPIFailed", func() {
		It("should end the session on a backend 401", func() {
			sess, _ := service.Start(ctx, "opaque", user, "fr")
			failure := errors.FromStatus(http.StatusUnauthorized, "")
			Expect(bus.PublishSync(ctx, events.NewAPIFailedEvent(sess.ID, "fr", "materiels", http.MethodGet, failure))).To(Succeed())

			_, err := service.Resolve(ctx, sess.ID)
			Expect(err).To(HaveOccurred())
			Expect(ended[0].Reason).To(Equal(session.ReasonRevoked))
		})

		It("should ignore other failures", func() {
			sess, _ := service.Start(ctx, "opaque", user, "fr")
			failure := errors.FromStatus(http.StatusForbidden, "")
			_ = bus.PublishSync(ctx, events.NewAPIFailedEvent(sess.ID, "fr", "materiels", http.MethodGet, failure))

			_, err := service.Resolve(ctx, sess.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("PurgeExpired", func() {
		It("should remove expired sessions only", func() {
			old, _ := service.Start(ctx, "opaque", user, "fr")
			now = now.Add(9 * time.Hour)
			fresh, _ := service.Start(ctx, "opaque", user, "fr")

			n, err := service.PurgeExpired(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))
			Expect(ended[0].SessionID).To(Equal(old.ID))

			_, err = service.Resolve(ctx, fresh.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
