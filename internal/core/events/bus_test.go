package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/trackit/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	It("should run handlers in subscription order", func() {
		var calls []string
		bus.Subscribe(events.EventTypeSessionEnded, func(ctx context.Context, e events.Event) error {
			calls = append(calls, "first")
			return nil
		})
		bus.Subscribe(events.EventTypeSessionEnded, func(ctx context.Context, e events.Event) error {
			calls = append(calls, "second:"+e.(*events.SessionEndedEvent).SessionID)
			return nil
		})

		Expect(bus.PublishSync(context.Background(), events.NewSessionEndedEvent("s1", "logout"))).To(Succeed())
		Expect(calls).To(Equal([]string{"first", "second:s1"}))
	})

	It("should keep running handlers after one fails", func() {
		ran := false
		bus.Subscribe(events.EventTypeSessionEnded, func(ctx context.Context, e events.Event) error {
			return errors.New("boom")
		})
		bus.Subscribe(events.EventTypeSessionEnded, func(ctx context.Context, e events.Event) error {
			ran = true
			return nil
		})

		err := bus.PublishSync(context.Background(), events.NewSessionEndedEvent("s1", "logout"))
		Expect(err).To(MatchError(ContainSubstring("boom")))
		Expect(ran).To(BeTrue())
	})

	It("should ignore events nobody listens to", func() {
		Expect(bus.PublishSync(context.Background(), events.NewSessionEndedEvent("s1", "logout"))).To(Succeed())
	})
})
