package telemetry_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/telemetry"
	"github.com/frahmantamala/trackit/pkg/logger"
)

func TestTelemetry(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Telemetry Suite")
}

var _ = Describe("Setup", func() {
	It("should be a no-op when tracing is disabled", func() {
		shutdown := telemetry.Setup(context.Background(), internal.TracingConfig{Enabled: false}, logger.Discard())
		Expect(shutdown(context.Background())).To(Succeed())
	})

	It("should be a no-op without an endpoint", func() {
		shutdown := telemetry.Setup(context.Background(), internal.TracingConfig{Enabled: true, ServiceName: "trackit"}, logger.Discard())
		Expect(shutdown(context.Background())).To(Succeed())
	})
})
