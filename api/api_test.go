package api_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/trackit/api"
)

func TestAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Suite")
}

var _ = Describe("OpenAPI document", func() {
	It("should be valid and describe the console endpoints", func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Paths.Find("/materiels/bulk")).NotTo(BeNil())
		Expect(doc.Paths.Find("/inventaires/{key}/validate")).NotTo(BeNil())
	})
})
