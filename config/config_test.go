package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/config"
)

var _ = Describe("Config", func() {
	It("validates the out-of-the-box defaults", func() {
		Expect(config.Default().Validate()).To(BeNil())
	})

	It("reports a validation error for a zero Workers count", func() {
		cfg := config.Default()
		cfg.Server.Workers = 0

		Expect(cfg.Validate()).ToNot(BeNil())
	})

	It("builds and validates a Config from a generic map via FromMap", func() {
		cfg, err := config.FromMap(map[string]interface{}{
			"server": map[string]interface{}{
				"name":      "custom",
				"host_port": "0.0.0.0:9090",
				"workers":   8,
			},
		})

		Expect(err).To(BeNil())
		Expect(cfg.Server.Name).To(Equal("custom"))
		Expect(cfg.Server.HostPort).To(Equal("0.0.0.0:9090"))
		Expect(cfg.Server.Workers).To(Equal(8))
		// Unset fields keep Default()'s values rather than zeroing out.
		Expect(cfg.HTTP.MaxHeaderBytes).To(Equal(1 << 20))
	})

	It("rejects a map that decodes into an invalid Config", func() {
		_, err := config.FromMap(map[string]interface{}{
			"server": map[string]interface{}{
				"workers": -1,
			},
		})

		Expect(err).ToNot(BeNil())
	})
})
