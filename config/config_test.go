package config_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/flowmatic/config"
	"github.com/sarchlab/flowmatic/core"
	"github.com/sarchlab/flowmatic/program"
	"github.com/sarchlab/flowmatic/record"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(text string) string {
		path := filepath.Join(dir, "flowmatic.yaml")
		Expect(os.WriteFile(path, []byte(text), 0o644)).To(Succeed())
		return path
	}

	It("should have valid defaults", func() {
		Expect(config.Default().Validate()).To(Succeed())
	})

	It("should load values over the defaults", func() {
		cfg, err := config.Load(write(`
data_dir: /tmp/data
max_steps: 50
strict: true
log:
  level: trace
`))

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.DataDir).To(Equal("/tmp/data"))
		Expect(cfg.MaxSteps).To(Equal(uint64(50)))
		Expect(cfg.Strict).To(BeTrue())
		Expect(cfg.Log.Level).To(Equal("trace"))
		Expect(cfg.Log.Format).To(Equal("text"))
		Expect(cfg.FrequencyHz).To(Equal(1e9))
	})

	It("should accept an empty file", func() {
		cfg, err := config.Load(write(""))

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Default()))
	})

	It("should reject unknown keys", func() {
		_, err := config.Load(write("colour: blue\n"))

		Expect(err).To(HaveOccurred())
	})

	It("should reject invalid values", func() {
		_, err := config.Load(write("frequency_hz: 0\nlog:\n  format: xml\n"))

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("frequency_hz"))
		Expect(err.Error()).To(ContainSubstring("log.format"))
	})

	It("should fail on a missing file", func() {
		_, err := config.Load(filepath.Join(dir, "nope.yaml"))

		Expect(err).To(HaveOccurred())
	})

	DescribeTable("log levels",
		func(name string, want slog.Level) {
			level, err := config.ParseLevel(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(level).To(Equal(want))
		},
		Entry("trace", "trace", core.LevelTrace),
		Entry("debug", "DEBUG", slog.LevelDebug),
		Entry("warn", "warn", slog.LevelWarn),
	)

	It("should build a JSON handler", func() {
		var buf bytes.Buffer
		h, err := config.LogConfig{Level: "info", Format: "json"}.Handler(&buf)
		Expect(err).NotTo(HaveOccurred())

		slog.New(h).Info("hello")
		Expect(buf.String()).To(ContainSubstring(`"msg":"hello"`))
	})
})

var _ = Describe("PlatformBuilder", func() {
	It("should assemble a runnable platform", func() {
		backend := record.NewMemBackend()
		backend.Put("DATA", record.FromPairs("X", "1"), record.FromPairs("X", "2"))
		prog, err := program.Parse(`
(0) INPUT DATA FILE-A ; OUTPUT COPY FILE-B .
(1) READ-ITEM A ; IF END OF DATA GO TO OPERATION 3 .
(2) TRANSFER A TO B ; WRITE-ITEM B ; JUMP TO OPERATION 1 .
(3) CLOSE-OUT FILES B ; STOP .`)
		Expect(err).NotTo(HaveOccurred())

		p, err := config.NewPlatformBuilder().
			WithBackend(backend).
			WithPrinter(&bytes.Buffer{}).
			Build("Test", prog)
		Expect(err).NotTo(HaveOccurred())
		defer p.Close()

		report, err := p.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(report.State).To(Equal(core.HaltedNormal))

		out, ok := backend.Persisted("COPY")
		Expect(ok).To(BeTrue())
		Expect(out).To(HaveLen(2))
	})

	It("should apply the step limit", func() {
		cfg := config.Default()
		cfg.MaxSteps = 5
		prog, err := program.Parse("(0) JUMP TO OPERATION 1 .\n(1) JUMP TO OPERATION 0 .")
		Expect(err).NotTo(HaveOccurred())

		p, err := config.NewPlatformBuilder().
			WithConfig(cfg).
			WithPrinter(&bytes.Buffer{}).
			Build("Test", prog)
		Expect(err).NotTo(HaveOccurred())

		report, err := p.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Fault.Kind).To(Equal(core.KindInterrupted))
		Expect(report.Steps).To(Equal(uint64(5)))
	})

	It("should refuse invalid settings", func() {
		cfg := config.Default()
		cfg.FrequencyHz = -1
		prog, _ := program.Parse("(0) STOP .")

		_, err := config.NewPlatformBuilder().WithConfig(cfg).Build("Test", prog)
		Expect(err).To(HaveOccurred())
	})
})
