package logging_test

import (
	"bytes"
	"encoding/json"

	"github.com/metamemelord/Mockerino/logging"
	"github.com/sirupsen/logrus"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("New", func() {
	It("writes json at the requested level", func() {
		var buf bytes.Buffer
		logger, err := logging.New("warn", "json", &buf)
		Expect(err).ShouldNot(HaveOccurred())

		logger.Info("dropped")
		logger.WithField("route", "GET /").Warn("kept")

		var line map[string]interface{}
		Expect(json.Unmarshal(buf.Bytes(), &line)).To(Succeed())
		Expect(line).To(HaveKeyWithValue("msg", "kept"))
		Expect(line).To(HaveKeyWithValue("route", "GET /"))
	})

	It("defaults to text", func() {
		var buf bytes.Buffer
		logger, err := logging.New("info", "", &buf)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(logger.Formatter).To(BeAssignableToTypeOf(&logrus.TextFormatter{}))
		Expect(logger.ReportCaller).To(BeFalse())
	})

	It("reports callers at debug level", func() {
		logger, err := logging.New("debug", "text", &bytes.Buffer{})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(logger.ReportCaller).To(BeTrue())
	})

	It("rejects unknown levels and formats", func() {
		_, err := logging.New("loud", "text", &bytes.Buffer{})
		Expect(err).To(HaveOccurred())

		_, err = logging.New("info", "xml", &bytes.Buffer{})
		Expect(err).To(HaveOccurred())
	})
})
