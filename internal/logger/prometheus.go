package logger

import (
	"github.com/clique77/job-portal-sub001/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// untypedError labels entries logged without one of the known error types, so
// the counter's label set stays bounded.
const untypedError = "other"

var errorTypes = []string{ErrorTypeDb, ErrorTypeAuth, ErrorTypeHttp, ErrorTypeEvent}

type errorCountHook struct{}

func (h *errorCountHook) Fire(entry *log.Entry) error {
	metrics.ErrorsCounter.WithLabelValues(errorTypeOf(entry), entry.Level.String()).Inc()
	return nil
}

func (h *errorCountHook) Levels() []log.Level {
	return []log.Level{log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}

func errorTypeOf(entry *log.Entry) string {
	errorType, _ := entry.Data[ErrorTypeField].(string)
	if lo.Contains(errorTypes, errorType) {
		return errorType
	}
	return untypedError
}
