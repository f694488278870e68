package observability

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"

	"github.com/baxromumarov/lead-sieve/internal/ingest"
)

const (
	ErrorParsing    = "parsing"
	ErrorValidation = "validation"
	ErrorStore      = "store"
	ErrorUnknown    = "unknown"
)

// ClassifyUploadError buckets a failed upload for the error counters.
func ClassifyUploadError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	if errors.Is(err, ingest.ErrMissingColumn) {
		return ErrorValidation
	}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return ErrorParsing
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorStore
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "multipart") ||
		strings.Contains(msg, "decode failed") ||
		strings.Contains(msg, "invalid character") {
		return ErrorParsing
	}
	return ErrorUnknown
}
