package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldJobTitle is the structured log field key for a job title.
	FieldJobTitle = "job_title"
	// FieldCompany is the structured log field key for a job's company.
	FieldCompany = "company"
	// FieldFingerprint is the structured log field key for a job fingerprint.
	FieldFingerprint = "fingerprint"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// JobFields returns standard zap fields identifying a job in log entries.
// Empty values are ignored to keep entries compact when information is missing.
func JobFields(title, company, fingerprint string) []zap.Field {
	return StringFields(
		StringField{Key: FieldJobTitle, Value: title},
		StringField{Key: FieldCompany, Value: company},
		StringField{Key: FieldFingerprint, Value: fingerprint},
	)
}

// WithJobFields attaches the standard job fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithJobFields(logger *zap.Logger, title, company, fingerprint string) *zap.Logger {
	fields := JobFields(title, company, fingerprint)
	return WithFields(logger, fields...)
}
