package errors

import (
	"fmt"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		CodeUnknown,
		CodeValidation,
		CodeConfiguration,
		CodeSourceMissing,
		CodeDocumentParse,
		CodeBaseDocument,
		CodeEncoding,
		CodeTableRead,
		CodeNoData,
		CodeFileNotFound,
		CodeDirectoryCreate,
		CodeOutputWrite,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("Error code %v should not be empty", code)
		}
	}
}

func TestSourceError(t *testing.T) {
	t.Run("basic error creation", func(t *testing.T) {
		err := NewSourceError(CodeSourceMissing, "file is empty", "")
		if err.Code != CodeSourceMissing {
			t.Errorf("Expected code %s, got %s", CodeSourceMissing, err.Code)
		}
		if err.Context == nil {
			t.Error("Context should be initialized")
		}
		expected := "[SOURCE_MISSING] file is empty"
		if err.Error() != expected {
			t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("error with path", func(t *testing.T) {
		err := NewSourceError(CodeSourceMissing, "file does not exist", "ports.xlsx")
		expected := "[SOURCE_MISSING] file does not exist (path: ports.xlsx)"
		if err.Error() != expected {
			t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("wrapped error", func(t *testing.T) {
		cause := fmt.Errorf("unexpected EOF")
		err := ErrDocumentParse("scan1.xml", cause)
		if err.Unwrap() != cause {
			t.Error("Wrapped error should be unwrappable")
		}
		expected := "[DOCUMENT_PARSE] Failed to parse scan document (path: scan1.xml): unexpected EOF"
		if err.Error() != expected {
			t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("with context", func(t *testing.T) {
		err := ErrEncoding("ports.csv", fmt.Errorf("invalid utf-8"))
		err.WithContext("tried", []string{"utf-8", "gb18030"}).WithContext("bytes", 42)

		if err.Context["bytes"] != 42 {
			t.Errorf("Expected bytes 42, got %v", err.Context["bytes"])
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("basic config error", func(t *testing.T) {
		err := NewConfigError(CodeConfiguration, "config invalid")
		expected := "[CONFIGURATION] config invalid"
		if err.Error() != expected {
			t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("config field error", func(t *testing.T) {
		err := ErrConfigInvalid("output.format", "pdf")
		if err.Field != "output.format" {
			t.Errorf("Expected field 'output.format', got '%s'", err.Field)
		}
		expected := "[VALIDATION] Invalid configuration value (field: output.format)"
		if err.Error() != expected {
			t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("wrapped config error", func(t *testing.T) {
		cause := fmt.Errorf("yaml: line 3")
		err := WrapConfigError(CodeConfiguration, "config file unreadable", cause)
		if err.Unwrap() != cause {
			t.Error("Should unwrap to original error")
		}
	})
}

func TestUtilityFunctions(t *testing.T) {
	t.Run("IsCode", func(t *testing.T) {
		tests := []struct {
			name     string
			err      error
			code     ErrorCode
			expected bool
		}{
			{"source error matches", ErrNoData(), CodeNoData, true},
			{"source error does not match", ErrNoData(), CodeEncoding, false},
			{"config error matches", ErrConfigMissing("input.table"), CodeConfiguration, true},
			{"wrapped with fmt", fmt.Errorf("run: %w", ErrBaseDocument("a.xml", fmt.Errorf("eof"))), CodeBaseDocument, true},
			{"standard error", fmt.Errorf("standard error"), CodeUnknown, false},
			{"nil error", nil, CodeUnknown, false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if result := IsCode(tt.err, tt.code); result != tt.expected {
					t.Errorf("Expected %v, got %v", tt.expected, result)
				}
			})
		}
	})

	t.Run("GetCode", func(t *testing.T) {
		tests := []struct {
			name     string
			err      error
			expected ErrorCode
		}{
			{"source error", ErrSourceMissing("x.csv", "missing"), CodeSourceMissing},
			{"config error", NewConfigError(CodeConfiguration, "config error"), CodeConfiguration},
			{"wrapped source error", fmt.Errorf("write: %w", ErrOutputWrite("out.xlsx", fmt.Errorf("disk full"))), CodeOutputWrite},
			{"standard error", fmt.Errorf("standard error"), CodeUnknown},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if result := GetCode(tt.err); result != tt.expected {
					t.Errorf("Expected %v, got %v", tt.expected, result)
				}
			})
		}
	})

	t.Run("IsFatal", func(t *testing.T) {
		tests := []struct {
			name     string
			err      error
			expected bool
		}{
			{"no data", ErrNoData(), true},
			{"configuration", ErrConfigMissing("output.path"), true},
			{"validation", ErrConfigInvalid("output.format", "pdf"), true},
			{"output write", ErrOutputWrite("out.xlsx", nil), false},
			{"document parse", ErrDocumentParse("a.xml", nil), false},
			{"encoding", ErrEncoding("a.csv", nil), false},
			{"standard error", fmt.Errorf("boom"), false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if result := IsFatal(tt.err); result != tt.expected {
					t.Errorf("Expected %v, got %v", tt.expected, result)
				}
			})
		}
	})
}
