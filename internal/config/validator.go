package config

import (
	"fmt"
	"strings"
)

// maxIndent bounds the configured manifest indentation.
const maxIndent = 8

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks the given configuration.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if err := ValidateIndent(cfg.Merge.Indent); err != nil {
		errs = append(errs, *err)
	}

	commands := []struct {
		field string
		value *string
	}{
		{"build.sourceCmd", cfg.Build.SourceCmd},
		{"build.targetCmd", cfg.Build.TargetCmd},
	}
	for _, c := range commands {
		if c.value != nil && *c.value != "" && strings.TrimSpace(*c.value) == "" {
			errs = append(errs, ValidationError{
				Field:   c.field,
				Message: "must not be whitespace only (use an empty string to skip the build)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateIndent checks a manifest indentation string.
func ValidateIndent(indent *string) *ValidationError {
	if indent == nil {
		return nil
	}
	if strings.Trim(*indent, " \t") != "" {
		return &ValidationError{Field: "merge.indent", Message: "must contain only spaces or tabs"}
	}
	if len(*indent) > maxIndent {
		return &ValidationError{Field: "merge.indent", Message: fmt.Sprintf("must be at most %d characters", maxIndent)}
	}
	return nil
}

// ValidateFile loads and validates the configuration file at path.
func ValidateFile(path string) (*Config, error) {
	cfg, err := NewLoader().Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	return cfg, Validate(cfg)
}
