// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/Lisheri/all-mp-merge-test-cli/internal/config"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	Config       *config.Config      // loaded config file; defaults when none exists
	ConfigPath   string              // resolved --config path
	ConfigSource config.ConfigSource // where ConfigPath came from
	ConfigFlag   string              // raw --config flag value
	Verbose      bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess            = oerrors.ExitSuccess
	ExitGeneralError       = oerrors.ExitGeneralError
	ExitConfigurationError = oerrors.ExitConfigurationError
	ExitPartialFailure     = oerrors.ExitPartialFailure
	ExitValidationError    = oerrors.ExitValidationError
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
