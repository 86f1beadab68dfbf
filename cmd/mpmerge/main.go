// Package main is the entry point for the mpmerge CLI.
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmd"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/version"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Get().Version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(printError),
	); err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(oerrors.ExitGeneralError)
	}
}

// printError skips errors the command layer has already reported.
func printError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) && exitErr.Printed {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
