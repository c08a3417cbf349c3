// Package output builds termenv outputs that agree on color handling.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns Ascii when NO_COLOR is set and the detected profile otherwise.
func Profile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New wraps w in a termenv.Output using Profile. A nil writer means stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(Profile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
