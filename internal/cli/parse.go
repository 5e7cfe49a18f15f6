package cli

import (
	"github.com/crank-bench/crank/internal/config"
)

// UsageError is the single error kind of this layer: a human-readable
// message describing a malformed command line. All UsageErrors are fatal
// at dispatch time and map to exit code 64.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// Parse consumes the full argument list against the option table using
// permuted matching: flags and positional arguments may interleave freely.
// It returns the per-flag configuration deltas in the order the flags
// appeared, plus the positional arguments (benchmark name filters).
//
// Parsing aborts on the first unrecognized flag, missing required
// argument, or sub-parser rejection; sub-parser messages are propagated
// verbatim.
func Parse(name string, args []string) ([]config.Config, []string, error) {
	var deltas []config.Config
	var subErr error
	fs := newFlagSet(name, &deltas, &subErr)
	if err := fs.Parse(args); err != nil {
		// pflag wraps Value.Set failures as `invalid argument "x" for
		// "-I, --ci" flag: ...`; the captured raw error keeps the
		// sub-parser's exact wording.
		if subErr != nil {
			err = subErr
		}
		return nil, nil, &UsageError{Message: err.Error()}
	}
	return deltas, fs.Args(), nil
}
