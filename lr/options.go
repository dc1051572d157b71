package lr

import "io"

// Limits bounds the size of the automaton. A zero field means "no limit".
// Exceeding a limit is reported as a FatalError wrapping ErrCapacity.
type Limits struct {
	MaxStates      int // number of LALR(1) states
	MaxKernel      int // kernel items per state
	MaxClosure     int // closure items per state
	MaxEpsilon     int // epsilon items per state
	MaxProductions int
}

// Options configure a TableGenerator.
type Options struct {
	Verbose    int       // 0 = quiet, 1 = document states, 2 = trace everything
	NoWarnings bool      // count warnings, but do not report them
	AcceptOn   []string  // names of terminals accepting the goal production
	Limits     Limits    // capacity limits
	Doc        io.Writer // receives the state documentation if Verbose > 0
}

// Option is a type to influence the behaviour of table generation.
type Option func(*Options)

// Verbosity sets the verbosity level.
func Verbosity(level int) Option {
	return func(o *Options) {
		o.Verbose = level
	}
}

// SuppressWarnings switches off reporting of warnings.
func SuppressWarnings(b bool) Option {
	return func(o *Options) {
		o.NoWarnings = b
	}
}

// AcceptOn sets the terminals on which the goal production is accepted.
// Default is end-of-input only.
func AcceptOn(terminals ...string) Option {
	return func(o *Options) {
		o.AcceptOn = terminals
	}
}

// WithLimits sets capacity limits.
func WithLimits(l Limits) Option {
	return func(o *Options) {
		o.Limits = l
	}
}

// DocumentTo sets the destination of the state documentation.
func DocumentTo(w io.Writer) Option {
	return func(o *Options) {
		o.Doc = w
	}
}

func exceeds(n, limit int) bool {
	return limit > 0 && n > limit
}
