package attack

// State is the state of the sampling of a coefficient.
type State int

const (
	// Sampling means more measurements are needed.
	Sampling State = iota

	// Converged means ConfidenceHigh consecutive epochs agreed on a known guess.
	Converged

	// Exhausted means the iteration budget was spent, possibly extended until
	// ConfidenceMeh agreeing epochs or up to the MaxIterations ceiling.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Sampling:
		return "sampling"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	default:
		return "invalid"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Controller is the stopping rule of the sampling of a coefficient.
//
// The caller takes one measurement per iteration; after it, if [Controller.EvaluationDue]
// it classifies and feeds the guess to [Controller.Observe], then calls
// [Controller.Advance], until the state leaves Sampling.
//
// The first epoch only sets the baseline guess and leaves the confidence at 0,
// so a constant guess converges on epoch ConfidenceHigh+1.
type Controller struct {
	params     Parameters
	iteration  int
	epochs     int
	confidence int
	last       Guess
	guess      Guess
	state      State
	extended   bool
	ceiling    bool
}

// NewController creates a Controller in the Sampling state.
func NewController(params Parameters) *Controller {
	return &Controller{params: params}
}

// Reset puts the controller back in its initial state.
func (c *Controller) Reset() {
	*c = Controller{params: c.params}
}

// EvaluationDue returns true if the current iteration ends an epoch.
func (c *Controller) EvaluationDue() bool {
	return uint64(c.iteration)&c.params.evaluateMask == 0
}

// PrintDue returns true if the current iteration is flagged for display.
func (c *Controller) PrintDue() bool {
	return uint64(c.iteration)&c.params.printMask == 0
}

// Observe records the guess of the epoch ending at the current iteration. The
// confidence grows by one if the guess is known and equal to the previous one and
// drops to zero otherwise.
func (c *Controller) Observe(g Guess) {
	c.last, c.guess = c.guess, g
	c.epochs++
	if g.Known && c.last == g {
		c.confidence++
	} else {
		c.confidence = 0
	}
}

// Advance ends the current iteration and returns the resulting state.
func (c *Controller) Advance() State {

	if c.state != Sampling {
		return c.state
	}

	c.iteration++

	switch {
	case c.confidence >= c.params.confidenceHigh:
		c.state = Converged
	case c.iteration >= c.params.defaultIterations && c.confidence >= c.params.confidenceMeh:
		c.state = Exhausted
	case c.iteration >= c.params.maxIterations:
		c.state = Exhausted
		c.ceiling = true
	case c.iteration >= c.params.defaultIterations:
		c.extended = true
	}

	return c.state
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Iteration returns the number of completed iterations.
func (c *Controller) Iteration() int {
	return c.iteration
}

// Epochs returns the number of observed epochs.
func (c *Controller) Epochs() int {
	return c.epochs
}

// Confidence returns the current confidence counter.
func (c *Controller) Confidence() int {
	return c.confidence
}

// Guess returns the guess of the last observed epoch.
func (c *Controller) Guess() Guess {
	return c.guess
}

// Extended returns true if sampling continued past DefaultIterations.
func (c *Controller) Extended() bool {
	return c.extended
}

// Ceiling returns true if sampling stopped at MaxIterations.
func (c *Controller) Ceiling() bool {
	return c.ceiling
}
