package attack

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antoonpurnal/clangover/kyber"
	"github.com/antoonpurnal/clangover/ring"
	"github.com/antoonpurnal/clangover/utils/sampling"
)

func testString(opname string, params Parameters) string {
	return fmt.Sprintf("%s/K=%d/iter=%d/meh=%d/high=%d/mask=%#x", opname, params.Rank(), params.DefaultIterations(), params.ConfidenceMeh(), params.ConfidenceHigh(), params.EvaluateMask())
}

const (
	testBase = 10000
	testLeak = 120
)

// fakeClock is advanced by the fake victims only.
type fakeClock struct {
	now uint64
}

func (c *fakeClock) Cycles() uint64 {
	return c.now
}

// tableVictim charges a fixed cost per known ciphertext: the base cost, plus
// testLeak if the ciphertext decrypts to a message with bit 0 set.
type tableVictim struct {
	params    kyber.Parameters
	clock     *fakeClock
	costs     map[string]uint64
	calls     int
	failAfter int
}

func newTableVictim(t *testing.T) *tableVictim {
	params, err := kyber.NewParametersFromLiteral(kyber.Kyber512)
	require.NoError(t, err)

	v := &tableVictim{
		params: params,
		clock:  &fakeClock{},
		costs:  map[string]uint64{},
	}

	ref, err := NewCrafter(params).Reference()
	require.NoError(t, err)
	v.costs[string(ref)] = testBase

	return v
}

// program sets the costs of the classes of coefficient index so that the attack
// classes follow pattern p.
func (v *tableVictim) program(t *testing.T, index int, p Pattern) {
	cts, err := Craft(v.params, index)
	require.NoError(t, err)
	for class, ct := range cts {
		var bit bool
		switch class {
		case KnownZero:
		case KnownOne:
			bit = true
		default:
			bit = p[class]
		}
		cost := uint64(testBase)
		if bit {
			cost += testLeak
		}
		v.costs[string(ct)] = cost
	}
}

// programValue programs the canonical pattern of value at index.
func (v *tableVictim) programValue(t *testing.T, index int, value int16) {
	p, ok := DefaultDecoder.Pattern(value, index)
	require.True(t, ok)
	v.program(t, index, p)
}

func (v *tableVictim) Name() string {
	return "table"
}

func (v *tableVictim) Parameters() kyber.Parameters {
	return v.params
}

func (v *tableVictim) Decapsulate(ct []byte) error {
	v.calls++
	if v.failAfter > 0 && v.calls > v.failAfter {
		return errors.New("oracle failure")
	}
	cost, ok := v.costs[string(ct)]
	if !ok {
		return errors.New("unprogrammed ciphertext")
	}
	v.clock.now += cost
	return nil
}

func newTestPRNG(t *testing.T) *sampling.KeyedPRNG {
	prng, err := sampling.NewKeyedPRNG([]byte("attack test"))
	require.NoError(t, err)
	return prng
}

func newTestParameters(t *testing.T, pl ParametersLiteral) Parameters {
	params, err := NewParametersFromLiteral(pl)
	require.NoError(t, err)
	return params
}

func TestParameters(t *testing.T) {

	t.Run("Defaults", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{})
		require.Equal(t, 2, params.Rank())
		require.Equal(t, ring.N, params.RingDimension())
		require.Equal(t, 512, params.Total())
		require.Equal(t, 0, params.Start())
		require.Equal(t, 512, params.Count())
		require.Equal(t, DefaultIterations, params.DefaultIterations())
		require.Equal(t, DefaultConfidenceMeh, params.ConfidenceMeh())
		require.Equal(t, DefaultConfidenceHigh, params.ConfidenceHigh())
		require.Equal(t, uint64(DefaultEvaluateMask), params.EvaluateMask())
		require.Equal(t, 512, params.EpochLength())
		require.Equal(t, uint64(DefaultPrintMask), params.PrintMask())
		require.Equal(t, float64(DefaultOutlierThreshold), params.OutlierThreshold())
		require.Equal(t, DefaultMaxIterations, params.MaxIterations())

		other := newTestParameters(t, params.ParametersLiteral())
		require.True(t, params.Equal(&other))
	})

	t.Run("Range", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{Start: 300})
		require.Equal(t, 212, params.Count())

		params = newTestParameters(t, ParametersLiteral{Rank: 3, Start: 10, Count: 5})
		require.Equal(t, 768, params.Total())
		require.Equal(t, 5, params.Count())
	})

	t.Run("ConfidenceMeh", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{ConfidenceHigh: 2})
		require.Equal(t, 2, params.ConfidenceMeh())
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, pl := range []ParametersLiteral{
			{Rank: -1},
			{Start: 512},
			{Start: -1},
			{Start: 500, Count: 13},
			{DefaultIterations: -5},
			{ConfidenceMeh: 16, ConfidenceHigh: 15},
			{EvaluateMask: 0x200},
			{PrintMask: 0x1FFE},
			{OutlierThreshold: -1},
			{DefaultIterations: 1000, MaxIterations: 999},
		} {
			_, err := NewParametersFromLiteral(pl)
			require.Error(t, err, pl)
		}
	})
}

func TestStatistics(t *testing.T) {

	prng := newTestPRNG(t)

	t.Run("Mean", func(t *testing.T) {
		stats := NewStatistics(DefaultOutlierThreshold)

		var sums [NbClasses]float64
		var counts [NbClasses]uint64
		for i := 0; i < 10000; i++ {
			class, err := sampling.RandIntN(prng, NbClasses)
			require.NoError(t, err)
			delta, err := sampling.RandFloat64(prng, -1999, 1999)
			require.NoError(t, err)
			require.True(t, stats.Update(class, delta))
			sums[class] += delta
			counts[class]++
		}

		for class := 0; class < NbClasses; class++ {
			require.Equal(t, counts[class], stats.Count(class))
			require.InDelta(t, sums[class]/float64(counts[class]), stats.Mean(class), 1e-9)
		}
		require.Equal(t, uint64(10000), stats.Accepted())
		require.Zero(t, stats.Discarded())
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		deltas := []float64{12, -7.5, 300, 0.25, -1999, 1500, 42}
		s0 := NewStatistics(DefaultOutlierThreshold)
		s1 := NewStatistics(DefaultOutlierThreshold)
		for i := range deltas {
			s0.Update(3, deltas[i])
			s1.Update(3, deltas[len(deltas)-1-i])
		}
		require.InDelta(t, s0.Mean(3), s1.Mean(3), 1e-9)
	})

	t.Run("Outliers", func(t *testing.T) {
		stats := NewStatistics(DefaultOutlierThreshold)
		stats.Update(KnownOne, 100)
		stats.Update(KnownZero, -50)
		means, counts := stats.Means(), stats.Counts()

		outliers := []float64{2000, -2000, 2000.5, -1e9, 1e12}
		for i, d := range outliers {
			require.False(t, stats.Update(i%NbClasses, d))
			require.False(t, stats.Update(KnownOne, d))
		}

		require.Equal(t, uint64(2*len(outliers)), stats.Discarded())
		require.Equal(t, means, stats.Means())
		require.Equal(t, counts, stats.Counts())

		require.True(t, stats.Update(KnownOne, 1999.999))
	})

	t.Run("Reset", func(t *testing.T) {
		stats := NewStatistics(10)
		stats.Update(0, 5)
		stats.Update(0, 50)
		stats.Reset()
		require.Zero(t, stats.Mean(0))
		require.Zero(t, stats.Count(0))
		require.Zero(t, stats.Discarded())
	})
}

func TestClassifier(t *testing.T) {

	t.Run("Bit", func(t *testing.T) {
		require.False(t, Bit(0, 100, 10))
		require.True(t, Bit(0, 100, 90))
		require.True(t, Bit(0, 100, 250))
		require.False(t, Bit(0, 100, -20))
		// ties decode to 0
		require.False(t, Bit(0, 100, 50))
		require.False(t, Bit(0, 0, 0))
		// references may be swapped
		require.True(t, Bit(100, 0, 10))
	})

	t.Run("Classify", func(t *testing.T) {
		for _, p := range CanonicalPatterns {
			var means [NbClasses]float64
			means[KnownZero], means[KnownOne] = -3, 117
			for class, b := range p {
				if b {
					means[class] = 110 + float64(class)
				} else {
					means[class] = 5 - float64(class)
				}
			}
			require.Equal(t, p, Classify(means))
		}
	})
}

func TestDecoder(t *testing.T) {

	t.Run("Canonical", func(t *testing.T) {
		for r, p := range CanonicalPatterns {
			value := int16(r - 3)
			for _, index := range []int{0, 256} {
				require.Equal(t, Known(value), DefaultDecoder.Decode(p, index), "row %d index %d", r, index)
				have, ok := DefaultDecoder.Pattern(value, index)
				require.True(t, ok)
				require.Equal(t, p, have)
			}
			for _, index := range []int{1, 255, 257, 511} {
				require.Equal(t, Known(-value), DefaultDecoder.Decode(p, index), "row %d index %d", r, index)
				have, ok := DefaultDecoder.Pattern(-value, index)
				require.True(t, ok)
				require.Equal(t, p, have)
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		p := CanonicalPatterns[5]
		require.Equal(t, DefaultDecoder.Decode(p, 17), DefaultDecoder.Decode(p, 17))
	})

	t.Run("Unknown", func(t *testing.T) {
		known := 0
		for x := 0; x < 1<<NbAttackClasses; x++ {
			var p Pattern
			for i := range p {
				p[i] = (x>>i)&1 == 1
			}
			g := DefaultDecoder.Decode(p, 0)
			if g.Known {
				known++
			} else {
				require.Equal(t, Unknown, g)
			}
		}
		require.Equal(t, NbAttackClasses, known)
		require.Equal(t, "??", Unknown.String())
		require.False(t, Unknown.Matches(0))
		require.True(t, Known(-2).Matches(-2))
	})

	t.Run("Range", func(t *testing.T) {
		lo, hi := DefaultDecoder.Range()
		require.Equal(t, int16(-3), lo)
		require.Equal(t, int16(3), hi)
		_, ok := DefaultDecoder.Pattern(4, 0)
		require.False(t, ok)
		_, ok = DefaultDecoder.Pattern(-4, 1)
		require.False(t, ok)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := NewDecoder(CanonicalPatterns[:6])
		require.Error(t, err)

		rows := append([]Pattern{}, CanonicalPatterns...)
		rows[6] = rows[0]
		_, err = NewDecoder(rows)
		require.Error(t, err)

		require.Panics(t, func() { MustNewDecoder(rows) })
		require.Equal(t, CanonicalPatterns, DefaultDecoder.Rows())
	})

	t.Run("ParsePattern", func(t *testing.T) {
		for _, p := range CanonicalPatterns {
			have, err := ParsePattern(p.String())
			require.NoError(t, err)
			require.Equal(t, p, have)
		}
		require.Equal(t, "[0 0 1 0 1 0 1]", CanonicalPatterns[0].String())
		_, err := ParsePattern("010")
		require.Error(t, err)
		_, err = ParsePattern("01020101")
		require.Error(t, err)
		_, err = ParsePattern("0102010")
		require.Error(t, err)
	})
}

// drive runs the controller loop feeding guess(epoch) at each evaluation.
func drive(c *Controller, guess func(epoch int) Guess) {
	for c.State() == Sampling {
		if c.EvaluationDue() {
			c.Observe(guess(c.Epochs()))
		}
		c.Advance()
	}
}

func TestController(t *testing.T) {

	t.Run("Converged", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{})
		c := NewController(params)
		drive(c, func(int) Guess { return Known(-2) })

		require.Equal(t, Converged, c.State())
		require.Equal(t, params.ConfidenceHigh(), c.Confidence())
		// one baseline epoch then ConfidenceHigh agreeing epochs
		require.Equal(t, params.ConfidenceHigh()+1, c.Epochs())
		require.Equal(t, params.ConfidenceHigh()*params.EpochLength()+1, c.Iteration())
		require.Equal(t, Known(-2), c.Guess())
		require.False(t, c.Extended())
		require.False(t, c.Ceiling())
	})

	t.Run("Baseline", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{})
		c := NewController(params)
		require.True(t, c.EvaluationDue())
		c.Observe(Known(3))
		require.Equal(t, 0, c.Confidence())
		require.Equal(t, Known(3), c.Guess())
		require.Equal(t, Sampling, c.Advance())
	})

	t.Run("ConvergedAfterUnknowns", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{})
		c := NewController(params)
		drive(c, func(epoch int) Guess {
			if epoch < 4 {
				return Unknown
			}
			return Known(1)
		})
		require.Equal(t, Converged, c.State())
		require.Equal(t, 4+params.ConfidenceHigh()+1, c.Epochs())
	})

	t.Run("Reset", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{})
		c := NewController(params)
		drive(c, func(int) Guess { return Known(0) })
		c.Reset()
		require.Equal(t, Sampling, c.State())
		require.Zero(t, c.Iteration())
		require.Zero(t, c.Confidence())
		require.Equal(t, Unknown, c.Guess())
	})

	t.Run("Disagreement", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{DefaultIterations: 1 << 14})
		c := NewController(params)
		for i := 0; i < 5; i++ {
			c.Observe(Known(1))
		}
		require.Equal(t, 4, c.Confidence())
		c.Observe(Known(2))
		require.Zero(t, c.Confidence())
		c.Observe(Unknown)
		c.Observe(Unknown)
		require.Zero(t, c.Confidence())
	})

	t.Run("Exhausted", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{DefaultIterations: 4096, EvaluateMask: 0x3F})
		c := NewController(params)
		// never reaches ConfidenceHigh: agreement resets every 8 epochs
		drive(c, func(epoch int) Guess { return Known(int16(epoch / 8 % 2)) })

		require.Equal(t, Exhausted, c.State())
		require.Equal(t, params.DefaultIterations(), c.Iteration())
		require.False(t, c.Extended())
		require.False(t, c.Ceiling())
	})

	t.Run("Extended", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{DefaultIterations: 4096, EvaluateMask: 0x3F})
		c := NewController(params)
		// unknown until the budget is spent, then stable
		drive(c, func(epoch int) Guess {
			if epoch*params.EpochLength() < params.DefaultIterations()+1000 {
				return Unknown
			}
			return Known(3)
		})

		require.Equal(t, Exhausted, c.State())
		require.Equal(t, params.ConfidenceMeh(), c.Confidence())
		require.Equal(t, Known(3), c.Guess())
		require.Greater(t, c.Iteration(), params.DefaultIterations())
		require.True(t, c.Extended())
		require.False(t, c.Ceiling())
	})

	t.Run("Ceiling", func(t *testing.T) {
		params := newTestParameters(t, ParametersLiteral{DefaultIterations: 1024, MaxIterations: 4096, EvaluateMask: 0x3F})
		c := NewController(params)
		drive(c, func(int) Guess { return Unknown })

		require.Equal(t, Exhausted, c.State())
		require.Equal(t, 4096, c.Iteration())
		require.True(t, c.Extended())
		require.True(t, c.Ceiling())
		require.Equal(t, Unknown, c.Guess())
	})

	t.Run("String", func(t *testing.T) {
		require.Equal(t, "sampling", Sampling.String())
		require.Equal(t, "converged", Converged.String())
		require.Equal(t, "exhausted", Exhausted.String())
	})
}

func TestCrafter(t *testing.T) {

	params, err := kyber.NewParametersFromLiteral(kyber.Kyber512)
	require.NoError(t, err)

	t.Run("Reference", func(t *testing.T) {
		ref, err := NewCrafter(params).Reference()
		require.NoError(t, err)
		require.Equal(t, make([]byte, params.CiphertextSize()), ref)
	})

	for _, index := range []int{0, 1, 255, 256, 300, 511} {
		t.Run(fmt.Sprintf("Craft/index=%d", index), func(t *testing.T) {
			cts, err := Craft(params, index)
			require.NoError(t, err)
			require.Len(t, cts, NbClasses)

			u := ring.NewVector(params.K())
			v := ring.NewPoly()
			for class, ct := range cts {
				require.Len(t, ct, params.CiphertextSize())
				require.NoError(t, params.DecodeCiphertext(ct, u, v))

				um, vm := Magnitudes(class)
				for b := range u {
					for j := range u[b].Coeffs {
						want := uint16(0)
						if b == Block(index) && j == Position(index) {
							want = ring.Decompress(ring.Compress(um, params.Du()), params.Du())
						}
						require.Equal(t, want, u[b].Coeffs[j])
					}
				}
				require.Equal(t, ring.Decompress(ring.Compress(vm, params.Dv()), params.Dv()), v.Coeffs[0])
				for j := 1; j < ring.N; j++ {
					require.Zero(t, v.Coeffs[j])
				}
			}
		})
	}

	t.Run("Craft/OutOfRange", func(t *testing.T) {
		_, err := Craft(params, 512)
		require.Error(t, err)
		_, err = Craft(params, -1)
		require.Error(t, err)
	})

	t.Run("Position", func(t *testing.T) {
		require.Equal(t, 0, Position(0))
		require.Equal(t, 255, Position(1))
		require.Equal(t, 0, Position(256))
		require.Equal(t, 1, Position(511))
		require.Equal(t, 1, Block(256))
		require.False(t, Negated(256))
		require.True(t, Negated(257))
	})
}

func TestSampler(t *testing.T) {

	victim := newTableVictim(t)
	victim.programValue(t, 0, 2)

	ref, err := NewCrafter(victim.params).Reference()
	require.NoError(t, err)
	cts, err := Craft(victim.params, 0)
	require.NoError(t, err)

	sampler := NewSampler(victim, victim.clock, newTestPRNG(t), ref)

	_, _, err = sampler.Sample()
	require.Error(t, err)

	require.Error(t, sampler.Load(cts[:3]))
	require.NoError(t, sampler.Load(cts))

	pattern, _ := DefaultDecoder.Pattern(2, 0)

	var seen [NbClasses]int
	for i := 0; i < 900; i++ {
		class, delta, err := sampler.Sample()
		require.NoError(t, err)
		seen[class]++

		bit := class == KnownOne || (class < NbAttackClasses && pattern[class])
		if bit {
			require.Equal(t, float64(testLeak), delta)
		} else {
			require.Zero(t, delta)
		}
	}
	for class := range seen {
		require.Greater(t, seen[class], 50, ClassName(class))
	}
	require.Equal(t, 1800, victim.calls)

	victim.failAfter = victim.calls + 1
	_, _, err = sampler.Sample()
	require.Error(t, err)
}

type recordingObserver struct {
	epochs    []Snapshot
	finalized []Result
}

func (o *recordingObserver) Epoch(s Snapshot)   { o.epochs = append(o.epochs, s) }
func (o *recordingObserver) Finalized(r Result) { o.finalized = append(o.finalized, r) }

func TestEngine(t *testing.T) {

	t.Run(testString("Recover/Zero", newTestParameters(t, ParametersLiteral{})), func(t *testing.T) {
		victim := newTableVictim(t)
		victim.programValue(t, 0, 0)

		params := newTestParameters(t, ParametersLiteral{Count: 1})
		obs := &recordingObserver{}
		engine, err := NewEngine(params, victim, victim.clock, WithPRNG(newTestPRNG(t)), WithObserver(obs))
		require.NoError(t, err)

		res, err := engine.Recover(0)
		require.NoError(t, err)

		// the first epoch ends after a single measurement and knows nothing
		require.Equal(t, Unknown, obs.epochs[0].Guess)
		require.Equal(t, 0, obs.epochs[0].Iteration)
		require.True(t, obs.epochs[0].Print)

		// the second one decodes the coefficient
		require.Equal(t, Known(0), obs.epochs[1].Guess)
		require.Equal(t, params.EpochLength(), obs.epochs[1].Iteration)

		require.Equal(t, Known(0), res.Guess)
		require.Equal(t, Converged, res.State)
		require.False(t, res.Extended)
		require.False(t, res.Ceiling)
		require.Equal(t, params.ConfidenceHigh(), res.Confidence)
		require.Equal(t, params.ConfidenceHigh()+2, res.Epochs)
		require.Equal(t, (params.ConfidenceHigh()+1)*params.EpochLength()+1, res.Iterations)
		require.Zero(t, res.Discarded)
		require.Equal(t, 2*res.Iterations, victim.calls)
	})

	t.Run("Recover/Boundary", func(t *testing.T) {
		victim := newTableVictim(t)
		values := map[int]int16{0: 3, 1: 3, 2: -3, 256: -3, 511: 1}
		for index, value := range values {
			victim.programValue(t, index, value)
		}

		params := newTestParameters(t, ParametersLiteral{EvaluateMask: 0x3F})
		engine, err := NewEngine(params, victim, victim.clock, WithPRNG(newTestPRNG(t)))
		require.NoError(t, err)

		for index, value := range values {
			res, err := engine.Recover(index)
			require.NoError(t, err)
			require.Equal(t, Known(value), res.Guess, "index %d", index)
			require.Equal(t, Converged, res.State)
		}
	})

	t.Run("Recover/AbsentPattern", func(t *testing.T) {
		victim := newTableVictim(t)
		victim.program(t, 5, Pattern{true, true, true, true, true, true, true})

		params := newTestParameters(t, ParametersLiteral{DefaultIterations: 1024, MaxIterations: 2048, EvaluateMask: 0x3F})
		engine, err := NewEngine(params, victim, victim.clock, WithPRNG(newTestPRNG(t)))
		require.NoError(t, err)

		res, err := engine.Recover(5)
		require.NoError(t, err)
		require.Equal(t, Unknown, res.Guess)
		require.Equal(t, Exhausted, res.State)
		require.True(t, res.Extended)
		require.True(t, res.Ceiling)
		require.Equal(t, 2048, res.Iterations)
		require.Equal(t, Pattern{true, true, true, true, true, true, true}, res.Pattern)
	})

	t.Run("Run", func(t *testing.T) {
		victim := newTableVictim(t)
		truth := make([]int16, 512)
		for index := 250; index < 262; index++ {
			truth[index] = int16(index%7 - 3)
			victim.programValue(t, index, truth[index])
		}

		params := newTestParameters(t, ParametersLiteral{Start: 250, Count: 12, EvaluateMask: 0x3F})
		obs := &recordingObserver{}
		engine, err := NewEngine(params, victim, victim.clock, WithPRNG(newTestPRNG(t)), WithObserver(Observers{NopObserver{}, obs}))
		require.NoError(t, err)

		results, err := engine.Run()
		require.NoError(t, err)
		require.Equal(t, 12, results.Finalized())
		require.Len(t, results.Guesses, 512)
		require.Len(t, obs.finalized, 12)

		for index := range results.Guesses {
			if index < 250 || index >= 262 {
				require.Equal(t, Unknown, results.Guesses[index])
			} else {
				require.Equal(t, Known(truth[index]), results.Guesses[index])
			}
		}

		correct, wrong, unknown := results.Score(truth)
		require.Equal(t, 12, correct)
		require.Zero(t, wrong)
		require.Zero(t, unknown)
	})

	t.Run("Run/Abort", func(t *testing.T) {
		victim := newTableVictim(t)
		for index := 0; index < 4; index++ {
			victim.programValue(t, index, 0)
		}

		params := newTestParameters(t, ParametersLiteral{Count: 4, EvaluateMask: 0x3F})
		engine, err := NewEngine(params, victim, victim.clock, WithPRNG(newTestPRNG(t)))
		require.NoError(t, err)

		// the fastest convergence takes (ConfidenceHigh+1) epochs, so this budget
		// covers coefficient 0 with some slack but never coefficient 1 as well
		epochs := params.ConfidenceHigh() + 1
		victim.failAfter = 2*(epochs+epochs/2)*params.EpochLength()

		results, err := engine.Run()
		require.Error(t, err)
		require.Equal(t, 1, results.Finalized())
		require.Equal(t, Known(0), results.Guesses[0])
		require.Equal(t, Unknown, results.Guesses[1])
	})

	t.Run("RankMismatch", func(t *testing.T) {
		victim := newTableVictim(t)
		params := newTestParameters(t, ParametersLiteral{Rank: 3})
		_, err := NewEngine(params, victim, victim.clock)
		require.Error(t, err)
	})
}

func TestCalibrate(t *testing.T) {

	victim := newTableVictim(t)
	victim.programValue(t, 0, 0)

	cal, err := Calibrate(victim, victim.clock, 200)
	require.NoError(t, err)
	require.Equal(t, 200, cal.Samples)
	require.Zero(t, cal.Mean)
	require.Zero(t, cal.StdDev)
	require.Equal(t, float64(testLeak), cal.Signal)
	require.Equal(t, float64(testLeak), cal.SuggestedThreshold)

	_, err = Calibrate(victim, victim.clock, 10)
	require.Error(t, err)
}
