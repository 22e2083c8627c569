package attack

// Snapshot is the state of the sampling of a coefficient at the end of an epoch.
type Snapshot struct {
	Index      int
	Iteration  int
	Discarded  uint64
	Confidence int
	Means      [NbClasses]float64
	Counts     [NbClasses]uint64
	Pattern    Pattern
	Guess      Guess
	// Print is set on the epochs flagged by the print mask.
	Print bool
}

// Observer is notified of the progress of a run. Calls are synchronous and happen
// between measurements, never inside a timed section.
type Observer interface {
	Epoch(s Snapshot)
	Finalized(r Result)
}

// Observers fans out notifications to each of its elements, in order.
type Observers []Observer

// Epoch implements Observer.
func (o Observers) Epoch(s Snapshot) {
	for _, obs := range o {
		obs.Epoch(s)
	}
}

// Finalized implements Observer.
func (o Observers) Finalized(r Result) {
	for _, obs := range o {
		obs.Finalized(r)
	}
}

// NopObserver ignores all notifications.
type NopObserver struct{}

// Epoch implements Observer.
func (NopObserver) Epoch(Snapshot) {}

// Finalized implements Observer.
func (NopObserver) Finalized(Result) {}
