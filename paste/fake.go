package paste

import "sync"

// FakeInjector records injected batches. Accept caps how many events of
// each batch are reported as accepted; a negative value accepts all.
type FakeInjector struct {
	mu      sync.Mutex
	batches [][]Event
	Accept  int
	Err     error
}

func NewFake() *FakeInjector {
	return &FakeInjector{Accept: -1}
}

func (f *FakeInjector) Inject(events []Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, append([]Event(nil), events...))
	if f.Err != nil {
		return 0, f.Err
	}
	if f.Accept >= 0 && f.Accept < len(events) {
		return f.Accept, nil
	}
	return len(events), nil
}

func (f *FakeInjector) Batches() [][]Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]Event(nil), f.batches...)
}

// Events flattens every batch in order.
func (f *FakeInjector) Events() []Event {
	var out []Event
	for _, b := range f.Batches() {
		out = append(out, b...)
	}
	return out
}
