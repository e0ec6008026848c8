package polynomial

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
)

func builtinAssemblers() map[string]Assembler {
	return map[string]Assembler{
		"convolution": NewAssembler(&ConvolutionAssembler{}),
		"tree":        NewAssembler(&TreeAssembler{}),
		"synthetic":   NewAssembler(&SyntheticAssembler{}),
	}
}

func TestAssemblersAgree(t *testing.T) {
	t.Parallel()
	cases := map[string][]*big.Int{
		"empty":    nil,
		"single":   bigs(9),
		"scenario": bigs(4, 7, 12),
		"odd":      bigs(1, 2, 3, 4, 5),
		"repeated": bigs(3, 3, 3, 0),
		"negative": bigs(-2, 5, -11, 8, 0, 1, -1),
	}

	ctx := context.Background()
	for name, assembler := range builtinAssemblers() {
		assembler := assembler
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for caseName, roots := range cases {
				want := FromRoots(roots)
				got, err := assembler.Assemble(ctx, nil, 0, roots)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", caseName, err)
				}
				if !got.Equal(want) {
					t.Errorf("%s: got %v, want %v", caseName, got.AscendingStrings(), want.AscendingStrings())
				}
				if err := Verify(got, roots); err != nil {
					t.Errorf("%s: verification failed: %v", caseName, err)
				}
			}
		})
	}
}

func TestAssembleCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, assembler := range builtinAssemblers() {
		_, err := assembler.Assemble(ctx, nil, 0, bigs(1, 2, 3))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", name, err)
		}
	}
}

func TestAssembleReportsCompletion(t *testing.T) {
	t.Parallel()
	for name, assembler := range builtinAssemblers() {
		ch := make(chan ProgressUpdate, 256)
		if _, err := assembler.Assemble(context.Background(), ch, 3, bigs(1, 2, 3, 4)); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		close(ch)

		var last ProgressUpdate
		count := 0
		for u := range ch {
			if u.AssemblerIndex != 3 {
				t.Errorf("%s: update carries index %d, want 3", name, u.AssemblerIndex)
			}
			if u.Value < last.Value {
				t.Errorf("%s: progress went backwards: %f after %f", name, u.Value, last.Value)
			}
			last = u
			count++
		}
		if count == 0 || last.Value != 1.0 {
			t.Errorf("%s: expected final progress 1.0 after %d updates, got %f", name, count, last.Value)
		}
	}
}

type brokenCore struct{}

func (b *brokenCore) Name() string { return "broken" }

func (b *brokenCore) AssembleCore(_ context.Context, _ ProgressReporter, roots []*big.Int) (Polynomial, error) {
	p := FromRoots(roots)
	p.coeffs[len(p.coeffs)-1] = big.NewInt(2)
	return p, nil
}

func TestAssembleRejectsNonMonicResult(t *testing.T) {
	t.Parallel()
	_, err := NewAssembler(&brokenCore{}).Assemble(context.Background(), nil, 0, bigs(1, 2))
	if !errors.Is(err, ErrNotMonic) {
		t.Fatalf("expected ErrNotMonic, got %v", err)
	}
}

func TestNewAssemblerPanicsOnNil(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil core")
		}
	}()
	NewAssembler(nil)
}

type recordingObserver struct {
	mu      sync.Mutex
	updates []float64
}

func (r *recordingObserver) Update(_ int, progress float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, progress)
}

func TestAssembleWithObservers(t *testing.T) {
	t.Parallel()
	rec := &recordingObserver{}
	subject := NewProgressSubject()
	subject.Register(rec)

	a := &PolyAssembler{core: &ConvolutionAssembler{}}
	got, err := a.AssembleWithObservers(context.Background(), subject, 0, bigs(4, 7, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "1*x^3 - 23*x^2 + 160*x - 336" {
		t.Errorf("unexpected polynomial %s", got)
	}
	if len(rec.updates) == 0 || rec.updates[len(rec.updates)-1] != 1.0 {
		t.Errorf("expected final update 1.0, got %v", rec.updates)
	}

	if _, err := a.AssembleWithObservers(context.Background(), nil, 0, bigs(1)); err != nil {
		t.Errorf("nil subject should be accepted: %v", err)
	}
}

func TestAssembleObserved(t *testing.T) {
	t.Parallel()
	rec := &recordingObserver{}
	ch := make(chan ProgressUpdate, 64)

	got, err := AssembleObserved(context.Background(), NewAssembler(&TreeAssembler{}), ch, 3, bigs(4, 7, 12), rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "1*x^3 - 23*x^2 + 160*x - 336" {
		t.Errorf("unexpected polynomial %s", got)
	}
	if len(rec.updates) == 0 || rec.updates[len(rec.updates)-1] != 1.0 {
		t.Errorf("extra observer missed the final update: %v", rec.updates)
	}
	close(ch)
	var last ProgressUpdate
	for u := range ch {
		last = u
	}
	if last.AssemblerIndex != 3 || last.Value != 1.0 {
		t.Errorf("channel last update = %+v", last)
	}

	// Non-observable assemblers still feed the channel.
	mock := &MockAssembler{Result: FromInt64(-1, 1)}
	mockCh := make(chan ProgressUpdate, 1)
	if _, err := AssembleObserved(context.Background(), mock, mockCh, 0, bigs(1), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mockCh) != 1 {
		t.Error("expected the mock to report through the channel")
	}
}

func TestAssembleDoesNotMutateRoots(t *testing.T) {
	t.Parallel()
	for name, assembler := range builtinAssemblers() {
		roots := bigs(5, -3, 8)
		if _, err := assembler.Assemble(context.Background(), nil, 0, roots); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if roots[0].Int64() != 5 || roots[1].Int64() != -3 || roots[2].Int64() != 8 {
			t.Errorf("%s mutated its input: %v", name, roots)
		}
	}
}

func TestMockAssembler(t *testing.T) {
	t.Parallel()
	m := &MockAssembler{Result: FromInt64(-1, 1)}
	ch := make(chan ProgressUpdate, 1)
	got, err := m.Assemble(context.Background(), ch, 2, bigs(1))
	if err != nil || !got.Equal(FromInt64(-1, 1)) {
		t.Fatalf("unexpected result %v, %v", got.AscendingStrings(), err)
	}
	if u := <-ch; u.AssemblerIndex != 2 || u.Value != 1.0 {
		t.Errorf("unexpected progress update %+v", u)
	}
	if m.Name() != "mock" {
		t.Errorf("Name() = %q, want mock", m.Name())
	}
}
