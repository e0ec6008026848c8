package polynomial

import (
	"context"
	"math/big"
	"sort"
)

// MockAssembler is an Assembler with scripted behavior, exported so the
// orchestration, service and server tests can inject it.
type MockAssembler struct {
	// NameValue is returned by Name; "mock" when empty.
	NameValue string
	Result    Polynomial
	Err       error
	Fn        func(ctx context.Context, roots []*big.Int) (Polynomial, error)
}

// Name returns the configured name.
func (m *MockAssembler) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

// Assemble returns Result and Err, or calls Fn if provided.
func (m *MockAssembler) Assemble(ctx context.Context, progressChan chan<- ProgressUpdate, index int, roots []*big.Int) (Polynomial, error) {
	if m.Fn != nil {
		return m.Fn(ctx, roots)
	}
	if progressChan != nil {
		progressChan <- ProgressUpdate{AssemblerIndex: index, Value: 1.0}
	}
	return m.Result, m.Err
}

// TestFactory is an AssemblerFactory over a fixed set of assemblers.
type TestFactory struct {
	assemblers map[string]Assembler
}

// NewTestFactory creates a factory pre-populated with assemblers.
func NewTestFactory(assemblers map[string]Assembler) *TestFactory {
	if assemblers == nil {
		assemblers = make(map[string]Assembler)
	}
	return &TestFactory{assemblers: assemblers}
}

// Create returns the assembler by name.
func (f *TestFactory) Create(name string) (Assembler, error) {
	return f.Get(name)
}

// Get returns the assembler by name.
func (f *TestFactory) Get(name string) (Assembler, error) {
	a, ok := f.assemblers[name]
	if !ok {
		return nil, &UnknownAssemblerError{Name: name}
	}
	return a, nil
}

// List returns the assembler names, sorted.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.assemblers))
	for name := range f.assemblers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register is a no-op: assemblers are fixed at construction.
func (f *TestFactory) Register(string, func() coreAssembler) error {
	return nil
}

// GetAll returns a copy of the assembler map.
func (f *TestFactory) GetAll() map[string]Assembler {
	result := make(map[string]Assembler, len(f.assemblers))
	for k, v := range f.assemblers {
		result[k] = v
	}
	return result
}

// UnknownAssemblerError is returned when an assembler name is not found.
type UnknownAssemblerError struct {
	Name string
}

func (e *UnknownAssemblerError) Error() string {
	return "unknown assembler: " + e.Name
}
