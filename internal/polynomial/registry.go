package polynomial

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultAlgorithm is the strategy used when none is requested.
const DefaultAlgorithm = "convolution"

// AssemblerFactory creates Assembler instances by name.
type AssemblerFactory interface {
	// Create returns a fresh, uncached Assembler.
	Create(name string) (Assembler, error)
	// Get returns a cached Assembler, creating it on first use.
	Get(name string) (Assembler, error)
	// List returns the registered names, sorted.
	List() []string
	// Register adds or replaces a strategy.
	Register(name string, creator func() coreAssembler) error
	// GetAll returns every registered Assembler.
	GetAll() map[string]Assembler
}

// DefaultFactory is the thread-safe registry of assembly strategies.
type DefaultFactory struct {
	mu         sync.RWMutex
	creators   map[string]func() coreAssembler
	assemblers map[string]Assembler
}

// NewDefaultFactory creates a factory with the built-in strategies:
//   - "convolution": sequential convolution by each linear factor
//   - "tree": balanced product tree
//   - "synthetic": in-place synthetic multiplication
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:   make(map[string]func() coreAssembler),
		assemblers: make(map[string]Assembler),
	}

	_ = f.Register("convolution", func() coreAssembler { return &ConvolutionAssembler{} })
	_ = f.Register("tree", func() coreAssembler { return &TreeAssembler{} })
	_ = f.Register("synthetic", func() coreAssembler { return &SyntheticAssembler{} })

	return f
}

// Register adds a strategy. An existing registration with the same name is
// replaced and its cached instance dropped.
func (f *DefaultFactory) Register(name string, creator func() coreAssembler) error {
	if creator == nil {
		return fmt.Errorf("polynomial: nil creator for assembler %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.assemblers, name)
	return nil
}

// Create returns a new, uncached Assembler.
//
// Parameters:
//   - name: The name of the strategy.
//
// Returns:
//   - Assembler: A new Assembler instance.
//   - error: An *UnknownAssemblerError if the name is not registered.
func (f *DefaultFactory) Create(name string) (Assembler, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, &UnknownAssemblerError{Name: name}
	}
	return NewAssembler(creator()), nil
}

// Get returns the cached Assembler for name, creating it on first use.
func (f *DefaultFactory) Get(name string) (Assembler, error) {
	f.mu.RLock()
	if a, exists := f.assemblers[name]; exists {
		f.mu.RUnlock()
		return a, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if a, exists := f.assemblers[name]; exists {
		return a, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, &UnknownAssemblerError{Name: name}
	}
	a := NewAssembler(creator())
	f.assemblers[name] = a
	return a, nil
}

// List returns the registered names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll initializes and returns every registered Assembler. The returned
// map is a copy.
func (f *DefaultFactory) GetAll() map[string]Assembler {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.assemblers[name]; !exists {
			f.assemblers[name] = NewAssembler(creator())
		}
	}

	result := make(map[string]Assembler, len(f.assemblers))
	for name, a := range f.assemblers {
		result[name] = a
	}
	return result
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterAssembler registers a strategy in the global factory.
func RegisterAssembler(name string, creator func() coreAssembler) error {
	return globalFactory.Register(name, creator)
}
