package polynomial

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type constantCore struct{}

func (constantCore) Name() string { return "constant" }

func (constantCore) AssembleCore(_ context.Context, _ ProgressReporter, roots []*big.Int) (Polynomial, error) {
	return FromRoots(roots), nil
}

func TestDefaultFactoryList(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	if diff := cmp.Diff([]string{"convolution", "synthetic", "tree"}, f.List()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
	if _, err := f.Get(DefaultAlgorithm); err != nil {
		t.Errorf("default algorithm %q not registered", DefaultAlgorithm)
	}
}

func TestDefaultFactoryGetCaches(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	a1, err := f.Get("tree")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	a2, _ := f.Get("tree")
	if a1 != a2 {
		t.Error("Get should return the cached instance")
	}
	c, _ := f.Create("tree")
	if c == a1 {
		t.Error("Create should return a fresh instance")
	}
}

func TestDefaultFactoryUnknown(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	_, err := f.Get("nope")
	var ue *UnknownAssemblerError
	if !errors.As(err, &ue) || ue.Name != "nope" {
		t.Errorf("expected UnknownAssemblerError, got %v", err)
	}
	if _, err := f.Create("nope"); err == nil {
		t.Error("Create should fail for an unknown name")
	}
}

func TestDefaultFactoryRegisterReplaces(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	before, _ := f.Get("tree")
	if err := f.Register("tree", func() coreAssembler { return constantCore{} }); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	after, _ := f.Get("tree")
	if before == after || after.Name() != "constant" {
		t.Errorf("re-registration did not replace the cached assembler")
	}
	if err := f.Register("nil", nil); err == nil {
		t.Error("expected error for nil creator")
	}
}

func TestDefaultFactoryGetAll(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	all := f.GetAll()
	if len(all) != len(f.List()) {
		t.Fatalf("GetAll returned %d assemblers, want %d", len(all), len(f.List()))
	}
	for name, a := range all {
		if a.Name() != name {
			t.Errorf("assembler registered as %q reports name %q", name, a.Name())
		}
	}
	delete(all, "tree")
	if _, err := f.Get("tree"); err != nil {
		t.Error("GetAll must return a copy")
	}
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	if GlobalFactory() != GlobalFactory() {
		t.Error("GlobalFactory should be a singleton")
	}
	if _, err := GlobalFactory().Get(DefaultAlgorithm); err != nil {
		t.Errorf("default algorithm missing from global factory: %v", err)
	}
}

func TestTestFactory(t *testing.T) {
	t.Parallel()
	m := &MockAssembler{NameValue: "m"}
	f := NewTestFactory(map[string]Assembler{"m": m, "a": &MockAssembler{}})
	if diff := cmp.Diff([]string{"a", "m"}, f.List()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
	got, err := f.Create("m")
	if err != nil || got != m {
		t.Errorf("Create(m) = %v, %v", got, err)
	}
	if _, err := f.Get("x"); err == nil {
		t.Error("expected error for unknown assembler")
	}
	if len(f.GetAll()) != 2 {
		t.Error("GetAll should return both assemblers")
	}
	if len(NewTestFactory(nil).List()) != 0 {
		t.Error("nil map should yield an empty factory")
	}
}
