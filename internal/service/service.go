// Package service ties the input document, the root collector and the
// assembly strategies together. It is shared by the CLI, the REPL and the
// HTTP server.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/input"
	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/pkg/models"
)

var (
	// ErrMaxRootsExceeded is returned when the selection exceeds the
	// configured maximum number of roots.
	ErrMaxRootsExceeded = errors.New("maximum number of roots exceeded")
	// ErrInvalidNumber is returned for a coefficient or evaluation point
	// that is not a decimal integer.
	ErrInvalidNumber = errors.New("invalid decimal integer")
)

// Service defines the operations exposed to the presentation layers.
type Service interface {
	// Prepare collects, decodes and selects the roots of doc.
	//
	// Parameters:
	//   - doc: The parsed input document.
	//   - k: The selection override, or -1 to use keys.k.
	//
	// Returns:
	//   - roots.Sequence: The selected roots in label order.
	//   - error: An apperrors.InputError on any input problem.
	Prepare(doc *input.Document, k int) (roots.Sequence, error)

	// Solve prepares the roots, assembles the polynomial with algoName and
	// verifies it.
	Solve(ctx context.Context, doc *input.Document, algoName string, k int) (*Solution, error)

	// Evaluate computes p(x) for ascending decimal coefficients.
	Evaluate(coefficients []string, x string) (*big.Int, error)
}

// Solution is the outcome of a successful Solve.
type Solution struct {
	Algorithm  string
	Roots      roots.Sequence
	Entries    map[string]roots.Entry
	Polynomial polynomial.Polynomial
	Duration   time.Duration
	Warnings   []string
}

// PolynomialService is the default Service implementation.
type PolynomialService struct {
	factory   polynomial.AssemblerFactory
	maxRoots  int
	observers []polynomial.ProgressObserver
}

var _ Service = (*PolynomialService)(nil)

// NewPolynomialService creates a service.
//
// Parameters:
//   - factory: The registry to retrieve assemblers from.
//   - maxRoots: The maximum number of selected roots (0 for no limit).
func NewPolynomialService(factory polynomial.AssemblerFactory, maxRoots int) *PolynomialService {
	return &PolynomialService{factory: factory, maxRoots: maxRoots}
}

// WithObservers adds progress observers notified by every Solve.
func (s *PolynomialService) WithObservers(observers ...polynomial.ProgressObserver) *PolynomialService {
	s.observers = append(s.observers, observers...)
	return s
}

// Prepare decodes every root entry and keeps the first k in label order.
func (s *PolynomialService) Prepare(doc *input.Document, k int) (roots.Sequence, error) {
	if doc == nil {
		return nil, apperrors.NewInputError(input.ErrInvalidDocument)
	}
	seq, err := roots.Collect(doc.Entries)
	if err != nil {
		return nil, apperrors.NewInputError(err)
	}
	selection := doc.SelectionCount(k)
	if s.maxRoots > 0 && selection > s.maxRoots {
		return nil, apperrors.NewInputError(fmt.Errorf("%w: %d requested, limit is %d", ErrMaxRootsExceeded, selection, s.maxRoots))
	}
	selected, err := roots.Select(seq, selection)
	if err != nil {
		return nil, apperrors.NewInputError(err)
	}
	return selected, nil
}

// Solve runs a single assembler. Verification failures are internal
// invariant violations, not input errors.
func (s *PolynomialService) Solve(ctx context.Context, doc *input.Document, algoName string, k int) (*Solution, error) {
	selected, err := s.Prepare(doc, k)
	if err != nil {
		return nil, err
	}
	if algoName == "" {
		algoName = polynomial.DefaultAlgorithm
	}
	assembler, err := s.factory.Get(algoName)
	if err != nil {
		return nil, err
	}

	values := selected.Values()
	start := time.Now()
	p, err := polynomial.AssembleObserved(ctx, assembler, nil, 0, values, s.observers...)
	if err != nil {
		return nil, apperrors.AssemblyError{Algorithm: assembler.Name(), Cause: err}
	}
	duration := time.Since(start)
	if err := polynomial.Verify(p, values); err != nil {
		return nil, apperrors.NewInvariantError(apperrors.WrapError(err, "%s", assembler.Name()))
	}

	return &Solution{
		Algorithm:  assembler.Name(),
		Roots:      selected,
		Entries:    IndexEntries(doc.Entries),
		Polynomial: p,
		Duration:   duration,
		Warnings:   doc.Warnings(),
	}, nil
}

// Evaluate parses the coefficients and x, then applies Horner's method.
func (s *PolynomialService) Evaluate(coefficients []string, x string) (*big.Int, error) {
	if len(coefficients) == 0 {
		return nil, apperrors.NewInputError(fmt.Errorf("%w: no coefficients", ErrInvalidNumber))
	}
	p, err := polynomial.Parse(coefficients)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Errorf("%w: %w", ErrInvalidNumber, err))
	}
	xv, ok := new(big.Int).SetString(strings.TrimSpace(x), 10)
	if !ok {
		return nil, apperrors.NewInputError(fmt.Errorf("%w: x = %q", ErrInvalidNumber, x))
	}
	return polynomial.EvaluateAt(p, xv), nil
}

// IndexEntries maps entry labels to entries.
func IndexEntries(entries []roots.Entry) map[string]roots.Entry {
	m := make(map[string]roots.Entry, len(entries))
	for _, e := range entries {
		m[e.Label] = e
	}
	return m
}

// BuildReport converts a solution to its wire form.
func BuildReport(sol *Solution) models.Report {
	p := sol.Polynomial
	views := make([]models.RootView, len(sol.Roots))
	for i, r := range sol.Roots {
		e := sol.Entries[r.Label]
		views[i] = models.RootView{Label: r.Label, Base: e.Base, Numeral: e.Numeral, Value: r.Value.String()}
	}
	return models.Report{
		Algorithm:    sol.Algorithm,
		K:            len(sol.Roots),
		Roots:        views,
		Coefficients: p.AscendingStrings(),
		Descending:   p.DescendingStrings(),
		Polynomial:   p.String(),
		Degree:       p.Degree(),
		MaxBitLen:    p.MaxBitLen(),
		Verified:     true,
		DurationMS:   float64(sol.Duration.Microseconds()) / 1000,
		Warnings:     sol.Warnings,
	}
}
