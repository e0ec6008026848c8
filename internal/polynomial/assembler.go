package polynomial

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var (
	assembliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polyroots_assemblies_total",
			Help: "The total number of polynomial assemblies processed",
		},
		[]string{"algorithm", "status"},
	)
	assemblyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "polyroots_assembly_duration_seconds",
			Help: "The duration of polynomial assemblies in seconds",
		},
		[]string{"algorithm"},
	)
)

// Assembler is the public interface used by the orchestration layer to
// build a polynomial from its roots with a given strategy.
type Assembler interface {
	// Assemble expands the monic polynomial whose roots are exactly roots.
	// It is safe for concurrent use and honors context cancellation.
	// Progress updates are sent without blocking to progressChan.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - progressChan: The channel for sending progress updates (may be nil).
	//   - index: A unique index for the assembler instance.
	//   - roots: The roots, never mutated.
	//
	// Returns:
	//   - Polynomial: The monic polynomial of degree len(roots).
	//   - error: ctx.Err() on cancellation, or an internal defect.
	Assemble(ctx context.Context, progressChan chan<- ProgressUpdate, index int, roots []*big.Int) (Polynomial, error)

	// Name returns the registry name of the strategy (e.g. "convolution").
	Name() string
}

// coreAssembler is a pure assembly strategy.
type coreAssembler interface {
	AssembleCore(ctx context.Context, reporter ProgressReporter, roots []*big.Int) (Polynomial, error)
	Name() string
}

// PolyAssembler decorates a coreAssembler with progress reporting, metrics,
// tracing, logging and a structural check of the result.
type PolyAssembler struct {
	core coreAssembler
}

// NewAssembler wraps core. It panics if core is nil.
func NewAssembler(core coreAssembler) Assembler {
	if core == nil {
		panic("polynomial: the `coreAssembler` implementation cannot be nil")
	}
	return &PolyAssembler{core: core}
}

// Name delegates to the wrapped strategy.
func (a *PolyAssembler) Name() string {
	return a.core.Name()
}

// ObservableAssembler is an Assembler that reports progress to a
// ProgressSubject directly. PolyAssembler implements it.
type ObservableAssembler interface {
	Assembler
	AssembleWithObservers(ctx context.Context, subject *ProgressSubject, index int, roots []*big.Int) (Polynomial, error)
}

// Assemble registers a channel observer and delegates to
// AssembleWithObservers.
func (a *PolyAssembler) Assemble(ctx context.Context, progressChan chan<- ProgressUpdate, index int, roots []*big.Int) (Polynomial, error) {
	return AssembleObserved(ctx, a, progressChan, index, roots)
}

// AssembleObserved runs a with progress going to progressChan (if non-nil)
// and to every extra observer. Assemblers that are not observable only feed
// progressChan.
func AssembleObserved(ctx context.Context, a Assembler, progressChan chan<- ProgressUpdate, index int, roots []*big.Int, observers ...ProgressObserver) (Polynomial, error) {
	oa, ok := a.(ObservableAssembler)
	if !ok {
		return a.Assemble(ctx, progressChan, index, roots)
	}
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	for _, o := range observers {
		if o != nil {
			subject.Register(o)
		}
	}
	return oa.AssembleWithObservers(ctx, subject, index, roots)
}

// AssembleWithObservers runs the strategy with observer-based progress
// reporting.
//
// The empty root list short-circuits to the constant polynomial 1. For any
// other input the strategy result is checked to be monic of degree
// len(roots); a violation is reported as ErrNotMonic.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - subject: The progress subject. If nil, progress is ignored.
//   - index: A unique index for the assembler instance.
//   - roots: The roots, never mutated.
//
// Returns:
//   - Polynomial: The assembled polynomial.
//   - error: An error if one occurred.
func (a *PolyAssembler) AssembleWithObservers(ctx context.Context, subject *ProgressSubject, index int, roots []*big.Int) (result Polynomial, err error) {
	tracer := otel.Tracer("polynomial")
	ctx, span := tracer.Start(ctx, "Assemble")
	span.SetAttributes(
		attribute.String("algorithm", a.core.Name()),
		attribute.Int("roots", len(roots)),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		algoName := a.core.Name()
		assembliesTotal.WithLabelValues(algoName, status).Inc()
		assemblyDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Int("roots", len(roots)).
			Float64("duration", duration).
			Str("status", status).
			Msg("assembly completed")
	}()

	var reporter ProgressReporter
	if subject != nil {
		reporter = subject.AsProgressReporter(index)
	} else {
		reporter = func(float64) {}
	}

	if err := ctx.Err(); err != nil {
		return Polynomial{}, err
	}
	if len(roots) == 0 {
		reporter(1.0)
		return One(), nil
	}

	result, err = a.core.AssembleCore(ctx, reporter, roots)
	if err != nil {
		return Polynomial{}, err
	}
	if result.Len() != len(roots)+1 || !result.IsMonic() {
		return Polynomial{}, fmt.Errorf("%s: %w: degree %d for %d roots",
			a.core.Name(), ErrNotMonic, result.Degree(), len(roots))
	}
	reporter(1.0)
	return result, nil
}
