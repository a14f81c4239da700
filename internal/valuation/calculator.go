package valuation

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/agbru/ddmcalc/internal/errors"
)

// Calculator evaluates one dividend discount model.
type Calculator interface {
	// Name returns the display name of the model.
	Name() string
	// Model returns the model identifier.
	Model() Model
	// Validate checks the model's precondition, returning a
	// apperrors.PreconditionError when growth is not below the required return.
	Validate(in Input) error
	// Value computes the valuation. It never fails; an invalid input yields
	// an undefined Result.
	Value(in Input) Result
}

// Evaluate validates in and computes the valuation. A result that is
// undefined although the precondition holds is reported as
// apperrors.ErrArithmeticUndefined.
func Evaluate(calc Calculator, in Input) (float64, error) {
	if err := calc.Validate(in); err != nil {
		return 0, err
	}
	v, ok := calc.Value(in).Value()
	if !ok {
		return 0, fmt.Errorf("%s: %w", calc.Name(), apperrors.ErrArithmeticUndefined)
	}
	return v, nil
}

type zeroGrowthCalculator struct{}

func (zeroGrowthCalculator) Name() string { return ZeroGrowthModel.String() }
func (zeroGrowthCalculator) Model() Model { return ZeroGrowthModel }
func (zeroGrowthCalculator) Validate(in Input) error {
	if in.RequiredReturn <= 0 {
		return apperrors.ValidationError{Field: "return", Message: "required return must be positive"}
	}
	return nil
}
func (zeroGrowthCalculator) Value(in Input) Result {
	return ZeroGrowth(in.Dividend, in.RequiredReturn)
}

type gordonCalculator struct{}

func (gordonCalculator) Name() string { return GordonModel.String() }
func (gordonCalculator) Model() Model { return GordonModel }
func (gordonCalculator) Validate(in Input) error {
	if in.GrowthRate >= in.RequiredReturn {
		return apperrors.PreconditionError{
			Model:          GordonModel.String(),
			GrowthLabel:    "Growth rate",
			Growth:         in.GrowthRate,
			RequiredReturn: in.RequiredReturn,
		}
	}
	return nil
}
func (gordonCalculator) Value(in Input) Result {
	return GordonGrowth(in.Dividend, in.RequiredReturn, in.GrowthRate)
}

type multiStageCalculator struct{}

func (multiStageCalculator) Name() string { return MultiStageModel.String() }
func (multiStageCalculator) Model() Model { return MultiStageModel }
func (multiStageCalculator) Validate(in Input) error {
	if in.Years < 1 {
		return apperrors.ValidationError{Field: "years", Message: "at least one year of initial growth is required"}
	}
	if in.StableGrowth >= in.RequiredReturn {
		return apperrors.PreconditionError{
			Model:          MultiStageModel.String(),
			GrowthLabel:    "Stable growth rate",
			Growth:         in.StableGrowth,
			RequiredReturn: in.RequiredReturn,
		}
	}
	return nil
}
func (multiStageCalculator) Value(in Input) Result {
	return MultiStage(in.Dividend, in.RequiredReturn, in.InitialGrowth, in.Years, in.StableGrowth)
}

// NewCalculator returns the calculator for m.
func NewCalculator(m Model) (Calculator, error) {
	switch m {
	case ZeroGrowthModel:
		return zeroGrowthCalculator{}, nil
	case GordonModel:
		return gordonCalculator{}, nil
	case MultiStageModel:
		return multiStageCalculator{}, nil
	}
	return nil, fmt.Errorf("no calculator for %v", m)
}

// CalculatorFactory is a registry of calculators keyed by short name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// MustGet is like Get but panics on unknown names.
	MustGet(name string) Calculator
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns a copy of the registry.
	GetAll() map[string]Calculator
	// Register adds or replaces a calculator.
	Register(name string, calc Calculator)
}

// DefaultFactory is the thread-safe CalculatorFactory implementation.
type DefaultFactory struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory with the three models registered under
// "zero", "gordon" and "multistage".
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{calculators: make(map[string]Calculator)}
	for _, m := range Models {
		calc, _ := NewCalculator(m)
		f.Register(m.Key(), calc)
	}
	return f
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns a process-wide default factory. Calculators are
// stateless, so sharing them across sessions is safe.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() { globalFactory = NewDefaultFactory() })
	return globalFactory
}

// Register adds or replaces a calculator.
func (f *DefaultFactory) Register(name string, calc Calculator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calculators[name] = calc
}

// Get returns the calculator registered under name. Model aliases accepted
// by ParseModel resolve to their registry key.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if calc, ok := f.calculators[name]; ok {
		return calc, nil
	}
	if m, err := ParseModel(name); err == nil {
		if calc, ok := f.calculators[m.Key()]; ok {
			return calc, nil
		}
	}
	return nil, apperrors.ValidationError{Field: "model", Message: fmt.Sprintf("unknown model %q", name)}
}

// MustGet is like Get but panics on unknown names.
func (f *DefaultFactory) MustGet(name string) Calculator {
	calc, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return calc
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the registry.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]Calculator, len(f.calculators))
	for k, v := range f.calculators {
		all[k] = v
	}
	return all
}
