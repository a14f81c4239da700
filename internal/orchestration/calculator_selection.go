package orchestration

import (
	"sort"

	"github.com/agbru/ddmcalc/internal/valuation"
)

// AllModels selects every registered model.
const AllModels = "all"

// GetCalculatorsToRun resolves name against factory. "all" returns every
// registered calculator in model order; an unknown name returns nil.
func GetCalculatorsToRun(name string, factory valuation.CalculatorFactory) []valuation.Calculator {
	if name == AllModels {
		keys := factory.List()
		calcs := make([]valuation.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calcs = append(calcs, calc)
			}
		}
		sort.SliceStable(calcs, func(i, j int) bool {
			return calcs[i].Model() < calcs[j].Model()
		})
		return calcs
	}
	if calc, err := factory.Get(name); err == nil {
		return []valuation.Calculator{calc}
	}
	return nil
}
