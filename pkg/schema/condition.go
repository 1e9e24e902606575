package schema

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// condition expressions see two maps: the object data built so far at the
// current nesting level and the caller-supplied global context.
//
//	current.status == "active" && global.tier != "free"

var (
	condMu    sync.RWMutex
	condCache = map[string]*vm.Program{}
)

func compileConditionProgram(src string) (*vm.Program, error) {
	condMu.RLock()
	if p, ok := condCache[src]; ok {
		condMu.RUnlock()
		return p, nil
	}
	condMu.RUnlock()

	program, err := expr.Compile(src, expr.Env(map[string]any{
		"current": map[string]any{},
		"global":  map[string]any{},
	}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", src, err)
	}

	condMu.Lock()
	if existing, ok := condCache[src]; ok {
		condMu.Unlock()
		return existing, nil
	}
	condCache[src] = program
	condMu.Unlock()
	return program, nil
}

// CompileCondition turns an expr-lang source string into a Condition.
// Programs are compiled once and cached process-wide. A condition that
// fails to evaluate at generation time resolves to false.
func CompileCondition(src string) (Condition, error) {
	program, err := compileConditionProgram(src)
	if err != nil {
		return nil, err
	}
	return func(current, global map[string]any) bool {
		if current == nil {
			current = map[string]any{}
		}
		if global == nil {
			global = map[string]any{}
		}
		out, err := expr.Run(program, map[string]any{
			"current": current,
			"global":  global,
		})
		if err != nil {
			return false
		}
		b, ok := out.(bool)
		return ok && b
	}, nil
}

// conditionOf resolves the effective inclusion condition for a field:
// an injected Condition wins, then a compiled ConditionExpr, then an
// always-true default. Expression compile errors surface here so that
// generation fails fast instead of silently including the field.
func conditionOf(f *Field) (Condition, error) {
	if f.Condition != nil {
		return f.Condition, nil
	}
	if f.ConditionExpr != "" {
		return CompileCondition(f.ConditionExpr)
	}
	return nil, nil
}

// EffectiveCondition returns the field's inclusion condition, or nil when
// the field is unconditional.
func (f *Field) EffectiveCondition() (Condition, error) {
	return conditionOf(f)
}
