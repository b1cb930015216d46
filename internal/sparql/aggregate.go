package sparql

import (
	"github.com/graphfusion/graphfusion-go/internal/engine/logical"
	"github.com/graphfusion/graphfusion-go/internal/functions"
)

// compileAggregate lowers an algebra AggregateCall to its logical form.
func compileAggregate(a AggregateCall) logical.AggregateExpr {
	var arg logical.Expr
	if a.Arg != nil {
		arg = exprBridge{a.Arg}
	}
	return logical.AggregateExpr{
		As:           a.As,
		Func:         a.Func,
		Arg:          arg,
		Distinct:     a.Distinct,
		Separator:    a.Separator,
		HasSeparator: a.HasSeparator,
	}
}

// NewAccumulator builds the internal/functions.Accumulator for a
// compiled aggregate (spec §4.3 "Aggregates"), used by the executor
// (internal/engine/exec) once per group per aggregate expression.
func NewAccumulator(agg logical.AggregateExpr) functions.Accumulator {
	var acc functions.Accumulator
	switch agg.Func {
	case "COUNT":
		acc = functions.NewCount(agg.Arg == nil)
	case "SUM":
		acc = functions.NewSum()
	case "AVG":
		acc = functions.NewAvg()
	case "MIN":
		acc = functions.NewMin()
	case "MAX":
		acc = functions.NewMax()
	case "SAMPLE":
		acc = functions.NewSample()
	case "GROUP_CONCAT":
		acc = functions.NewGroupConcat(agg.Separator, agg.HasSeparator)
	default:
		acc = functions.NewSample()
	}
	if agg.Distinct {
		acc = functions.Distinct(acc)
	}
	return acc
}
