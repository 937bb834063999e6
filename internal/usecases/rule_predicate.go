package usecases

import (
	"fmt"
	"regexp"
	"strconv"

	"wallet-sentinel.backend/internal/domain/entities"
)

// Rule expression grammar. Two forms are accepted:
//
//	value <op> <number>          e.g. "value > 1000000000000000000"
//	count <op> <n> in <seconds>  e.g. "count > 10 in 3600"
//
// Expressions are parsed once when the engine loads its rules; evaluation
// re-uses the parsed predicate without touching the regexp again.
var (
	valueExprPattern = regexp.MustCompile(`^\s*value\s*(>=|<=|==|>|<)\s*(\d+(?:\.\d+)?)\s*$`)
	countExprPattern = regexp.MustCompile(`^\s*count\s*(>=|<=|==|>|<)\s*(\d+)\s+in\s+(\d+)\s*$`)
)

type comparator string

const (
	cmpGT comparator = ">"
	cmpLT comparator = "<"
	cmpGE comparator = ">="
	cmpLE comparator = "<="
	cmpEQ comparator = "=="
)

func (c comparator) compare(left, right float64) bool {
	switch c {
	case cmpGT:
		return left > right
	case cmpLT:
		return left < right
	case cmpGE:
		return left >= right
	case cmpLE:
		return left <= right
	case cmpEQ:
		return left == right
	}
	return false
}

type predicateKind int

const (
	predicateValue predicateKind = iota
	predicateCountWindow
)

// rulePredicate is a rule expression parsed into typed form
type rulePredicate struct {
	kind      predicateKind
	op        comparator
	operand   float64
	count     int
	windowSec int64
}

// parsePredicate parses a rule expression string against the fixed grammar
func parsePredicate(expression string) (*rulePredicate, error) {
	if m := valueExprPattern.FindStringSubmatch(expression); m != nil {
		operand, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value operand %q: %w", m[2], err)
		}
		return &rulePredicate{
			kind:    predicateValue,
			op:      comparator(m[1]),
			operand: operand,
		}, nil
	}

	if m := countExprPattern.FindStringSubmatch(expression); m != nil {
		count, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("invalid count %q: %w", m[2], err)
		}
		window, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid window %q: %w", m[3], err)
		}
		return &rulePredicate{
			kind:      predicateCountWindow,
			op:        comparator(m[1]),
			count:     count,
			windowSec: window,
		}, nil
	}

	return nil, fmt.Errorf("expression %q matches no known rule form", expression)
}

// usableFor reports whether the predicate can be evaluated for the given
// rule type. Count-window predicates need transaction history, which only
// anomaly evaluation carries; contract rules fire on the interaction flag
// alone and take no expression at all.
func (p *rulePredicate) usableFor(ruleType entities.RuleType) error {
	switch ruleType {
	case entities.RuleTypeContract:
		return fmt.Errorf("%s rules take no expression", ruleType)
	case entities.RuleTypeAnomaly:
		return nil
	default:
		if p.kind == predicateCountWindow {
			return fmt.Errorf("count-window expressions require history, which %s rules are not evaluated with", ruleType)
		}
		return nil
	}
}

// matchesValue evaluates a value predicate against a bare reading, such as
// a wallet balance
func (p *rulePredicate) matchesValue(v float64) bool {
	return p.kind == predicateValue && p.op.compare(v, p.operand)
}

// matches evaluates the predicate against a transaction and its history
func (p *rulePredicate) matches(tx *entities.Transaction, history []*entities.Transaction) bool {
	switch p.kind {
	case predicateValue:
		return p.matchesValue(tx.Amount)
	case predicateCountWindow:
		if !tx.Timestamp.Valid {
			return false
		}
		end := tx.Timestamp.Int64
		inWindow := 0
		for _, prev := range history {
			if !prev.Timestamp.Valid {
				continue
			}
			diff := end - prev.Timestamp.Int64
			if diff >= 0 && diff < p.windowSec {
				inWindow++
			}
		}
		return p.op.compare(float64(inWindow), float64(p.count))
	}
	return false
}
