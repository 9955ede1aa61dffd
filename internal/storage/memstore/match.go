package memstore

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/resell-server/internal/storage"
)

func stringField(item *storage.Item, field storage.Field) (string, bool) {
	switch field {
	case storage.FieldName:
		return item.Name, true
	case storage.FieldBrand:
		return item.Brand, true
	case storage.FieldCategory:
		return string(item.Category), true
	case storage.FieldSubCategory:
		return string(item.SubCategory), true
	case storage.FieldCondition:
		return string(item.Condition), true
	case storage.FieldSize:
		return item.Size, true
	case storage.FieldStatus:
		return string(item.Status), true
	}
	return "", false
}

func decimalField(item *storage.Item, field storage.Field) (decimal.Decimal, bool) {
	if field == storage.FieldPrice {
		return item.Price, true
	}
	return decimal.Zero, false
}

// matches evaluates one predicate. Unknown fields or operators never match.
func matches(item *storage.Item, p storage.Predicate) bool {
	switch p.Operator {
	case storage.OpGreaterOrEqual, storage.OpLessOrEqual:
		actual, ok := decimalField(item, p.Field)
		if !ok {
			return false
		}
		if p.Operator == storage.OpGreaterOrEqual {
			return actual.GreaterThanOrEqual(p.DecimalValue())
		}
		return actual.LessThanOrEqual(p.DecimalValue())
	}

	actual, ok := stringField(item, p.Field)
	if !ok {
		return false
	}
	want := p.StringValue()
	switch p.Operator {
	case storage.OpEquals:
		return actual == want
	case storage.OpEqualsFold:
		return strings.EqualFold(actual, want)
	case storage.OpContainsFold:
		return strings.Contains(strings.ToLower(actual), strings.ToLower(want))
	}
	return false
}

func matchesAll(item *storage.Item, predicates []storage.Predicate) bool {
	for _, p := range predicates {
		if !matches(item, p) {
			return false
		}
	}
	return true
}
