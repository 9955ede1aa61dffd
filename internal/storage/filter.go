package storage

import (
	"github.com/shopspring/decimal"
)

// Field names an item attribute a predicate can test.
type Field string

const (
	FieldName        Field = "name"
	FieldBrand       Field = "brand"
	FieldCategory    Field = "category"
	FieldSubCategory Field = "sub_category"
	FieldCondition   Field = "condition"
	FieldSize        Field = "size"
	FieldPrice       Field = "price"
	FieldStatus      Field = "status"
)

// Operator is the comparison a predicate applies to its field.
type Operator int8

const (
	// OpEquals is exact equality.
	OpEquals Operator = iota
	// OpEqualsFold is case-insensitive equality.
	OpEqualsFold
	// OpContainsFold is a case-insensitive substring match.
	OpContainsFold
	// OpGreaterOrEqual and OpLessOrEqual compare decimal values.
	OpGreaterOrEqual
	OpLessOrEqual
)

// Predicate is a single field test. Backends fold a list of predicates into
// one conjunctive filter; an empty list matches every row.
type Predicate struct {
	Field    Field
	Operator Operator
	Value    any
}

// StringValue returns Value as a string. Enum values are converted.
func (p Predicate) StringValue() string {
	switch v := p.Value.(type) {
	case string:
		return v
	case Category:
		return string(v)
	case SubCategory:
		return string(v)
	case Condition:
		return string(v)
	case ItemStatus:
		return string(v)
	}
	return ""
}

// DecimalValue returns Value as a decimal, or zero when it is not one.
func (p Predicate) DecimalValue() decimal.Decimal {
	if v, ok := p.Value.(decimal.Decimal); ok {
		return v
	}
	return decimal.Zero
}

// ItemSort is the ordering of a search result page.
type ItemSort int8

const (
	SortListedAtDesc ItemSort = iota
	SortListedAtAsc
	SortPriceAsc
	SortPriceDesc
)

// ItemQuery is a folded search: predicates plus ordering and pagination.
type ItemQuery struct {
	Predicates []Predicate
	Sort       ItemSort
	Limit      int
	Offset     int
}
