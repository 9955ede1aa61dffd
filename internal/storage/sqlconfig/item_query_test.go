package sqlconfig

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/resell-server/internal/storage"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", escapeLike("plain"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `t\_shirt`, escapeLike("t_shirt"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}

func TestPredicateExpression_UnknownOperator(t *testing.T) {
	_, ok := predicateExpression(storage.Predicate{Field: storage.FieldName, Operator: storage.Operator(42), Value: "x"})
	assert.False(t, ok)
}

func TestPredicateExpression_KnownOperators(t *testing.T) {
	for _, op := range []storage.Operator{
		storage.OpEquals, storage.OpEqualsFold, storage.OpContainsFold,
		storage.OpGreaterOrEqual, storage.OpLessOrEqual,
	} {
		_, ok := predicateExpression(storage.Predicate{Field: storage.FieldPrice, Operator: op, Value: decimal.NewFromInt(1)})
		assert.True(t, ok, "operator %d", op)
	}
}

func TestBuildWhere_Empty(t *testing.T) {
	assert.Empty(t, buildWhere(nil))
}

func TestBuildWhere_FoldsIntoOneClause(t *testing.T) {
	mods := buildWhere([]storage.Predicate{
		{Field: storage.FieldStatus, Operator: storage.OpEquals, Value: storage.ItemStatusAvailable},
		{Field: storage.FieldPrice, Operator: storage.OpGreaterOrEqual, Value: decimal.Zero},
		{Field: storage.FieldBrand, Operator: storage.OpContainsFold, Value: "levi"},
	})
	assert.Len(t, mods, 1)
}

func TestBuildWhere_UnknownOperatorMatchesNothing(t *testing.T) {
	mods := buildWhere([]storage.Predicate{
		{Field: storage.FieldStatus, Operator: storage.OpEquals, Value: storage.ItemStatusAvailable},
		{Field: storage.FieldName, Operator: storage.Operator(42), Value: "x"},
	})
	assert.Len(t, mods, 1)

	mods = append([]bob.Mod[*dialect.SelectQuery]{sm.Columns("count(*)")}, append(itemsFrom(), mods...)...)
	query, _, err := psql.Select(mods...).Build(context.Background())
	assert.NoError(t, err)
	assert.Contains(t, query, "FALSE")
}

func TestBuildOrder_TieBreaksOnID(t *testing.T) {
	for _, sort := range []storage.ItemSort{
		storage.SortListedAtDesc, storage.SortListedAtAsc, storage.SortPriceAsc, storage.SortPriceDesc,
	} {
		assert.Len(t, buildOrder(sort), 2)
	}
}
