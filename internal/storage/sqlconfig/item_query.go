package sqlconfig

import (
	"strings"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"

	"github.com/carson-networks/resell-server/internal/storage"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input literal inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// predicateExpression translates one predicate into a where expression on the items alias.
func predicateExpression(p storage.Predicate) (bob.Expression, bool) {
	col := psql.Quote("i", string(p.Field))
	switch p.Operator {
	case storage.OpEquals:
		return col.EQ(psql.Arg(p.StringValue())), true
	case storage.OpEqualsFold:
		return col.ILike(psql.Arg(escapeLike(p.StringValue()))), true
	case storage.OpContainsFold:
		return col.ILike(psql.Arg("%" + escapeLike(p.StringValue()) + "%")), true
	case storage.OpGreaterOrEqual:
		return col.GTE(psql.Arg(p.DecimalValue())), true
	case storage.OpLessOrEqual:
		return col.LTE(psql.Arg(p.DecimalValue())), true
	}
	return nil, false
}

// matchNothing stands in for a predicate that cannot be translated, so the
// search fails closed the same way the memory backend does.
var matchNothing = psql.Raw("FALSE")

// buildWhere folds the predicates into a single conjunctive where clause.
// No predicates means no where clause, which matches every row.
func buildWhere(predicates []storage.Predicate) []bob.Mod[*dialect.SelectQuery] {
	var exprs []bob.Expression
	for _, p := range predicates {
		expr, ok := predicateExpression(p)
		if !ok {
			expr = matchNothing
		}
		exprs = append(exprs, expr)
	}

	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return []bob.Mod[*dialect.SelectQuery]{sm.Where(exprs[0])}
	}
	return []bob.Mod[*dialect.SelectQuery]{sm.Where(psql.And(exprs...))}
}

func buildOrder(sort storage.ItemSort) []bob.Mod[*dialect.SelectQuery] {
	listedAt := psql.Quote("i", "listed_at")
	price := psql.Quote("i", "price")
	id := psql.Quote("i", "id")

	switch sort {
	case storage.SortListedAtAsc:
		return []bob.Mod[*dialect.SelectQuery]{sm.OrderBy(listedAt).Asc(), sm.OrderBy(id).Asc()}
	case storage.SortPriceAsc:
		return []bob.Mod[*dialect.SelectQuery]{sm.OrderBy(price).Asc(), sm.OrderBy(id).Asc()}
	case storage.SortPriceDesc:
		return []bob.Mod[*dialect.SelectQuery]{sm.OrderBy(price).Desc(), sm.OrderBy(id).Desc()}
	}
	return []bob.Mod[*dialect.SelectQuery]{sm.OrderBy(listedAt).Desc(), sm.OrderBy(id).Desc()}
}
