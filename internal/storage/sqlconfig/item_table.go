package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/resell-server/internal/storage"
)

const itemsTable = "items"

var itemColumns = []any{
	"i.id", "i.name", "i.brand", "i.category", "i.sub_category", "i.condition",
	"i.size", "i.price", "i.status", "i.seller_id", "i.listed_at",
	"u.username AS seller_username",
}

// Ensure ItemsTable implements IItemWriter at compile time.
var _ storage.IItemWriter = (*ItemsTable)(nil)

// ItemsTable provides access to the items table.
type ItemsTable struct {
	exec bob.Executor
}

// NewItemsTable creates an ItemsTable on the given executor (database or transaction).
func NewItemsTable(exec bob.Executor) *ItemsTable {
	return &ItemsTable{exec: exec}
}

func itemsFrom() []bob.Mod[*dialect.SelectQuery] {
	return []bob.Mod[*dialect.SelectQuery]{
		sm.From(itemsTable).As("i"),
		sm.InnerJoin(usersTable).As("u").OnEQ(psql.Quote("u", "id"), psql.Quote("i", "seller_id")),
	}
}

func (t *ItemsTable) findOne(ctx context.Context, mods ...bob.Mod[*dialect.SelectQuery]) (*storage.Item, error) {
	queryMods := append([]bob.Mod[*dialect.SelectQuery]{sm.Columns(itemColumns...)}, itemsFrom()...)
	queryMods = append(queryMods, mods...)
	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[storage.Item]())
	if err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

// FindByID retrieves an item by primary key, whatever its status.
func (t *ItemsTable) FindByID(ctx context.Context, id uuid.UUID) (*storage.Item, error) {
	return t.findOne(ctx, sm.Where(psql.Quote("i", "id").EQ(psql.Arg(id))))
}

// FindByIDForUpdate retrieves an item and locks its row (not the seller's) until the
// enclosing transaction ends. Concurrent purchases of the same item queue here.
func (t *ItemsTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*storage.Item, error) {
	return t.findOne(ctx,
		sm.Where(psql.Quote("i", "id").EQ(psql.Arg(id))),
		sm.ForUpdate("i"),
	)
}

// Exists reports whether an item with the given id exists.
func (t *ItemsTable) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From(itemsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	n, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Search returns a page of items matching every predicate, plus the total match count.
func (t *ItemsTable) Search(ctx context.Context, query *storage.ItemQuery) ([]*storage.Item, int64, error) {
	if query == nil {
		query = &storage.ItemQuery{}
	}
	where := buildWhere(query.Predicates)

	countMods := append([]bob.Mod[*dialect.SelectQuery]{sm.Columns("count(*)")}, itemsFrom()...)
	countMods = append(countMods, where...)
	total, err := bob.One(ctx, t.exec, psql.Select(countMods...), scan.SingleColumnMapper[int64])
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	queryMods := append([]bob.Mod[*dialect.SelectQuery]{sm.Columns(itemColumns...)}, itemsFrom()...)
	queryMods = append(queryMods, where...)
	queryMods = append(queryMods, buildOrder(query.Sort)...)
	if query.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(query.Limit))
	}
	if query.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(query.Offset))
	}

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[storage.Item]())
	if err != nil {
		return nil, 0, err
	}
	result := make([]*storage.Item, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, total, nil
}

// Insert creates a new AVAILABLE item and returns it with the seller joined.
func (t *ItemsTable) Insert(ctx context.Context, create *storage.ItemCreate) (*storage.Item, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	listedAt := create.ListedAt
	if listedAt.IsZero() {
		listedAt = time.Now().UTC()
	}

	q := psql.Insert(
		im.Into(itemsTable, "id", "name", "brand", "category", "sub_category", "condition",
			"size", "price", "status", "seller_id", "listed_at"),
		im.Values(psql.Arg(id, create.Name, create.Brand, string(create.Category), string(create.SubCategory),
			string(create.Condition), create.Size, create.Price, string(storage.ItemStatusAvailable),
			create.SellerID, listedAt)),
	)
	if _, err := q.Exec(ctx, t.exec); err != nil {
		return nil, translateError(err)
	}
	return t.FindByID(ctx, id)
}

// UpdateDetails overwrites the seller-editable fields of an item.
func (t *ItemsTable) UpdateDetails(ctx context.Context, id uuid.UUID, details *storage.ItemDetails) error {
	q := psql.Update(
		um.Table(itemsTable),
		um.SetCol("name").ToArg(details.Name),
		um.SetCol("brand").ToArg(details.Brand),
		um.SetCol("condition").ToArg(string(details.Condition)),
		um.SetCol("size").ToArg(details.Size),
		um.SetCol("price").ToArg(details.Price),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := q.Exec(ctx, t.exec)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// UpdateStatus sets the lifecycle status of an item.
func (t *ItemsTable) UpdateStatus(ctx context.Context, id uuid.UUID, status storage.ItemStatus) error {
	q := psql.Update(
		um.Table(itemsTable),
		um.SetCol("status").ToArg(string(status)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := q.Exec(ctx, t.exec)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// Delete removes an item.
func (t *ItemsTable) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(itemsTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := q.Exec(ctx, t.exec)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}
