package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/resell-server/internal/storage"
)

const transactionsTable = "transactions"

var transactionColumns = []any{"id", "buyer_id", "seller_id", "item_id", "amount", "commission", "created_at"}

var _ storage.ITransactionWriter = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

func (t *TransactionsTable) findOne(ctx context.Context, where bob.Expression) (*storage.Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(where),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[storage.Transaction]())
	if err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*storage.Transaction, error) {
	return t.findOne(ctx, psql.Quote("id").EQ(psql.Arg(id)))
}

// FindByItemID retrieves the ledger entry for a sold item.
func (t *TransactionsTable) FindByItemID(ctx context.Context, itemID uuid.UUID) (*storage.Transaction, error) {
	return t.findOne(ctx, psql.Quote("item_id").EQ(psql.Arg(itemID)))
}

// Insert appends a ledger entry. The unique index on item_id rejects a second sale.
func (t *TransactionsTable) Insert(ctx context.Context, create *storage.TransactionCreate) (*storage.Transaction, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	row := &storage.Transaction{
		ID:         id,
		BuyerID:    create.BuyerID,
		SellerID:   create.SellerID,
		ItemID:     create.ItemID,
		Amount:     create.Amount,
		Commission: create.Commission,
		CreatedAt:  time.Now().UTC(),
	}

	q := psql.Insert(
		im.Into(transactionsTable, "id", "buyer_id", "seller_id", "item_id", "amount", "commission", "created_at"),
		im.Values(psql.Arg(row.ID, row.BuyerID, row.SellerID, row.ItemID, row.Amount, row.Commission, row.CreatedAt)),
	)
	if _, err := q.Exec(ctx, t.exec); err != nil {
		return nil, translateError(err)
	}
	return row, nil
}

// List returns transactions matching the filter. Nil filter returns all.
func (t *TransactionsTable) List(ctx context.Context, filter *storage.TransactionFilter) ([]*storage.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
	}
	if filter != nil {
		var whereExprs []bob.Expression
		if filter.UserID != nil {
			whereExprs = append(whereExprs, psql.Or(
				psql.Quote("buyer_id").EQ(psql.Arg(*filter.UserID)),
				psql.Quote("seller_id").EQ(psql.Arg(*filter.UserID)),
			))
		}
		if filter.MaxCreationTime != nil {
			whereExprs = append(whereExprs, psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime)))
		}
		if len(whereExprs) == 1 {
			queryMods = append(queryMods, sm.Where(whereExprs[0]))
		} else if len(whereExprs) > 1 {
			queryMods = append(queryMods, sm.Where(psql.And(whereExprs...)))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[storage.Transaction]())
	if err != nil {
		return nil, err
	}
	result := make([]*storage.Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
