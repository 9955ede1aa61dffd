package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/resell-server/internal/storage"
)

const usersTable = "users"

var userColumns = []any{"id", "username", "email", "balance", "created_at"}

// Ensure UsersTable implements IUserWriter at compile time.
var _ storage.IUserWriter = (*UsersTable)(nil)

// UsersTable provides access to the users table.
type UsersTable struct {
	exec bob.Executor
}

// NewUsersTable creates a UsersTable on the given executor (database or transaction).
func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

func (t *UsersTable) findOne(ctx context.Context, mods ...bob.Mod[*dialect.SelectQuery]) (*storage.User, error) {
	base := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(userColumns...),
		sm.From(usersTable),
	}
	row, err := bob.One(ctx, t.exec, psql.Select(append(base, mods...)...), scan.StructMapper[storage.User]())
	if err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

// FindByID retrieves a user by primary key.
func (t *UsersTable) FindByID(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	return t.findOne(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

// FindByIDForUpdate retrieves a user and locks the row for the rest of the transaction.
func (t *UsersTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	return t.findOne(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))), sm.ForUpdate())
}

// FindByUsername retrieves a user by unique username.
func (t *UsersTable) FindByUsername(ctx context.Context, username string) (*storage.User, error) {
	return t.findOne(ctx, sm.Where(psql.Quote("username").EQ(psql.Arg(username))))
}

// Insert creates a new user with a zero balance.
func (t *UsersTable) Insert(ctx context.Context, create *storage.UserCreate) (*storage.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	user := &storage.User{
		ID:        id,
		Username:  create.Username,
		Email:     create.Email,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}

	q := psql.Insert(
		im.Into(usersTable, "id", "username", "email", "balance", "created_at"),
		im.Values(psql.Arg(user.ID, user.Username, user.Email, user.Balance, user.CreatedAt)),
	)
	if _, err := q.Exec(ctx, t.exec); err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

// UpdateBalance sets the balance for a given user.
func (t *UsersTable) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(usersTable),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := q.Exec(ctx, t.exec)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}
