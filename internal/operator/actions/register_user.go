package actions

import (
	"context"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/storage"
)

type RegisterUser struct {
	User storage.UserCreate

	Result *storage.User
	IAction
}

func (r *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := market.ValidateUser(&r.User); err != nil {
		return err
	}

	user, err := writer.Users.Insert(ctx, &r.User)
	if err != nil {
		return translate(err, "user "+r.User.Username)
	}
	r.Result = user
	return nil
}
