package service

import (
	"context"

	"github.com/carson-networks/resell-server/internal/operator/actions"
	"github.com/carson-networks/resell-server/internal/storage"
)

// UserService registers and looks up users.
type UserService struct {
	storage  *storage.Storage
	operator actionProcessor
}

func NewUserService(store *storage.Storage, op actionProcessor) *UserService {
	return &UserService{storage: store, operator: op}
}

// Register creates a user with a zero balance.
func (s *UserService) Register(ctx context.Context, username, email string) (*User, error) {
	action := &actions.RegisterUser{User: storage.UserCreate{Username: username, Email: email}}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	user := userFromStorage(action.Result)
	return &user, nil
}

func (s *UserService) GetUser(ctx context.Context, username string) (*User, error) {
	row, err := s.storage.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, readError(err, "user "+username)
	}
	user := userFromStorage(row)
	return &user, nil
}
