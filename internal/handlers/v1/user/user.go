package user

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/carson-networks/resell-server/internal/handlers/v1"
	"github.com/carson-networks/resell-server/internal/logging"
	"github.com/carson-networks/resell-server/internal/service"
)

// User is the API response model for a marketplace user.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Username  string `json:"username" doc:"Unique username"`
	Email     string `json:"email" doc:"Unique email address"`
	Balance   string `json:"balance" doc:"Decimal balance credited from sales"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 registration time"`
}

func fromService(u *service.User) User {
	return User{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Balance:   u.Balance.String(),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

type RegisterUserBody struct {
	Username string `json:"username" minLength:"1" maxLength:"50" doc:"Unique username"`
	Email    string `json:"email" minLength:"3" doc:"Unique email address"`
}

type RegisterUserInput struct {
	Body RegisterUserBody
}

type RegisterUserOutput struct {
	Status int
	Body   User
}

type userRegistrar interface {
	Register(ctx context.Context, username, email string) (*service.User, error)
}

// RegisterUserHandler handles POST /v1/users.
type RegisterUserHandler struct {
	UserService userRegistrar
}

func NewRegisterUserHandler(svc userRegistrar) *RegisterUserHandler {
	return &RegisterUserHandler{UserService: svc}
}

func (h *RegisterUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register-user",
		Method:        http.MethodPost,
		Path:          "/v1/users",
		Summary:       "Register a user",
		Description:   "Creates a user with a zero balance. Username and email must be unused.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RegisterUserHandler) handle(ctx context.Context, input *RegisterUserInput) (*RegisterUserOutput, error) {
	created, err := h.UserService.Register(ctx, input.Body.Username, input.Body.Email)
	if err != nil {
		return nil, v1.ToHumaError(err, "failed to register user")
	}
	logging.GetLogData(ctx).AddData("userID", created.ID.String())

	return &RegisterUserOutput{Status: http.StatusCreated, Body: fromService(created)}, nil
}

type GetUserInput struct {
	Username string `path:"username" doc:"Username"`
}

type GetUserOutput struct {
	Body User
}

type userReader interface {
	GetUser(ctx context.Context, username string) (*service.User, error)
}

// GetUserHandler handles GET /v1/users/{username}.
type GetUserHandler struct {
	UserService userReader
}

func NewGetUserHandler(svc userReader) *GetUserHandler {
	return &GetUserHandler{UserService: svc}
}

func (h *GetUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/v1/users/{username}",
		Summary:     "Get a user",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *GetUserHandler) handle(ctx context.Context, input *GetUserInput) (*GetUserOutput, error) {
	found, err := h.UserService.GetUser(ctx, input.Username)
	if err != nil {
		return nil, v1.ToHumaError(err, "failed to get user")
	}
	return &GetUserOutput{Body: fromService(found)}, nil
}
