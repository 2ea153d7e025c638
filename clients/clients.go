package clients

import (
	"context"
	"fmt"

	"github.com/nishantd01/grud/models"
)

// UsersAPI is the remote users resource the page mirrors
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in models.NewUserInput) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// StatusError is returned when the users API answers with a non-2xx status
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed: status %d, body: %s", e.Op, e.StatusCode, e.Body)
}
