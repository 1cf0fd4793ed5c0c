// Package users provides the persistence interface and PostgreSQL
// implementation for user accounts and their role assignments.
package users

import (
	"context"

	"github.com/mbelkin/storefront/internal/models"
)

type Repository interface {
	// Create inserts a new user and returns it with ID and CreatedAt set.
	// A username conflict yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUserName returns the user with the given username, without roles.
	GetByUserName(ctx context.Context, userName string) (*models.User, error)

	// GetByID returns the user with the given id, without roles.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// AssignRole attaches a named role to the user. An unknown role name
	// yields common.ErrorNotFound.
	AssignRole(ctx context.Context, userID, role string) error

	// GetRoles returns the names of all roles assigned to the user.
	GetRoles(ctx context.Context, userID string) ([]string, error)
}
