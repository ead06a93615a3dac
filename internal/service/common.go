package service

import (
	"errors"

	"github.com/greenhouse-labs/catalog/internal/constants"
	"gorm.io/gorm"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// CanAccessUser reports whether the actor may read or change the user's data.
func (a Actor) CanAccessUser(userID uint) bool {
	return a.IsAdmin() || (a.UserID != 0 && a.UserID == userID)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

var errSlugRequired = errors.New("name does not produce a usable slug")
