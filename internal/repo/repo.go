package repo

import (
	"gorm.io/gorm"
)

// GormRepo is the single owner of persisted state. Uniqueness is enforced by
// unique indexes, never by a separate existence check: inserts racing on the
// same key surface gorm.ErrDuplicatedKey and the caller decides what that
// means.
type GormRepo struct {
	DB *gorm.DB
}
