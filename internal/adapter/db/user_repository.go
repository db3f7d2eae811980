package db

import (
	stdsql "database/sql"

	"entgo.io/ent/dialect"

	"github.com/eslsoft/learnhub/internal/core"
)

var userTable = &table[core.User]{
	name: "users",
	columns: []string{
		core.FieldID,
		core.UserFieldUsername,
		"password_hash",
		core.FieldCreatedAt,
		core.FieldUpdatedAt,
		core.FieldDeletedAt,
	},
	scan: func(s scanner) (*core.User, error) {
		var (
			u         core.User
			deletedAt stdsql.NullTime
		)
		if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		u.DeletedAt = nullableTime(deletedAt)
		return &u, nil
	},
	values: func(u *core.User) []any {
		return []any{u.ID, u.Username, u.PasswordHash, u.CreatedAt, u.UpdatedAt, ptrValue(u.DeletedAt)}
	},
}

// UserRepository persists user accounts.
type UserRepository struct {
	*Repository[core.User]
}

var _ core.Repository[core.User] = (*UserRepository)(nil)

// NewUserRepository constructs a user repository over drv.
func NewUserRepository(drv dialect.Driver) *UserRepository {
	return &UserRepository{Repository: newRepository(drv, userTable)}
}
