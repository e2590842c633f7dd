package parks

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the user repository
type Users interface {
	UserStore

	GetByID(ctx context.Context, id int64) (*User, error)
	IsUniqueUser(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) GetByID(ctx context.Context, id int64) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Where("usr.id = ?", id).
		Scan(ctx)

	if err != nil {
		return nil, wrapSelectErr(err, "user not found")
	}

	return user, nil
}

func (r *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Where("usr.username = ?", username).
		Scan(ctx)

	if err != nil {
		return nil, wrapSelectErr(err, "user not found")
	}

	return user, nil
}

// GetByIdentifier resolves an id or a username to a user record. Sessions
// carry the stringified record id, login forms carry the username; both
// land here, so a numeric identifier is tried as the primary key first and
// as a username second.
func (r *users) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	options := resolveUserIdentifier(identifier)

	for _, opt := range options {
		user := new(User)
		err := r.db.NewSelect().
			Model(user).
			Where(fmt.Sprintf("usr.%s = ?", opt.column), opt.value).
			Limit(1).
			Scan(ctx)

		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, errors.Wrap(err, errors.CategoryInternal, "query failed")
		}

		return user, nil
	}

	return nil, errors.New("user not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithMetadata(map[string]any{"identifier": identifier})
}

type identifierOption struct {
	column string
	value  any
}

func resolveUserIdentifier(identifier string) []identifierOption {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil
	}

	options := make([]identifierOption, 0, 2)

	if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil && id > 0 {
		options = append(options, identifierOption{column: "id", value: id})
	}

	options = append(options, identifierOption{column: "username", value: trimmed})

	return options
}

// IsUniqueUser reports whether no record holds the username. The check is
// deliberately not atomic with a following insert; the unique index on
// username turns the losing concurrent insert into a conflict error.
func (r *users) IsUniqueUser(ctx context.Context, username string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*User)(nil)).
		Where("usr.username = ?", username).
		Exists(ctx)

	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check username uniqueness")
	}

	return !exists, nil
}

func (r *users) Create(ctx context.Context, record *User) (*User, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user").
			WithCode(errors.CodeConflict)
	}

	return record, nil
}

func wrapSelectErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New(msg, errors.CategoryNotFound).WithCode(errors.CodeNotFound)
	}
	return errors.Wrap(err, errors.CategoryInternal, "query failed")
}
