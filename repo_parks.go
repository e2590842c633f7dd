package parks

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Parks is the national park repository
type Parks interface {
	List(ctx context.Context) ([]*NationalPark, error)
	GetByID(ctx context.Context, id int64) (*NationalPark, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, record *NationalPark) (*NationalPark, error)
	Update(ctx context.Context, record *NationalPark) error
	Delete(ctx context.Context, record *NationalPark) error
}

type parksRepo struct {
	db *bun.DB
}

var _ Parks = (*parksRepo)(nil)

func NewParksRepository(db *bun.DB) Parks {
	return &parksRepo{db: db}
}

// List returns every park ordered by name
func (r *parksRepo) List(ctx context.Context) ([]*NationalPark, error) {
	var records []*NationalPark
	err := r.db.NewSelect().
		Model(&records).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list national parks")
	}

	return records, nil
}

func (r *parksRepo) GetByID(ctx context.Context, id int64) (*NationalPark, error) {
	record := new(NationalPark)
	err := r.db.NewSelect().
		Model(record).
		Where("np.id = ?", id).
		Scan(ctx)

	if err != nil {
		return nil, wrapSelectErr(err, "national park not found")
	}

	return record, nil
}

func (r *parksRepo) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*NationalPark)(nil)).
		Where("np.id = ?", id).
		Exists(ctx)

	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check national park")
	}

	return exists, nil
}

func (r *parksRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*NationalPark)(nil)).
		Where("np.name = ?", name).
		Exists(ctx)

	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check national park name")
	}

	return exists, nil
}

func (r *parksRepo) Create(ctx context.Context, record *NationalPark) (*NationalPark, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create national park")
	}

	return record, nil
}

func (r *parksRepo) Update(ctx context.Context, record *NationalPark) error {
	res, err := r.db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "could not update national park")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errors.New("could not update national park", errors.CategoryInternal)
	}

	return nil
}

func (r *parksRepo) Delete(ctx context.Context, record *NationalPark) error {
	if _, err := r.db.NewDelete().Model(record).WherePK().Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "could not delete national park")
	}

	return nil
}
