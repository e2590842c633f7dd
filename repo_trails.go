package parks

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Trails is the trail repository. Reads populate the parent park relation
// so DTOs carry the nested park record.
type Trails interface {
	List(ctx context.Context) ([]*Trail, error)
	ListInPark(ctx context.Context, nationalParkID int64) ([]*Trail, error)
	GetByID(ctx context.Context, id int64) (*Trail, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, record *Trail) (*Trail, error)
	Update(ctx context.Context, record *Trail) error
	Delete(ctx context.Context, record *Trail) error
}

type trailsRepo struct {
	db *bun.DB
}

var _ Trails = (*trailsRepo)(nil)

func NewTrailsRepository(db *bun.DB) Trails {
	return &trailsRepo{db: db}
}

func (r *trailsRepo) List(ctx context.Context) ([]*Trail, error) {
	var records []*Trail
	err := r.db.NewSelect().
		Model(&records).
		Relation("NationalPark").
		Order("trl.name ASC").
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list trails")
	}

	return records, nil
}

func (r *trailsRepo) ListInPark(ctx context.Context, nationalParkID int64) ([]*Trail, error) {
	var records []*Trail
	err := r.db.NewSelect().
		Model(&records).
		Relation("NationalPark").
		Where("trl.national_park_id = ?", nationalParkID).
		Order("trl.name ASC").
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list trails in national park")
	}

	return records, nil
}

func (r *trailsRepo) GetByID(ctx context.Context, id int64) (*Trail, error) {
	record := new(Trail)
	err := r.db.NewSelect().
		Model(record).
		Relation("NationalPark").
		Where("trl.id = ?", id).
		Scan(ctx)

	if err != nil {
		return nil, wrapSelectErr(err, "trail not found")
	}

	return record, nil
}

func (r *trailsRepo) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*Trail)(nil)).
		Where("trl.id = ?", id).
		Exists(ctx)

	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check trail")
	}

	return exists, nil
}

func (r *trailsRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*Trail)(nil)).
		Where("trl.name = ?", name).
		Exists(ctx)

	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check trail name")
	}

	return exists, nil
}

func (r *trailsRepo) Create(ctx context.Context, record *Trail) (*Trail, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create trail")
	}

	return record, nil
}

func (r *trailsRepo) Update(ctx context.Context, record *Trail) error {
	res, err := r.db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "could not update trail")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errors.New("could not update trail", errors.CategoryInternal)
	}

	return nil
}

func (r *trailsRepo) Delete(ctx context.Context, record *Trail) error {
	if _, err := r.db.NewDelete().Model(record).WherePK().Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "could not delete trail")
	}

	return nil
}
