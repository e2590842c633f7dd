package api_test

import (
	"context"
	"database/sql"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	parks "github.com/goliatone/go-parks"
)

// stubRepo implements parks.RepositoryManager over in-memory stubs
type stubRepo struct {
	users  *stubUsers
	parks  *stubParks
	trails *stubTrails
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:  &stubUsers{records: map[int64]*parks.User{}},
		parks:  &stubParks{records: map[int64]*parks.NationalPark{}},
		trails: &stubTrails{records: map[int64]*parks.Trail{}},
	}
}

func (r *stubRepo) Validate() error { return nil }
func (r *stubRepo) MustValidate()   {}
func (r *stubRepo) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}
func (r *stubRepo) Users() parks.Users   { return r.users }
func (r *stubRepo) Parks() parks.Parks   { return r.parks }
func (r *stubRepo) Trails() parks.Trails { return r.trails }

func notFound(msg string) error {
	return goerrors.New(msg, goerrors.CategoryNotFound).WithCode(goerrors.CodeNotFound)
}

type stubParks struct {
	records map[int64]*parks.NationalPark
	nextID  int64
	failAll error

	updateCalls int
	deleteCalls int
}

func (s *stubParks) List(ctx context.Context) ([]*parks.NationalPark, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	out := []*parks.NationalPark{}
	for _, r := range s.records {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubParks) GetByID(ctx context.Context, id int64) (*parks.NationalPark, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	record, ok := s.records[id]
	if !ok {
		return nil, notFound("national park not found")
	}
	return record, nil
}

func (s *stubParks) Exists(ctx context.Context, id int64) (bool, error) {
	if s.failAll != nil {
		return false, s.failAll
	}
	_, ok := s.records[id]
	return ok, nil
}

func (s *stubParks) ExistsByName(ctx context.Context, name string) (bool, error) {
	if s.failAll != nil {
		return false, s.failAll
	}
	for _, r := range s.records {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubParks) Create(ctx context.Context, record *parks.NationalPark) (*parks.NationalPark, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	s.nextID++
	record.ID = s.nextID
	s.records[record.ID] = record
	return record, nil
}

func (s *stubParks) Update(ctx context.Context, record *parks.NationalPark) error {
	if s.failAll != nil {
		return s.failAll
	}
	s.updateCalls++
	if _, ok := s.records[record.ID]; !ok {
		return goerrors.New("could not update national park", goerrors.CategoryInternal)
	}
	s.records[record.ID] = record
	return nil
}

func (s *stubParks) Delete(ctx context.Context, record *parks.NationalPark) error {
	if s.failAll != nil {
		return s.failAll
	}
	s.deleteCalls++
	delete(s.records, record.ID)
	return nil
}

type stubTrails struct {
	records map[int64]*parks.Trail
	nextID  int64
	failAll error
}

func (s *stubTrails) List(ctx context.Context) ([]*parks.Trail, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	out := []*parks.Trail{}
	for _, r := range s.records {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubTrails) ListInPark(ctx context.Context, nationalParkID int64) ([]*parks.Trail, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	out := []*parks.Trail{}
	for _, r := range s.records {
		if r.NationalParkID == nationalParkID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubTrails) GetByID(ctx context.Context, id int64) (*parks.Trail, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	record, ok := s.records[id]
	if !ok {
		return nil, notFound("trail not found")
	}
	return record, nil
}

func (s *stubTrails) Exists(ctx context.Context, id int64) (bool, error) {
	if s.failAll != nil {
		return false, s.failAll
	}
	_, ok := s.records[id]
	return ok, nil
}

func (s *stubTrails) ExistsByName(ctx context.Context, name string) (bool, error) {
	if s.failAll != nil {
		return false, s.failAll
	}
	for _, r := range s.records {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubTrails) Create(ctx context.Context, record *parks.Trail) (*parks.Trail, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	s.nextID++
	record.ID = s.nextID
	s.records[record.ID] = record
	return record, nil
}

func (s *stubTrails) Update(ctx context.Context, record *parks.Trail) error {
	if s.failAll != nil {
		return s.failAll
	}
	if _, ok := s.records[record.ID]; !ok {
		return goerrors.New("could not update trail", goerrors.CategoryInternal)
	}
	s.records[record.ID] = record
	return nil
}

func (s *stubTrails) Delete(ctx context.Context, record *parks.Trail) error {
	if s.failAll != nil {
		return s.failAll
	}
	delete(s.records, record.ID)
	return nil
}

type stubUsers struct {
	records map[int64]*parks.User
	nextID  int64
	failAll error
}

func (s *stubUsers) GetByID(ctx context.Context, id int64) (*parks.User, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	record, ok := s.records[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return record, nil
}

func (s *stubUsers) GetByIdentifier(ctx context.Context, identifier string) (*parks.User, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		if record, ok := s.records[id]; ok {
			return record, nil
		}
	}
	return s.GetByUsername(ctx, identifier)
}

func (s *stubUsers) GetByUsername(ctx context.Context, username string) (*parks.User, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	for _, r := range s.records {
		if r.Username == username {
			return r, nil
		}
	}
	return nil, notFound("user not found")
}

func (s *stubUsers) IsUniqueUser(ctx context.Context, username string) (bool, error) {
	if s.failAll != nil {
		return false, s.failAll
	}
	for _, r := range s.records {
		if r.Username == username {
			return false, nil
		}
	}
	return true, nil
}

func (s *stubUsers) Create(ctx context.Context, record *parks.User) (*parks.User, error) {
	return s.CreateTx(ctx, nil, record)
}

func (s *stubUsers) CreateTx(ctx context.Context, tx bun.IDB, record *parks.User) (*parks.User, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	s.nextID++
	record.ID = s.nextID
	s.records[record.ID] = record
	return record, nil
}

// stubAuthenticator implements parks.Authenticator
type stubAuthenticator struct {
	token string
	err   error

	lastIdentifier string
	lastPassword   string
}

func (s *stubAuthenticator) Login(ctx context.Context, identifier, password string) (string, error) {
	s.lastIdentifier = identifier
	s.lastPassword = password
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func (s *stubAuthenticator) SessionFromToken(token string) (parks.Session, error) {
	return nil, notFound("no session")
}

func (s *stubAuthenticator) IdentityFromSession(ctx context.Context, session parks.Session) (parks.Identity, error) {
	return nil, notFound("no identity")
}
