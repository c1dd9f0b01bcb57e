package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/wemurs1/RoyalVilla/internal/dbx"
	"github.com/wemurs1/RoyalVilla/internal/logging"
	"github.com/wemurs1/RoyalVilla/internal/server/auth"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
	amenitiesrepo "github.com/wemurs1/RoyalVilla/internal/server/repositories/amenities"
	refreshtokensrepo "github.com/wemurs1/RoyalVilla/internal/server/repositories/refreshtokens"
	usersrepo "github.com/wemurs1/RoyalVilla/internal/server/repositories/users"
	villasrepo "github.com/wemurs1/RoyalVilla/internal/server/repositories/villas"
)

// --- shared test doubles ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newTestSigner(t *testing.T) *auth.Signer {
	t.Helper()
	signer, err := auth.NewSigner("k", time.Hour)
	if err != nil {
		t.Fatalf("NewSigner error: %v", err)
	}
	return signer
}

// nopLogger discards everything but records warnings so tests can assert
// that reuse detection made noise.
type nopLogger struct {
	warns *[]string
}

func newNopLogger() *nopLogger {
	warns := []string{}
	return &nopLogger{warns: &warns}
}

func (l *nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (l *nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (l *nopLogger) Warn(ctx context.Context, msg string, args ...any) {
	*l.warns = append(*l.warns, msg)
}
func (l *nopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l *nopLogger) With(args ...any) logging.Logger                    { return l }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmail    *models.User
	byEmailErr error

	byID    *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

type fakeRefreshRepo struct {
	insertErr error
	inserted  []*models.RefreshToken

	findOut *models.RefreshToken
	findErr error

	rotatedOK    bool
	rotatedErr   error
	rotatedCalls [][2]string

	revokedOK    bool
	revokedErr   error
	revokedCalls []string

	activeOut []*models.RefreshToken
	activeErr error

	revokeAllN     int64
	revokeAllErr   error
	revokeAllCalls []string
}

func (f *fakeRefreshRepo) Insert(ctx context.Context, token *models.RefreshToken) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	// The real store generates the id and issuance timestamp.
	token.ID = fmt.Sprintf("rt-gen-%d", len(f.inserted)+1)
	token.IssuedAt = time.Now()
	f.inserted = append(f.inserted, token)
	return nil
}

func (f *fakeRefreshRepo) FindBySecret(ctx context.Context, secret string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) MarkRotated(ctx context.Context, id string, successorID string) (bool, error) {
	f.rotatedCalls = append(f.rotatedCalls, [2]string{id, successorID})
	if f.rotatedErr != nil {
		return false, f.rotatedErr
	}
	return f.rotatedOK, nil
}

func (f *fakeRefreshRepo) MarkRevoked(ctx context.Context, id string) (bool, error) {
	f.revokedCalls = append(f.revokedCalls, id)
	if f.revokedErr != nil {
		return false, f.revokedErr
	}
	return f.revokedOK, nil
}

func (f *fakeRefreshRepo) AllActiveForUser(ctx context.Context, userID string) ([]*models.RefreshToken, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	return f.activeOut, nil
}

func (f *fakeRefreshRepo) RevokeAll(ctx context.Context, userID string) (int64, error) {
	f.revokeAllCalls = append(f.revokeAllCalls, userID)
	if f.revokeAllErr != nil {
		return 0, f.revokeAllErr
	}
	return f.revokeAllN, nil
}

type fakeVillasRepo struct {
	createOut *models.Villa
	createErr error

	getOut *models.Villa
	getErr error

	listOut   []*models.Villa
	listTotal int64
	listErr   error

	updateErr error
	deleteErr error

	setImageErr   error
	setImageCalls [][3]string
}

func (f *fakeVillasRepo) Create(ctx context.Context, v *models.Villa) (*models.Villa, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return v, nil
}

func (f *fakeVillasRepo) GetByID(ctx context.Context, id string) (*models.Villa, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeVillasRepo) List(ctx context.Context, filter villasrepo.ListFilter) ([]*models.Villa, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listOut, f.listTotal, nil
}

func (f *fakeVillasRepo) Update(ctx context.Context, v *models.Villa) error { return f.updateErr }

func (f *fakeVillasRepo) SetImage(ctx context.Context, id, imageKey, imageURL string) error {
	f.setImageCalls = append(f.setImageCalls, [3]string{id, imageKey, imageURL})
	return f.setImageErr
}

func (f *fakeVillasRepo) Delete(ctx context.Context, id string) error { return f.deleteErr }

type fakeAmenitiesRepo struct {
	createOut *models.Amenity
	createErr error

	getOut *models.Amenity
	getErr error

	listOut []*models.Amenity
	listErr error

	updateErr error
	deleteErr error
}

func (f *fakeAmenitiesRepo) Create(ctx context.Context, a *models.Amenity) (*models.Amenity, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return a, nil
}

func (f *fakeAmenitiesRepo) GetByID(ctx context.Context, id string) (*models.Amenity, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeAmenitiesRepo) ListByVilla(ctx context.Context, villaID string) ([]*models.Amenity, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeAmenitiesRepo) Update(ctx context.Context, a *models.Amenity) error { return f.updateErr }
func (f *fakeAmenitiesRepo) Delete(ctx context.Context, id string) error         { return f.deleteErr }

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	v *fakeVillasRepo
	a *fakeAmenitiesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error            { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                  { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository  { return m.r }
func (m *fakeRepoManager) Villas(db dbx.DBTX) villasrepo.Repository                { return m.v }
func (m *fakeRepoManager) Amenities(db dbx.DBTX) amenitiesrepo.Repository          { return m.a }
