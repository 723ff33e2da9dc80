package shell

import (
	"context"
	"time"

	"bookadmin/internal/models"
	"bookadmin/internal/store"

	"github.com/stretchr/testify/mock"
)

// mockStore implements Store for workflow tests. Slice results come back
// through Get so untyped nils stay nil slices.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	var out []models.User
	if v := args.Get(0); v != nil {
		out = v.([]models.User)
	}
	return out, args.Error(1)
}

func (m *mockStore) SearchUsers(ctx context.Context, fullLike, usernameLike *string) ([]models.User, error) {
	args := m.Called(ctx, fullLike, usernameLike)
	var out []models.User
	if v := args.Get(0); v != nil {
		out = v.([]models.User)
	}
	return out, args.Error(1)
}

func (m *mockStore) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockStore) UpdateUser(ctx context.Context, id int64, fullName, username string, tgHandle *string) (int64, error) {
	args := m.Called(ctx, id, fullName, username, tgHandle)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) DeleteUser(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CountActivityByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CountImpressionsByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) ListBooks(ctx context.Context, limit, offset int) ([]models.Book, error) {
	args := m.Called(ctx, limit, offset)
	var out []models.Book
	if v := args.Get(0); v != nil {
		out = v.([]models.Book)
	}
	return out, args.Error(1)
}

func (m *mockStore) SearchBooks(ctx context.Context, titleLike, authorLike, genreLike *string) ([]models.Book, error) {
	args := m.Called(ctx, titleLike, authorLike, genreLike)
	var out []models.Book
	if v := args.Get(0); v != nil {
		out = v.([]models.Book)
	}
	return out, args.Error(1)
}

func (m *mockStore) CreateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *mockStore) UpdateBook(ctx context.Context, id int64, title, author, genre string) (int64, error) {
	args := m.Called(ctx, id, title, author, genre)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) DeleteBook(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CountActivityByBook(ctx context.Context, bookID int64) (int64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CountImpressionsByBook(ctx context.Context, bookID int64) (int64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) ListActivity(ctx context.Context, limit, offset int) ([]store.ActivityRow, error) {
	args := m.Called(ctx, limit, offset)
	var out []store.ActivityRow
	if v := args.Get(0); v != nil {
		out = v.([]store.ActivityRow)
	}
	return out, args.Error(1)
}

func (m *mockStore) ActivityForUser(ctx context.Context, userID int64) ([]store.ActivityRow, error) {
	args := m.Called(ctx, userID)
	var out []store.ActivityRow
	if v := args.Get(0); v != nil {
		out = v.([]store.ActivityRow)
	}
	return out, args.Error(1)
}

func (m *mockStore) CreateActivity(ctx context.Context, userID, bookID int64) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) DeleteActivity(ctx context.Context, userID, bookID int64) (int64, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CountImpressionsForPair(ctx context.Context, userID, bookID int64) (int64, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) ListImpressions(ctx context.Context, limit, offset int) ([]store.ImpressionRow, error) {
	args := m.Called(ctx, limit, offset)
	var out []store.ImpressionRow
	if v := args.Get(0); v != nil {
		out = v.([]store.ImpressionRow)
	}
	return out, args.Error(1)
}

func (m *mockStore) ImpressionsForUser(ctx context.Context, userID int64) ([]store.ImpressionRow, error) {
	args := m.Called(ctx, userID)
	var out []store.ImpressionRow
	if v := args.Get(0); v != nil {
		out = v.([]store.ImpressionRow)
	}
	return out, args.Error(1)
}

func (m *mockStore) CreateImpression(ctx context.Context, userID, bookID int64, rating float64, comment *string) (int64, error) {
	args := m.Called(ctx, userID, bookID, rating, comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) UpdateImpression(ctx context.Context, id int64, rating float64, comment *string) (int64, error) {
	args := m.Called(ctx, id, rating, comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) DeleteImpression(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) GenerateUsers(ctx context.Context, n int64) (int64, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) GenerateBooks(ctx context.Context, n int64) (int64, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) GenerateActivity(ctx context.Context, n int64) (int64, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) GenerateImpressions(ctx context.Context, n int64) (int64, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) SearchImpressions(ctx context.Context, f store.ImpressionFilter) ([]store.SearchRow, time.Duration, error) {
	args := m.Called(ctx, f)
	var out []store.SearchRow
	if v := args.Get(0); v != nil {
		out = v.([]store.SearchRow)
	}
	return out, args.Get(1).(time.Duration), args.Error(2)
}

func (m *mockStore) AggregateRatings(ctx context.Context, f store.RatingAggFilter) ([]store.RatingAggRow, time.Duration, error) {
	args := m.Called(ctx, f)
	var out []store.RatingAggRow
	if v := args.Get(0); v != nil {
		out = v.([]store.RatingAggRow)
	}
	return out, args.Get(1).(time.Duration), args.Error(2)
}

func (m *mockStore) UsersWithoutHandle(ctx context.Context, f store.NoHandleFilter) ([]store.NoHandleRow, time.Duration, error) {
	args := m.Called(ctx, f)
	var out []store.NoHandleRow
	if v := args.Get(0); v != nil {
		out = v.([]store.NoHandleRow)
	}
	return out, args.Get(1).(time.Duration), args.Error(2)
}
