package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"bookadmin/internal/config"
	"bookadmin/internal/models"
	"bookadmin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

// newTestShell wires a Shell to scripted operator input and a capture buffer.
func newTestShell(input string, st Store) (*Shell, *bytes.Buffer) {
	cfg := &config.Config{
		DatabaseURL: "postgres://test",
		LogLevel:    "info",
		LogFormat:   "text",
		DisplayTZ:   "UTC",
		ListLimit:   50,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	out := &bytes.Buffer{}
	return New(cfg, logger, st, strings.NewReader(input), out), out
}

func annUser() models.User {
	return models.User{
		ID:        7,
		FullName:  "Ann Lee",
		Username:  "ann1",
		TgHandle:  ptr("@ann"),
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func duneBook() models.Book {
	return models.Book{
		ID:        3,
		Title:     "Dune",
		Author:    "Frank Herbert",
		Genre:     "sci-fi",
		CreatedAt: time.Date(2024, 3, 2, 11, 0, 0, 0, time.UTC),
	}
}

func TestDeleteUserRefusedWithDependents(t *testing.T) {
	st := &mockStore{}
	st.On("SearchUsers", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.User{annUser()}, nil)
	st.On("CountActivityByUser", mock.Anything, int64(7)).Return(int64(2), nil)
	st.On("CountImpressionsByUser", mock.Anything, int64(7)).Return(int64(0), nil)

	// Users > Delete > search "ann" (single match auto-selects) > back > quit
	sh, out := newTestShell("1\n4\nann\n\n0\n0\n", st)
	sh.Run(context.Background())

	assert.Contains(t, out.String(), "refused: 2 dependent")
	st.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestUpdateUserKeepsCurrentValuesOnEmptyInput(t *testing.T) {
	st := &mockStore{}
	st.On("SearchUsers", mock.Anything,
		mock.MatchedBy(func(p *string) bool { return p != nil && *p == "%ann%" }),
		(*string)(nil)).
		Return([]models.User{annUser()}, nil)
	st.On("UpdateUser", mock.Anything, int64(7), "Ann Lee", "ann1",
		mock.MatchedBy(func(p *string) bool { return p != nil && *p == "@ann" })).
		Return(int64(1), nil)

	// Users > Update > search "ann" > three empty answers keep everything
	sh, out := newTestShell("1\n3\nann\n\n\n\n\n0\n0\n", st)
	sh.Run(context.Background())

	assert.Contains(t, out.String(), "rows updated: 1")
	st.AssertExpectations(t)
}

func TestAddActivityReportsExistingPair(t *testing.T) {
	st := &mockStore{}
	st.On("SearchUsers", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.User{annUser()}, nil)
	st.On("SearchBooks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]models.Book{duneBook()}, nil)
	st.On("CreateActivity", mock.Anything, int64(7), int64(3)).Return(false, nil)

	// Activity > Add > pick Ann, pick Dune > the pair is already there
	sh, out := newTestShell("3\n2\nann\n\ndune\n\n\n0\n0\n", st)
	sh.Run(context.Background())

	assert.Contains(t, out.String(), "this pair already exists")
	st.AssertExpectations(t)
}

func TestDeleteActivityRefusedWithImpressions(t *testing.T) {
	st := &mockStore{}
	st.On("SearchUsers", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.User{annUser()}, nil)
	st.On("ActivityForUser", mock.Anything, int64(7)).
		Return([]store.ActivityRow{{
			UserID: 7, Username: "ann1", FullName: "Ann Lee",
			BookID: 3, Title: "Dune", Author: "Frank Herbert", Genre: "sci-fi",
		}}, nil)
	st.On("CountImpressionsForPair", mock.Anything, int64(7), int64(3)).
		Return(int64(3), nil)

	sh, out := newTestShell("3\n4\nann\n\n0\n0\n", st)
	sh.Run(context.Background())

	assert.Contains(t, out.String(), "refused: 3 dependent impressions")
	st.AssertNotCalled(t, "DeleteActivity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckedImpressionCreateQuantizesRating(t *testing.T) {
	st := &mockStore{}
	st.On("SearchUsers", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.User{annUser()}, nil)
	st.On("ActivityForUser", mock.Anything, int64(7)).
		Return([]store.ActivityRow{{
			UserID: 7, Username: "ann1", FullName: "Ann Lee",
			BookID: 3, Title: "Dune", Author: "Frank Herbert", Genre: "sci-fi",
		}}, nil)
	st.On("CreateImpression", mock.Anything, int64(7), int64(3), 4.4, (*string)(nil)).
		Return(int64(11), nil)

	// rating 4.36 quantizes to 4.4, empty comment becomes nil
	sh, out := newTestShell("4\n2\nann\n\n4.36\n\n0\n0\n", st)
	sh.Run(context.Background())

	assert.Contains(t, out.String(), "created impression id=11")
	st.AssertExpectations(t)
}

func TestUncheckedImpressionSurfacesForeignKeyError(t *testing.T) {
	st := &mockStore{}
	st.On("SearchUsers", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.User{annUser()}, nil)
	st.On("SearchBooks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]models.Book{duneBook()}, nil)
	st.On("CreateImpression", mock.Anything, int64(7), int64(3), 3.0, (*string)(nil)).
		Return(int64(0), &store.Error{
			Kind:    store.KindReferential,
			Code:    "23503",
			Message: "insert violates foreign key constraint on activity",
		})

	// Impressions > Add WITHOUT activity check: the store rejects the pair
	sh, out := newTestShell("4\n5\nann\n\ndune\n\n\n3.0\n\n0\n", st)
	sh.Run(context.Background())

	assert.Contains(t, out.String(), "foreign key violation, operation aborted")
	assert.Contains(t, out.String(), "23503")
}

func TestGenerateActivityCapacityErrorKeepsSession(t *testing.T) {
	st := &mockStore{}
	st.On("GenerateActivity", mock.Anything, int64(10)).
		Return(int64(0), &store.Error{
			Kind:    store.KindCapacity,
			Message: "not enough free user×book pairs for 10 rows (have 4)",
		})
	st.On("GenerateUsers", mock.Anything, int64(3)).Return(int64(3), nil)

	// the failed stage is reported and the submenu keeps working
	sh, out := newTestShell("5\n3\n10\n1\n3\n0\n0\n", st)
	sh.Run(context.Background())

	assert.Contains(t, out.String(), "not enough free")
	assert.Contains(t, out.String(), "users inserted: 3")
	st.AssertExpectations(t)
}

func TestSearchImpressionsPassesFilterAndPrintsTiming(t *testing.T) {
	st := &mockStore{}
	var got store.ImpressionFilter
	st.On("SearchImpressions", mock.Anything, mock.Anything).
		Run(func(a mock.Arguments) { got = a.Get(1).(store.ImpressionFilter) }).
		Return([]store.SearchRow{{
			UserID: 7, Username: "ann1", BookID: 3,
			Title: "Dune", Author: "Frank Herbert", Genre: "sci-fi",
			Rating: 4.5, CreatedAt: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
		}}, 12*time.Millisecond, nil)

	// title=dune, min rating 2, date from 2024-01-01, everything else skipped
	sh, out := newTestShell("6\n1\ndune\n\n\n2\n\n2024-01-01\n\n\n0\n0\n", st)
	sh.Run(context.Background())

	require.NotNil(t, got.TitleLike)
	assert.Equal(t, "%dune%", *got.TitleLike)
	assert.Nil(t, got.AuthorLike)
	require.NotNil(t, got.RatingMin)
	assert.InDelta(t, 2.0, *got.RatingMin, 1e-9)
	assert.Nil(t, got.RatingMax)
	require.NotNil(t, got.DateFrom)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *got.DateFrom)
	assert.Nil(t, got.DateTo)
	assert.Equal(t, store.HandleAny, got.Handle)

	assert.Contains(t, out.String(), "(1 rows)")
	assert.Contains(t, out.String(), "12.0 ms")
}

func TestAggregateRatingsPassesFilter(t *testing.T) {
	st := &mockStore{}
	var got store.RatingAggFilter
	st.On("AggregateRatings", mock.Anything, mock.Anything).
		Run(func(a mock.Arguments) { got = a.Get(1).(store.RatingAggFilter) }).
		Return([]store.RatingAggRow{
			{Group: "sci-fi", Count: 12, AvgRating: 4.21},
		}, 5*time.Millisecond, nil)

	sh, out := newTestShell("6\n2\n\n\n3\ngenre\n0\n0\n", st)
	sh.Run(context.Background())

	assert.Equal(t, "genre", got.GroupBy)
	assert.Equal(t, 3, got.MinCount)
	assert.Nil(t, got.DateFrom)
	assert.Contains(t, out.String(), "sci-fi")
	assert.Contains(t, out.String(), "4.21")
}

func TestRunPipelineDerivesStageCounts(t *testing.T) {
	st := &mockStore{}
	st.On("GenerateUsers", mock.Anything, int64(5)).Return(int64(5), nil)
	st.On("GenerateBooks", mock.Anything, int64(5)).Return(int64(5), nil)
	st.On("GenerateActivity", mock.Anything, int64(5)).Return(int64(5), nil)
	st.On("GenerateImpressions", mock.Anything, int64(2)).Return(int64(2), nil)

	r, err := RunPipeline(context.Background(), st, 5)
	require.NoError(t, err)

	assert.Equal(t, PipelineResult{Users: 5, Books: 5, Activity: 5, Impressions: 2}, r)
	st.AssertExpectations(t)
}

func TestRunPipelineAbortsOnFirstFailure(t *testing.T) {
	st := &mockStore{}
	st.On("GenerateUsers", mock.Anything, int64(7)).Return(int64(7), nil)
	st.On("GenerateBooks", mock.Anything, int64(7)).Return(int64(0), errors.New("boom"))

	r, err := RunPipeline(context.Background(), st, 7)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "books stage")
	assert.Equal(t, int64(7), r.Users)
	st.AssertNotCalled(t, "GenerateActivity", mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "GenerateImpressions", mock.Anything, mock.Anything)
}

func TestRunPipelineKeepsErrorKindThroughWrapping(t *testing.T) {
	st := &mockStore{}
	st.On("GenerateUsers", mock.Anything, int64(1)).Return(int64(1), nil)
	st.On("GenerateBooks", mock.Anything, int64(1)).Return(int64(1), nil)
	st.On("GenerateActivity", mock.Anything, int64(1)).
		Return(int64(0), &store.Error{Kind: store.KindCapacity, Message: "no free pairs"})

	_, err := RunPipeline(context.Background(), st, 1)
	require.Error(t, err)

	kind, ok := store.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, store.KindCapacity, kind)
}
