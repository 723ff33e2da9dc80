package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// HandleFilter is the tri-state messaging-handle presence filter.
type HandleFilter int

const (
	// HandleAny applies no handle filter.
	HandleAny HandleFilter = iota
	// HandleRequired matches only users with a messaging handle.
	HandleRequired
	// HandleMissing matches only users without one.
	HandleMissing
)

// ImpressionFilter is the multi-criteria search input. Nil fields are not
// filtered. Date bounds are inclusive.
type ImpressionFilter struct {
	TitleLike  *string
	AuthorLike *string
	GenreLike  *string
	RatingMin  *float64
	RatingMax  *float64
	DateFrom   *time.Time
	DateTo     *time.Time
	Handle     HandleFilter
}

// Normalize quantizes the rating bounds and swaps them when supplied in the
// wrong order, so min>max never silently produces an empty result.
func (f *ImpressionFilter) Normalize() {
	if f.RatingMin != nil {
		v := Round1(*f.RatingMin)
		f.RatingMin = &v
	}
	if f.RatingMax != nil {
		v := Round1(*f.RatingMax)
		f.RatingMax = &v
	}
	if f.RatingMin != nil && f.RatingMax != nil && *f.RatingMin > *f.RatingMax {
		f.RatingMin, f.RatingMax = f.RatingMax, f.RatingMin
	}
}

// SearchRow joins user, book and impression attributes for one matching
// review.
type SearchRow struct {
	UserID    int64     `gorm:"column:user_id"`
	Username  string    `gorm:"column:username"`
	BookID    int64     `gorm:"column:book_id"`
	Title     string    `gorm:"column:title"`
	Author    string    `gorm:"column:author"`
	Genre     string    `gorm:"column:genre"`
	Rating    float64   `gorm:"column:rating"`
	Comment   *string   `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// SearchImpressions runs the multi-criteria search and reports how long the
// query took. Ordering is deterministic: creation time descending, then
// lowercased username, then book id.
func (s *Store) SearchImpressions(ctx context.Context, f ImpressionFilter) ([]SearchRow, time.Duration, error) {
	f.Normalize()

	q := s.db.WithContext(ctx).
		Table("book_impressions AS i").
		Select("u.id AS user_id, u.username, b.id AS book_id, b.title, b.author, b.genre, i.rating, i.comment, i.created_at").
		Joins("JOIN users u ON u.id = i.user_id").
		Joins("JOIN books b ON b.id = i.book_id")

	if f.TitleLike != nil {
		q = q.Where("b.title ILIKE ?", *f.TitleLike)
	}
	if f.AuthorLike != nil {
		q = q.Where("b.author ILIKE ?", *f.AuthorLike)
	}
	if f.GenreLike != nil {
		q = q.Where("b.genre ILIKE ?", *f.GenreLike)
	}
	if f.RatingMin != nil {
		q = q.Where("i.rating >= ?", *f.RatingMin)
	}
	if f.RatingMax != nil {
		q = q.Where("i.rating <= ?", *f.RatingMax)
	}
	q = createdAtWindow(q, "i.created_at", f.DateFrom, f.DateTo)

	switch f.Handle {
	case HandleRequired:
		q = q.Where("u.tg_handle IS NOT NULL")
	case HandleMissing:
		q = q.Where("u.tg_handle IS NULL")
	}

	q = q.Order("i.created_at DESC, LOWER(u.username), b.id")

	var rows []SearchRow
	start := time.Now()
	err := q.Scan(&rows).Error
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, classify(err)
	}
	return rows, elapsed, nil
}

// RatingAggFilter parametrizes the grouped-average query.
type RatingAggFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	MinCount int
	GroupBy  string
}

// Normalize whitelists the grouping dimension; anything outside
// {author, genre} falls back to author. The value is interpolated into SQL,
// so the whitelist is load-bearing.
func (f *RatingAggFilter) Normalize() {
	if f.GroupBy != "author" && f.GroupBy != "genre" {
		f.GroupBy = "author"
	}
	if f.MinCount < 1 {
		f.MinCount = 1
	}
}

type RatingAggRow struct {
	Group     string  `gorm:"column:grp"`
	Count     int64   `gorm:"column:cnt"`
	AvgRating float64 `gorm:"column:avg_rating"`
}

// AggregateRatings groups impressions by author or genre inside an optional
// creation-date window, keeping groups with at least MinCount reviews.
// Mean ratings are rounded to two fractional digits in SQL.
func (s *Store) AggregateRatings(ctx context.Context, f RatingAggFilter) ([]RatingAggRow, time.Duration, error) {
	f.Normalize()

	q := s.db.WithContext(ctx).
		Table("book_impressions AS i").
		Select(fmt.Sprintf(
			"b.%s AS grp, COUNT(*) AS cnt, ROUND(AVG(i.rating)::numeric, 2) AS avg_rating",
			f.GroupBy)).
		Joins("JOIN books b ON b.id = i.book_id")

	q = createdAtWindow(q, "i.created_at", f.DateFrom, f.DateTo)

	q = q.Group("b." + f.GroupBy).
		Having("COUNT(*) >= ?", f.MinCount).
		Order("avg_rating DESC, cnt DESC")

	var rows []RatingAggRow
	start := time.Now()
	err := q.Scan(&rows).Error
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, classify(err)
	}
	return rows, elapsed, nil
}

// NoHandleFilter parametrizes the users-without-handle query.
type NoHandleFilter struct {
	GenreLike *string
	DateFrom  *time.Time
	DateTo    *time.Time
}

type NoHandleRow struct {
	UserID   int64  `gorm:"column:user_id"`
	Username string `gorm:"column:username"`
	FullName string `gorm:"column:full_name"`
}

// UsersWithoutHandle finds distinct users with no messaging handle who have
// both an activity row and an impression for the same (user, book) pair,
// optionally restricted by book genre and impression date window.
func (s *Store) UsersWithoutHandle(ctx context.Context, f NoHandleFilter) ([]NoHandleRow, time.Duration, error) {
	q := s.db.WithContext(ctx).
		Table("activity AS a").
		Select("DISTINCT u.id AS user_id, u.username, u.full_name").
		Joins("JOIN users u ON u.id = a.user_id").
		Joins("JOIN books b ON b.id = a.book_id").
		Joins("JOIN book_impressions i ON i.user_id = a.user_id AND i.book_id = a.book_id").
		Where("u.tg_handle IS NULL")

	if f.GenreLike != nil {
		q = q.Where("b.genre ILIKE ?", *f.GenreLike)
	}
	q = createdAtWindow(q, "i.created_at", f.DateFrom, f.DateTo)

	q = q.Order("u.username")

	var rows []NoHandleRow
	start := time.Now()
	err := q.Scan(&rows).Error
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, classify(err)
	}
	return rows, elapsed, nil
}

// createdAtWindow applies an inclusive timestamp window; either bound may be
// absent.
func createdAtWindow(q *gorm.DB, col string, from, to *time.Time) *gorm.DB {
	switch {
	case from != nil && to != nil:
		return q.Where(col+" BETWEEN ? AND ?", *from, *to)
	case from != nil:
		return q.Where(col+" >= ?", *from)
	case to != nil:
		return q.Where(col+" <= ?", *to)
	default:
		return q
	}
}
