package store

import (
	"context"

	"bookadmin/internal/models"
)

// ActivityRow is an activity pair joined with the user and book attributes
// the operator needs to recognize it.
type ActivityRow struct {
	UserID   int64  `gorm:"column:user_id"`
	Username string `gorm:"column:username"`
	FullName string `gorm:"column:full_name"`
	BookID   int64  `gorm:"column:book_id"`
	Title    string `gorm:"column:title"`
	Author   string `gorm:"column:author"`
	Genre    string `gorm:"column:genre"`
}

func (s *Store) ListActivity(ctx context.Context, limit, offset int) ([]ActivityRow, error) {
	var rows []ActivityRow
	err := s.db.WithContext(ctx).
		Table("activity AS a").
		Select("a.user_id, u.username, u.full_name, a.book_id, b.title, b.author, b.genre").
		Joins("JOIN users u ON u.id = a.user_id").
		Joins("JOIN books b ON b.id = a.book_id").
		Order("a.user_id, a.book_id").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// ActivityForUser lists one user's activity pairs for interactive selection,
// ordered by book title then author.
func (s *Store) ActivityForUser(ctx context.Context, userID int64) ([]ActivityRow, error) {
	var rows []ActivityRow
	err := s.db.WithContext(ctx).
		Table("activity AS a").
		Select("a.user_id, u.username, u.full_name, a.book_id, b.title, b.author, b.genre").
		Joins("JOIN users u ON u.id = a.user_id").
		Joins("JOIN books b ON b.id = a.book_id").
		Where("a.user_id = ?", userID).
		Order("b.title, b.author").
		Limit(searchLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// CreateActivity inserts the pair if absent. Returns false when the pair
// already existed; a duplicate is an outcome, not an error.
func (s *Store) CreateActivity(ctx context.Context, userID, bookID int64) (bool, error) {
	res := s.db.WithContext(ctx).Exec(
		`INSERT INTO activity (user_id, book_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		userID, bookID,
	)
	if res.Error != nil {
		return false, classify(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) DeleteActivity(ctx context.Context, userID, bookID int64) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.Activity{})
	return res.RowsAffected, classify(res.Error)
}

func (s *Store) CountImpressionsForPair(ctx context.Context, userID, bookID int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Impression{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&n).Error
	return n, classify(err)
}
