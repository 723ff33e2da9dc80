package store

import (
	"context"
	"time"

	"bookadmin/internal/models"
)

// ImpressionRow is an impression joined with username and book title for
// listing and interactive selection.
type ImpressionRow struct {
	ID        int64     `gorm:"column:id"`
	UserID    int64     `gorm:"column:user_id"`
	Username  string    `gorm:"column:username"`
	BookID    int64     `gorm:"column:book_id"`
	Title     string    `gorm:"column:title"`
	Rating    float64   `gorm:"column:rating"`
	Comment   *string   `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (s *Store) ListImpressions(ctx context.Context, limit, offset int) ([]ImpressionRow, error) {
	var rows []ImpressionRow
	err := s.db.WithContext(ctx).
		Table("book_impressions AS i").
		Select("i.id, i.user_id, u.username, i.book_id, b.title, i.rating, i.comment, i.created_at").
		Joins("JOIN users u ON u.id = i.user_id").
		Joins("JOIN books b ON b.id = i.book_id").
		Order("i.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// ImpressionsForUser lists one user's impressions for interactive selection,
// newest first, title as tie break.
func (s *Store) ImpressionsForUser(ctx context.Context, userID int64) ([]ImpressionRow, error) {
	var rows []ImpressionRow
	err := s.db.WithContext(ctx).
		Table("book_impressions AS i").
		Select("i.id, i.user_id, u.username, i.book_id, b.title, i.rating, i.comment, i.created_at").
		Joins("JOIN users u ON u.id = i.user_id").
		Joins("JOIN books b ON b.id = i.book_id").
		Where("i.user_id = ?", userID).
		Order("i.created_at DESC, b.title").
		Limit(searchLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// CreateImpression inserts a review and returns its new id. The rating is
// quantized to one fractional digit. Referential failures (no such user or
// book, or no activity row for the pair) surface classified; the checked
// workflow avoids them by construction, the demo workflow does not.
func (s *Store) CreateImpression(ctx context.Context, userID, bookID int64, rating float64, comment *string) (int64, error) {
	imp := models.Impression{
		UserID:  userID,
		BookID:  bookID,
		Rating:  Round1(rating),
		Comment: comment,
	}
	if err := s.db.WithContext(ctx).Create(&imp).Error; err != nil {
		return 0, classify(err)
	}
	return imp.ID, nil
}

func (s *Store) UpdateImpression(ctx context.Context, id int64, rating float64, comment *string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Impression{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":  Round1(rating),
			"comment": comment,
		})
	return res.RowsAffected, classify(res.Error)
}

func (s *Store) DeleteImpression(ctx context.Context, id int64) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Impression{}, id)
	return res.RowsAffected, classify(res.Error)
}
