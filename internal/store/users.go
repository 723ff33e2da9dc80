package store

import (
	"context"

	"bookadmin/internal/models"
)

func (s *Store) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, classify(err)
	}
	return users, nil
}

// SearchUsers matches users against optional case-insensitive patterns on
// full name and username. Nil patterns are not filtered. Ordered by
// lowercased username so repeated searches list candidates identically.
func (s *Store) SearchUsers(ctx context.Context, fullLike, usernameLike *string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if fullLike != nil {
		q = q.Where("full_name ILIKE ?", *fullLike)
	}
	if usernameLike != nil {
		q = q.Where("username ILIKE ?", *usernameLike)
	}

	var users []models.User
	err := q.Order("LOWER(username)").Limit(searchLimit).Find(&users).Error
	if err != nil {
		return nil, classify(err)
	}
	return users, nil
}

// CreateUser inserts the user and populates ID and CreatedAt on success.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return classify(s.db.WithContext(ctx).Create(user).Error)
}

// UpdateUser overwrites all mutable attributes. Returns the affected row
// count; 0 means the id no longer exists and is not an error.
func (s *Store) UpdateUser(ctx context.Context, id int64, fullName, username string, tgHandle *string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"full_name": fullName,
			"username":  username,
			"tg_handle": tgHandle,
		})
	return res.RowsAffected, classify(res.Error)
}

// DeleteUser removes the row. The caller must run the dependency guard
// first; this method does not re-check.
func (s *Store) DeleteUser(ctx context.Context, id int64) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	return res.RowsAffected, classify(res.Error)
}

func (s *Store) CountActivityByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, classify(err)
}

func (s *Store) CountImpressionsByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Impression{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, classify(err)
}
