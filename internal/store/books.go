package store

import (
	"context"

	"bookadmin/internal/models"
)

func (s *Store) ListBooks(ctx context.Context, limit, offset int) ([]models.Book, error) {
	var books []models.Book
	err := s.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	if err != nil {
		return nil, classify(err)
	}
	return books, nil
}

// SearchBooks matches books against optional case-insensitive patterns on
// title, author and genre. Ordered by lowercased title.
func (s *Store) SearchBooks(ctx context.Context, titleLike, authorLike, genreLike *string) ([]models.Book, error) {
	q := s.db.WithContext(ctx).Model(&models.Book{})
	if titleLike != nil {
		q = q.Where("title ILIKE ?", *titleLike)
	}
	if authorLike != nil {
		q = q.Where("author ILIKE ?", *authorLike)
	}
	if genreLike != nil {
		q = q.Where("genre ILIKE ?", *genreLike)
	}

	var books []models.Book
	err := q.Order("LOWER(title)").Limit(searchLimit).Find(&books).Error
	if err != nil {
		return nil, classify(err)
	}
	return books, nil
}

func (s *Store) CreateBook(ctx context.Context, book *models.Book) error {
	return classify(s.db.WithContext(ctx).Create(book).Error)
}

func (s *Store) UpdateBook(ctx context.Context, id int64, title, author, genre string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":  title,
			"author": author,
			"genre":  genre,
		})
	return res.RowsAffected, classify(res.Error)
}

func (s *Store) DeleteBook(ctx context.Context, id int64) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Book{}, id)
	return res.RowsAffected, classify(res.Error)
}

func (s *Store) CountActivityByBook(ctx context.Context, bookID int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("book_id = ?", bookID).
		Count(&n).Error
	return n, classify(err)
}

func (s *Store) CountImpressionsByBook(ctx context.Context, bookID int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Impression{}).
		Where("book_id = ?", bookID).
		Count(&n).Error
	return n, classify(err)
}
