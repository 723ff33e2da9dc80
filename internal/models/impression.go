package models

import "time"

// Impression is a user's rating and optional comment on a book. The schema
// ties (user_id, book_id) to the activity table, so inserting an impression
// for a pair with no activity row fails with a foreign key violation.
type Impression struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	BookID    int64     `json:"book_id" gorm:"not null;index"`
	Rating    float64   `json:"rating" gorm:"type:numeric(2,1);not null"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Impression) TableName() string {
	return "book_impressions"
}
