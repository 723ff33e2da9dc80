package models

// Activity marks that a user has engaged with a book. The pair is the whole
// identity: there are no other columns and no update path, a change is a
// delete followed by a create.
type Activity struct {
	UserID int64 `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	BookID int64 `json:"book_id" gorm:"primaryKey;autoIncrement:false"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID"`
}

func (Activity) TableName() string {
	return "activity"
}
