package model

// Title is a reviewable creative work. Its rating is never stored: it is
// the mean of associated review scores, computed at read time.
type Title struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:text;not null"`
	Year        int     `json:"year" gorm:"not null;index"`
	Description *string `json:"description" gorm:"type:text"`
	CategoryID  *uint   `json:"-" gorm:"index"`

	// Relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Genres   []Genre   `json:"genre,omitempty" gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE"`
}
