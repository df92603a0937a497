package model

// Genre tags titles with a style (drama, rock, ...). A title carries any
// number of genres through the genre_titles link table.
type Genre struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:256;not null;index"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
}
