package model

import (
	"time"

	"gorm.io/gorm"
)

// Review is a scored write-up of a title. The (author, title) pair is
// unique at the database level: one review per user per title.
type Review struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	AuthorID uint      `json:"-" gorm:"not null;uniqueIndex:uniq_author_title"`
	Score    int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	PubDate  time.Time `json:"pub_date"`
	TitleID  uint      `json:"-" gorm:"not null;uniqueIndex:uniq_author_title;index"`

	// Relations
	Author User  `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Title  Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate defaults the publication date to now.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.PubDate.IsZero() {
		r.PubDate = time.Now()
	}
	return nil
}
