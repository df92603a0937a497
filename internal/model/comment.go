package model

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reply to a review. No uniqueness constraints; ordered by id.
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	AuthorID uint      `json:"-" gorm:"not null;index"`
	PubDate  time.Time `json:"pub_date"`
	ReviewID uint      `json:"-" gorm:"not null;index"`

	// Relations
	Author User   `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Review Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate defaults the publication date to now.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.PubDate.IsZero() {
		c.PubDate = time.Now()
	}
	return nil
}
