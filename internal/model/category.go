package model

// Category groups titles by kind of work (books, films, music).
// Identified by slug in the public API.
type Category struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:256;not null;index"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
}
