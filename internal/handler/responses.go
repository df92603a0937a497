package handler

import (
	"math"
	"time"

	"reviewhub/internal/model"
	"reviewhub/internal/service"
)

// Wire representations differ from the stored entities: users never expose
// internal flags, titles nest category/genre on read but accept slugs on
// write, reviews and comments surface the author as a username. Each shape
// is an explicit projection function.

// UserResponse is the wire shape of a user.
type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func userResponse(u *model.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      string(u.Role),
	}
}

func userResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = userResponse(&users[i])
	}
	return out
}

// SlugResponse is the wire shape of a category or genre.
type SlugResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func categoryResponse(c *model.Category) SlugResponse {
	return SlugResponse{Name: c.Name, Slug: c.Slug}
}

func genreResponse(g *model.Genre) SlugResponse {
	return SlugResponse{Name: g.Name, Slug: g.Slug}
}

// TitleResponse is the rich read shape of a title: nested category and
// genres plus the computed rating, which is null when no reviews exist.
type TitleResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Year        int            `json:"year"`
	Rating      *float64       `json:"rating"`
	Description *string        `json:"description"`
	Genre       []SlugResponse `json:"genre"`
	Category    *SlugResponse  `json:"category"`
}

func titleResponse(t service.RatedTitle) TitleResponse {
	resp := TitleResponse{
		ID:          t.Title.ID,
		Name:        t.Title.Name,
		Year:        t.Title.Year,
		Description: t.Title.Description,
		Genre:       make([]SlugResponse, len(t.Title.Genres)),
	}
	for i := range t.Title.Genres {
		resp.Genre[i] = genreResponse(&t.Title.Genres[i])
	}
	if t.Title.Category != nil {
		cat := categoryResponse(t.Title.Category)
		resp.Category = &cat
	}
	if t.Rating != nil {
		rounded := math.Round(*t.Rating*10) / 10
		resp.Rating = &rounded
	}
	return resp
}

// ReviewResponse is the wire shape of a review.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func reviewResponse(r *model.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

// CommentResponse is the wire shape of a comment.
type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func commentResponse(cm *model.Comment) CommentResponse {
	return CommentResponse{
		ID:      cm.ID,
		Text:    cm.Text,
		Author:  cm.Author.Username,
		PubDate: cm.PubDate,
	}
}
