package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
	"reviewhub/internal/repository"
)

// CommentUpdate carries a partial comment update.
type CommentUpdate struct {
	Text *string
}

// CommentService handles comments nested under reviews. Every operation
// verifies that the review belongs to the title in the request path.
type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID uint) ([]model.Comment, error)
	Get(ctx context.Context, titleID, reviewID, id uint) (*model.Comment, error)
	Create(ctx context.Context, actor *model.User, titleID, reviewID uint, text string) (*model.Comment, error)
	Update(ctx context.Context, actor *model.User, titleID, reviewID, id uint, upd CommentUpdate) (*model.Comment, error)
	Delete(ctx context.Context, actor *model.User, titleID, reviewID, id uint) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) CommentService {
	return &commentService{
		comments: comments,
		reviews:  reviews,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID uint) ([]model.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.ListByReview(ctx, reviewID)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, id uint) (*model.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, reviewID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, actor *model.User, titleID, reviewID uint, text string) (*model.Comment, error) {
	if err := permission.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Text:     text,
		AuthorID: actor.ID,
		ReviewID: reviewID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = *actor
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor *model.User, titleID, reviewID, id uint, upd CommentUpdate) (*model.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}
	if err := permission.RequireContentOwner(actor, comment.AuthorID); err != nil {
		return nil, err
	}

	if upd.Text != nil {
		comment.Text = *upd.Text
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor *model.User, titleID, reviewID, id uint) error {
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return err
	}
	if err := permission.RequireContentOwner(actor, comment.AuthorID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// requireReview checks that the review exists under the given title.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID uint) error {
	if _, err := s.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return fmt.Errorf("find review: %w", err)
	}
	return nil
}
