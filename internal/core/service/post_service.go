package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

const feedLimit = 200

// PostService implements posts, likes and comments.
type PostService struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
	files    ports.FileStore
	log      zerolog.Logger
	now      func() time.Time
}

func NewPostService(
	users ports.UserRepository,
	posts ports.PostRepository,
	comments ports.CommentRepository,
	files ports.FileStore,
	log zerolog.Logger,
) *PostService {
	return &PostService{
		users:    users,
		posts:    posts,
		comments: comments,
		files:    files,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostService) Create(ctx context.Context, authorID, content string, image *ports.FileInput) (*ports.PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" && image == nil {
		return nil, domain.Invalid("Post must have content or an image.")
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	imageRef := ""
	if image != nil {
		if imageRef, err = s.files.Save(ctx, domain.UploadPostImage, *image); err != nil {
			return nil, err
		}
	}

	now := s.now()
	post, err := s.posts.Create(ctx, &domain.Post{
		UserID:     authorID,
		Content:    content,
		Image:      imageRef,
		Likes:      []string{},
		CommentIDs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		if imageRef != "" {
			s.removeFile(ctx, imageRef)
		}
		return nil, err
	}
	return &ports.PostView{Post: *post, Author: author.Summary()}, nil
}

func (s *PostService) Feed(ctx context.Context) ([]ports.PostView, error) {
	posts, err := s.posts.Feed(ctx, feedLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}
	authors, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.PostView, 0, len(posts))
	for _, p := range posts {
		author, ok := authors[p.UserID]
		if !ok {
			continue
		}
		out = append(out, ports.PostView{Post: p, Author: author})
	}
	return out, nil
}

func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (*ports.LikeState, error) {
	liked, count, err := s.posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return &ports.LikeState{Liked: liked, Count: count}, nil
}

func (s *PostService) LikeStatus(ctx context.Context, postID, userID string) (*ports.LikeState, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &ports.LikeState{Liked: post.LikedBy(userID), Count: len(post.Likes)}, nil
}

func (s *PostService) AddComment(ctx context.Context, postID, authorID, text string) (*ports.CommentView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.Invalid("Comment text is required.")
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, &domain.Comment{
		PostID: postID,
		UserID: authorID,
		Text:   text,
		Date:   s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.posts.AddComment(ctx, postID, comment.ID); err != nil {
		// The post can disappear between the lookup and the link.
		if derr := s.comments.Delete(ctx, comment.ID); derr != nil {
			s.log.Warn().Err(derr).Str("comment_id", comment.ID).Msg("orphan comment left behind")
		}
		return nil, err
	}
	return &ports.CommentView{Comment: *comment, Author: author.Summary()}, nil
}

func (s *PostService) DeleteComment(ctx context.Context, commentID, callerID string) (bool, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return false, err
	}
	override, err := s.authorize(ctx, comment.UserID, callerID)
	if err != nil {
		return false, err
	}

	if err := s.posts.RemoveComment(ctx, comment.PostID, comment.ID); err != nil && !errors.Is(err, domain.ErrPostNotFound) {
		return false, err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return false, err
	}
	return override, nil
}

func (s *PostService) ListComments(ctx context.Context, postID string) ([]ports.CommentView, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	authors, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, ports.CommentView{Comment: c, Author: authors[c.UserID]})
	}
	return out, nil
}

func (s *PostService) CountComments(ctx context.Context, postID string) (int64, error) {
	return s.comments.CountByPost(ctx, postID)
}

// Delete removes the post, its comments and its image.
func (s *PostService) Delete(ctx context.Context, postID, callerID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if _, err := s.authorize(ctx, post.UserID, callerID); err != nil {
		return err
	}

	removed, err := s.comments.DeleteByPost(ctx, post.ID)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return err
	}
	if post.Image != "" {
		s.removeFile(ctx, post.Image)
	}
	s.log.Info().Str("post_id", post.ID).Int64("comments", removed).Msg("post deleted")
	return nil
}

// authorize allows the owner or an administrator and reports whether the
// administrator override was used.
func (s *PostService) authorize(ctx context.Context, ownerID, callerID string) (bool, error) {
	if ownerID == callerID {
		return false, nil
	}
	caller, err := s.users.FindByID(ctx, callerID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, domain.ErrForbidden
	}
	if err != nil {
		return false, err
	}
	if !caller.IsAdmin {
		return false, domain.ErrForbidden
	}
	return true, nil
}

func (s *PostService) removeFile(ctx context.Context, ref string) {
	if err := s.files.Remove(ctx, ref); err != nil {
		s.log.Warn().Err(err).Str("path", ref).Msg("upload cleanup failed")
	}
}
