package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/api/metrics"
	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// PostHandler serves the feed, likes and comments.
type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type createPostRequest struct {
	Content string `form:"content" json:"content"`
}

type postResponse struct {
	Success bool            `json:"success"`
	Post    *ports.PostView `json:"post"`
}

type feedResponse struct {
	Success bool             `json:"success"`
	Posts   []ports.PostView `json:"posts"`
}

type toggleLikeResponse struct {
	Success    bool `json:"success"`
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type likeStatusResponse struct {
	Success    bool `json:"success"`
	LikesCount int  `json:"likesCount"`
	IsLiked    bool `json:"isLiked"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type commentResponse struct {
	Success bool               `json:"success"`
	Comment *ports.CommentView `json:"comment"`
}

type commentsResponse struct {
	Success  bool                `json:"success"`
	Comments []ports.CommentView `json:"comments"`
}

type commentCountResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}

// Feed lists every post, newest first.
//
// @Summary      Feed
// @Tags         post
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  feedResponse
// @Router       /api/post/feed [get]
func (h *PostHandler) Feed(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	posts, err := h.posts.Feed(c.Request().Context())
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []ports.PostView{}
	}
	return c.JSON(http.StatusOK, feedResponse{Success: true, Posts: posts})
}

// Create publishes a post with text, an image, or both.
//
// @Summary      Create post
// @Tags         post
// @Accept       mpfd
// @Produce      json
// @Security     CookieAuth
// @Param        content  formData  string  false  "Text"
// @Param        image    formData  file    false  "jpeg, png, gif or webp, 5MB max"
// @Success      201      {object}  postResponse
// @Failure      400      {object}  messageResponse
// @Router       /api/post/save [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	image, closeFile, err := formFile(c, "image")
	if err != nil {
		return err
	}
	defer closeFile()

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload.")
	}

	post, err := h.posts.Create(c.Request().Context(), userID, req.Content, image)
	if err != nil {
		return err
	}
	metrics.PostsCreatedTotal.WithLabelValues(strconv.FormatBool(image != nil)).Inc()
	if image != nil {
		metrics.UploadsTotal.WithLabelValues(string(domain.UploadPostImage)).Inc()
	}
	return c.JSON(http.StatusCreated, postResponse{Success: true, Post: post})
}

// ToggleLike flips the caller's like on a post.
//
// @Summary      Toggle like
// @Tags         post
// @Produce      json
// @Security     CookieAuth
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  toggleLikeResponse
// @Failure      404     {object}  messageResponse
// @Router       /api/post/like/{postId} [post]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	state, err := h.posts.ToggleLike(c.Request().Context(), c.Param("postId"), userID)
	if err != nil {
		return err
	}
	action := "unlike"
	if state.Liked {
		action = "like"
	}
	metrics.LikeTogglesTotal.WithLabelValues(action).Inc()
	return c.JSON(http.StatusOK, toggleLikeResponse{Success: true, Liked: state.Liked, LikesCount: state.Count})
}

// LikeStatus reports the like count and whether the caller liked the post.
//
// @Summary      Like status
// @Tags         post
// @Produce      json
// @Security     CookieAuth
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  likeStatusResponse
// @Failure      404     {object}  messageResponse
// @Router       /api/post/likes/{postId} [get]
func (h *PostHandler) LikeStatus(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	state, err := h.posts.LikeStatus(c.Request().Context(), c.Param("postId"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeStatusResponse{Success: true, LikesCount: state.Count, IsLiked: state.Liked})
}

// AddComment comments on a post.
//
// @Summary      Add comment
// @Tags         post
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        postId  path      string          true  "Post id"
// @Param        body    body      commentRequest  true  "Comment"
// @Success      201     {object}  commentResponse
// @Failure      400     {object}  messageResponse
// @Failure      404     {object}  messageResponse
// @Router       /api/post/comment/{postId} [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload.")
	}
	comment, err := h.posts.AddComment(c.Request().Context(), c.Param("postId"), userID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, commentResponse{Success: true, Comment: comment})
}

// DeleteComment removes a comment authored by the caller, or any comment
// when the caller is an admin.
//
// @Summary      Delete comment
// @Tags         post
// @Produce      json
// @Security     CookieAuth
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  messageResponse
// @Failure      403        {object}  messageResponse
// @Failure      404        {object}  messageResponse
// @Router       /api/post/comment/{commentId} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	override, err := h.posts.DeleteComment(c.Request().Context(), c.Param("commentId"), userID)
	if err != nil {
		return err
	}
	msg := "Comment deleted successfully."
	if override {
		msg = "Comment deleted successfully (admin)."
	}
	return c.JSON(http.StatusOK, ok(msg))
}

// ListComments lists a post's comments, oldest first.
//
// @Summary      List comments
// @Tags         post
// @Produce      json
// @Security     CookieAuth
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  commentsResponse
// @Failure      404     {object}  messageResponse
// @Router       /api/post/comments/{postId} [get]
func (h *PostHandler) ListComments(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	comments, err := h.posts.ListComments(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []ports.CommentView{}
	}
	return c.JSON(http.StatusOK, commentsResponse{Success: true, Comments: comments})
}

// CountComments returns the number of comments on a post. It is public.
//
// @Summary      Comment count
// @Tags         post
// @Produce      json
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  commentCountResponse
// @Failure      404     {object}  messageResponse
// @Router       /api/post/comments/count/{postId} [get]
func (h *PostHandler) CountComments(c echo.Context) error {
	n, err := h.posts.CountComments(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentCountResponse{Success: true, Count: n})
}

// Delete removes a post with its comments and image.
//
// @Summary      Delete post
// @Tags         post
// @Produce      json
// @Security     CookieAuth
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  messageResponse
// @Failure      403     {object}  messageResponse
// @Failure      404     {object}  messageResponse
// @Router       /api/post/{postId} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.Request().Context(), c.Param("postId"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Post deleted successfully."))
}
