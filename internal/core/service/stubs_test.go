package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	seq       int
	createErr error
	setErr    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Experiences = append([]domain.Experience(nil), u.Experiences...)
	return &clone
}

// add stores a ready-made user and returns its id.
func (r *stubUserRepo) add(u domain.User) string {
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.users[u.ID] = cloneUser(&u)
	return u.ID
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	id := r.add(*u)
	return cloneUser(r.users[id]), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindSummaries(_ context.Context, ids []string) (map[string]domain.UserSummary, error) {
	out := make(map[string]domain.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

func (r *stubUserRepo) Search(_ context.Context, username string, limit int) ([]domain.UserSummary, error) {
	out := []domain.UserSummary{}
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(username)) && len(out) < limit {
			out = append(out, u.Summary())
		}
	}
	return out, nil
}

func (r *stubUserRepo) ConsumeVerificationToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range r.users {
		if u.VerifyToken != "" && u.VerifyToken == token {
			u.IsVerified = true
			u.VerifyToken = ""
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrInvalidToken
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id, token string, expires time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetExpires = &expires
	return nil
}

func (r *stubUserRepo) validReset(token string, now time.Time) *domain.User {
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetToken == token && u.ResetExpires != nil && u.ResetExpires.After(now) {
			return u
		}
	}
	return nil
}

func (r *stubUserRepo) FindByResetToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	u := r.validReset(token, now)
	if u == nil {
		return nil, domain.ErrInvalidToken
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ConsumeResetToken(_ context.Context, token string, now time.Time, hash string) error {
	u := r.validReset(token, now)
	if u == nil {
		return domain.ErrInvalidToken
	}
	u.PasswordHash = hash
	u.ResetToken = ""
	u.ResetExpires = nil
	return nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, up ports.ProfileUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Headline, u.Work, u.Bio = up.Headline, up.Work, up.Bio
	if up.ReplaceExperiences {
		u.Experiences = up.Experiences
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) setPath(id string, set func(u *domain.User) string) (string, error) {
	if r.setErr != nil {
		return "", r.setErr
	}
	u, ok := r.users[id]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return set(u), nil
}

func (r *stubUserRepo) SetProfilePicture(_ context.Context, id, path string) (string, error) {
	return r.setPath(id, func(u *domain.User) string {
		prev := u.ProfilePicture
		u.ProfilePicture = path
		return prev
	})
}

func (r *stubUserRepo) SetResume(_ context.Context, id, path string) (string, error) {
	return r.setPath(id, func(u *domain.User) string {
		prev := u.Resume
		u.Resume = path
		return prev
	})
}

func (r *stubUserRepo) IncrementProfileViews(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ProfileViews++
	return nil
}

func (r *stubUserRepo) SetBlocked(_ context.Context, id string, blocked bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsBlocked = blocked
	return nil
}

type stubConnectionRepo struct {
	byID map[string]*domain.Connection
	seq  int
}

func newStubConnectionRepo() *stubConnectionRepo {
	return &stubConnectionRepo{byID: make(map[string]*domain.Connection)}
}

func (r *stubConnectionRepo) Create(_ context.Context, c *domain.Connection) (*domain.Connection, error) {
	key := domain.PairKey(c.RequesterID, c.ReceiverID)
	for _, existing := range r.byID {
		if domain.PairKey(existing.RequesterID, existing.ReceiverID) == key {
			return nil, domain.ErrConnectionExists
		}
	}
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("c%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubConnectionRepo) FindByID(_ context.Context, id string) (*domain.Connection, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrConnectionNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubConnectionRepo) FindBetween(_ context.Context, a, b string) (*domain.Connection, error) {
	key := domain.PairKey(a, b)
	for _, c := range r.byID {
		if domain.PairKey(c.RequesterID, c.ReceiverID) == key {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrConnectionNotFound
}

func (r *stubConnectionRepo) UpdateStatus(_ context.Context, id string, status domain.ConnectionStatus) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrConnectionNotFound
	}
	c.Status = status
	return nil
}

func (r *stubConnectionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrConnectionNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubConnectionRepo) ListPendingFor(_ context.Context, receiverID string) ([]domain.Connection, error) {
	out := []domain.Connection{}
	for _, c := range r.byID {
		if c.ReceiverID == receiverID && c.Status == domain.ConnectionPending {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubConnectionRepo) CountAccepted(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, c := range r.byID {
		if c.Status == domain.ConnectionAccepted && c.Involves(userID) {
			n++
		}
	}
	return n, nil
}

type stubConversationRepo struct {
	byID map[string]*domain.Conversation
	seq  int
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{byID: make(map[string]*domain.Conversation)}
}

func (r *stubConversationRepo) FindOrCreate(_ context.Context, a, b string) (*domain.Conversation, error) {
	key := domain.PairKey(a, b)
	for _, c := range r.byID {
		if domain.PairKey(c.Users[0], c.Users[1]) == key {
			clone := *c
			return &clone, nil
		}
	}
	r.seq++
	c := &domain.Conversation{ID: fmt.Sprintf("conv%d", r.seq), Users: []string{a, b}}
	r.byID[c.ID] = c
	clone := *c
	return &clone, nil
}

func (r *stubConversationRepo) FindByID(_ context.Context, id string) (*domain.Conversation, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubConversationRepo) ListForUser(_ context.Context, userID string) ([]domain.Conversation, error) {
	out := []domain.Conversation{}
	for _, c := range r.byID {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *stubConversationRepo) NextSequence(_ context.Context, id string) (int64, error) {
	c, ok := r.byID[id]
	if !ok {
		return 0, domain.ErrConversationNotFound
	}
	c.LastSequence++
	return c.LastSequence, nil
}

func (r *stubConversationRepo) Touch(_ context.Context, id string, at time.Time) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrConversationNotFound
	}
	c.UpdatedAt = at
	return nil
}

type stubMessageRepo struct {
	msgs []*domain.Message
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	clone := *m
	clone.ID = fmt.Sprintf("m%d", len(r.msgs)+1)
	r.msgs = append(r.msgs, &clone)
	out := clone
	return &out, nil
}

func (r *stubMessageRepo) ListByConversation(_ context.Context, convID string) ([]domain.Message, error) {
	out := []domain.Message{}
	for _, m := range r.msgs {
		if m.ConversationID == convID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	return out, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, convID, receiverID string) (int64, error) {
	var n int64
	for _, m := range r.msgs {
		if m.ConversationID == convID && m.ReceiverID == receiverID && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

func (r *stubMessageRepo) CountUnread(_ context.Context, convID, receiverID string) (int64, error) {
	var n int64
	for _, m := range r.msgs {
		if m.ConversationID == convID && m.ReceiverID == receiverID && !m.Read {
			n++
		}
	}
	return n, nil
}

type stubPostRepo struct {
	byID map[string]*domain.Post
	seq  int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{byID: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Likes = append([]string{}, p.Likes...)
	clone.CommentIDs = append([]string{}, p.CommentIDs...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.seq++
	clone := clonePost(p)
	clone.ID = fmt.Sprintf("p%d", r.seq)
	r.byID[clone.ID] = clone
	return clonePost(clone), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) Feed(_ context.Context, limit int) ([]domain.Post, error) {
	out := []domain.Post{}
	for _, p := range r.byID {
		out = append(out, *clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubPostRepo) ToggleLike(_ context.Context, postID, userID string) (bool, int, error) {
	p, ok := r.byID[postID]
	if !ok {
		return false, 0, domain.ErrPostNotFound
	}
	if p.LikedBy(userID) {
		kept := p.Likes[:0]
		for _, id := range p.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		p.Likes = kept
		return false, len(p.Likes), nil
	}
	p.Likes = append(p.Likes, userID)
	return true, len(p.Likes), nil
}

func (r *stubPostRepo) AddComment(_ context.Context, postID, commentID string) error {
	p, ok := r.byID[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.CommentIDs = append(p.CommentIDs, commentID)
	return nil
}

func (r *stubPostRepo) RemoveComment(_ context.Context, postID, commentID string) error {
	p, ok := r.byID[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	kept := p.CommentIDs[:0]
	for _, id := range p.CommentIDs {
		if id != commentID {
			kept = append(kept, id)
		}
	}
	p.CommentIDs = kept
	return nil
}

type stubCommentRepo struct {
	byID map[string]*domain.Comment
	seq  int
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{byID: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("cm%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *stubCommentRepo) DeleteByPost(_ context.Context, postID string) (int64, error) {
	var n int64
	for id, c := range r.byID {
		if c.PostID == postID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *stubCommentRepo) ListByPost(_ context.Context, postID string) ([]domain.Comment, error) {
	out := []domain.Comment{}
	for _, c := range r.byID {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *stubCommentRepo) CountByPost(_ context.Context, postID string) (int64, error) {
	var n int64
	for _, c := range r.byID {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

type stubJobRepo struct {
	byID map[string]*domain.Job
	seq  int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	clone := *j
	clone.Applicants = append([]domain.Applicant{}, j.Applicants...)
	return &clone
}

func (r *stubJobRepo) Create(_ context.Context, j *domain.Job) (*domain.Job, error) {
	r.seq++
	clone := cloneJob(j)
	clone.ID = fmt.Sprintf("j%d", r.seq)
	r.byID[clone.ID] = clone
	return cloneJob(clone), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) ListActive(_ context.Context) ([]domain.Job, error) {
	out := []domain.Job{}
	for _, j := range r.byID {
		if j.IsActive {
			out = append(out, *cloneJob(j))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *stubJobRepo) AddApplicant(_ context.Context, jobID string, a domain.Applicant) error {
	j, ok := r.byID[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if j.PostedBy == a.UserID {
		return domain.ErrOwnJob
	}
	if j.HasApplicant(a.UserID) {
		return domain.ErrAlreadyApplied
	}
	j.Applicants = append(j.Applicants, a)
	return nil
}

func (r *stubJobRepo) Deactivate(_ context.Context, id string) error {
	j, ok := r.byID[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.IsActive = false
	return nil
}

// ---------------------------------------------------------------------------
// Infrastructure stubs
// ---------------------------------------------------------------------------

type stubFileStore struct {
	mu      sync.Mutex
	saved   []string
	removed []string
	saveErr error
}

func (f *stubFileStore) Save(_ context.Context, kind domain.UploadKind, file ports.FileInput) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ref := fmt.Sprintf("/uploads/%s/%d-%s", kind, len(f.saved)+1, file.Filename)
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *stubFileStore) Remove(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, ref)
	return nil
}

type sentMail struct {
	kind, to, link string
}

type stubMailer struct {
	sent []sentMail
	err  error
}

func (m *stubMailer) SendVerification(_ context.Context, to, link string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{"verify", to, link})
	return nil
}

func (m *stubMailer) SendPasswordReset(_ context.Context, to, link string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{"reset", to, link})
	return nil
}

// inlineQueue runs tasks synchronously.
type inlineQueue struct {
	names []string
}

func (q *inlineQueue) Enqueue(t ports.Task) {
	q.names = append(q.names, t.Name)
	_ = t.Run(context.Background())
}

type stubThrottle struct {
	allow bool
	err   error
}

func (t stubThrottle) Allow(context.Context, string) (bool, error) { return t.allow, t.err }

type stubDeduper struct {
	seen map[string]bool
}

func (d *stubDeduper) FirstView(_ context.Context, viewerID, profileID string) (bool, error) {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	key := viewerID + ">" + profileID
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

type stubIssuer struct{}

func (stubIssuer) Issue(id domain.Identity) (string, error) { return "token-" + id.ID, nil }
