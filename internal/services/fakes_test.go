package services

import (
	"context"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thanhng/socialhub/internal/models"
)

// In-memory fakes for the store contracts. They reproduce the semantics the
// services depend on: set-style adds, guarded transitions, the duplicate key
// error on pending-pair collisions, and the group-max conversation query.

var errDuplicateKey = mongo.WriteException{
	WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key error"}},
}

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User

	getErr     error
	insertErr  error
	updateErr  error
	addErr     error
	searchErr  error
	getManyErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) add(name, email string) *models.User {
	u := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		Friends:   []primitive.ObjectID{},
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) befriend(a, b *models.User) {
	a.Friends = append(a.Friends, b.ID)
	b.Friends = append(b.Friends, a.ID)
}

func (f *fakeUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if f.getManyErr != nil {
		return nil, f.getManyErr
	}
	out := []models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, errDuplicateKey
		}
	}
	id := primitive.NewObjectID()
	copied := *user
	copied.ID = id
	f.users[id] = &copied
	return id, nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.Avatar != nil {
		u.Avatar = *update.Avatar
	}
	return nil
}

func (f *fakeUserStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (bool, error) {
	if f.addErr != nil {
		return false, f.addErr
	}
	u, ok := f.users[userID]
	if !ok {
		return false, mongo.ErrNoDocuments
	}
	for _, id := range u.Friends {
		if id == friendID {
			return false, nil
		}
	}
	u.Friends = append(u.Friends, friendID)
	return true, nil
}

func (f *fakeUserStore) Search(ctx context.Context, pattern string, exclude []primitive.ObjectID, limit int64) ([]models.User, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	excluded := make(map[primitive.ObjectID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	out := []models.User{}
	for _, u := range f.users {
		if excluded[u.ID] {
			continue
		}
		if re.MatchString(u.Name) || re.MatchString(u.Email) {
			out = append(out, *u)
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

type fakeRequestStore struct {
	reqs []*models.FriendRequest

	insertErr  error
	listErr    error
	acceptErr  error
	pendingErr error
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{}
}

func (f *fakeRequestStore) addPending(from, to primitive.ObjectID) *models.FriendRequest {
	r := &models.FriendRequest{
		ID:        primitive.NewObjectID(),
		FromUser:  from,
		ToUser:    to,
		Status:    models.RequestStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	f.reqs = append(f.reqs, r)
	return r
}

func (f *fakeRequestStore) PendingExists(ctx context.Context, from, to primitive.ObjectID) (bool, error) {
	if f.pendingErr != nil {
		return false, f.pendingErr
	}
	for _, r := range f.reqs {
		if r.FromUser == from && r.ToUser == to && r.Status == models.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestStore) Insert(ctx context.Context, req *models.FriendRequest) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	// The pending-pair unique index.
	for _, r := range f.reqs {
		if r.FromUser == req.FromUser && r.ToUser == req.ToUser && r.Status == models.RequestStatusPending {
			return primitive.NilObjectID, errDuplicateKey
		}
	}
	copied := *req
	copied.ID = primitive.NewObjectID()
	f.reqs = append(f.reqs, &copied)
	return copied.ID, nil
}

func (f *fakeRequestStore) ListPendingFor(ctx context.Context, to primitive.ObjectID) ([]models.FriendRequest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.FriendRequest{}
	for _, r := range f.reqs {
		if r.ToUser == to && r.Status == models.RequestStatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) ListPendingInvolving(ctx context.Context, user primitive.ObjectID) ([]models.FriendRequest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.FriendRequest{}
	for _, r := range f.reqs {
		if r.Status == models.RequestStatusPending && (r.FromUser == user || r.ToUser == user) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) AcceptPending(ctx context.Context, id, to primitive.ObjectID, at time.Time) (*models.FriendRequest, error) {
	if f.acceptErr != nil {
		return nil, f.acceptErr
	}
	for _, r := range f.reqs {
		if r.ID == id && r.ToUser == to && r.Status == models.RequestStatusPending {
			r.Status = models.RequestStatusAccepted
			r.AcceptedAt = &at
			copied := *r
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRequestStore) ListAccepted(ctx context.Context) ([]models.FriendRequest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.FriendRequest{}
	for _, r := range f.reqs {
		if r.Status == models.RequestStatusAccepted {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakePostStore struct {
	posts map[primitive.ObjectID]*models.Post

	getErr    error
	insertErr error
	updateErr error
	deleteErr error
	listErr   error
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (f *fakePostStore) add(author primitive.ObjectID, content string) *models.Post {
	p := &models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Likes:     []primitive.ObjectID{},
		Reactions: models.NewReactions(),
		Comments:  []models.Comment{},
	}
	f.posts[p.ID] = p
	return p
}

func (f *fakePostStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostStore) Insert(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	id := primitive.NewObjectID()
	copied := *post
	copied.ID = id
	f.posts[id] = &copied
	return id, nil
}

func (f *fakePostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.posts[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) ListByAuthors(ctx context.Context, authors []primitive.ObjectID) ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	wanted := make(map[primitive.ObjectID]bool, len(authors))
	for _, id := range authors {
		wanted[id] = true
	}
	out := []models.Post{}
	for _, p := range f.posts {
		if wanted[p.AuthorID] {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakePostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, id := range p.Likes {
		if id == userID {
			return nil
		}
	}
	p.Likes = append(p.Likes, userID)
	return nil
}

func (f *fakePostStore) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Likes = removeID(p.Likes, userID)
	return nil
}

func (f *fakePostStore) SetReaction(ctx context.Context, postID, userID primitive.ObjectID, kind models.ReactionKind) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Reactions.Like = removeID(p.Reactions.Like, userID)
	p.Reactions.Love = removeID(p.Reactions.Love, userID)
	p.Reactions.Laugh = removeID(p.Reactions.Laugh, userID)
	p.Reactions.Angry = removeID(p.Reactions.Angry, userID)
	p.Reactions.Sad = removeID(p.Reactions.Sad, userID)
	switch kind {
	case models.ReactionLike:
		p.Reactions.Like = append(p.Reactions.Like, userID)
	case models.ReactionLove:
		p.Reactions.Love = append(p.Reactions.Love, userID)
	case models.ReactionLaugh:
		p.Reactions.Laugh = append(p.Reactions.Laugh, userID)
	case models.ReactionAngry:
		p.Reactions.Angry = append(p.Reactions.Angry, userID)
	case models.ReactionSad:
		p.Reactions.Sad = append(p.Reactions.Sad, userID)
	}
	return nil
}

func (f *fakePostStore) AppendComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Comments = append(p.Comments, comment)
	return nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type fakeMessageStore struct {
	msgs []*models.Message

	insertErr error
	findErr   error
	markErr   error
	aggErr    error
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{}
}

func (f *fakeMessageStore) add(from, to primitive.ObjectID, content string, at time.Time) *models.Message {
	m := &models.Message{
		ID:        primitive.NewObjectID(),
		FromUser:  from,
		ToUser:    to,
		Content:   content,
		CreatedAt: at,
	}
	f.msgs = append(f.msgs, m)
	return m
}

func (f *fakeMessageStore) Insert(ctx context.Context, msg *models.Message) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	copied := *msg
	copied.ID = primitive.NewObjectID()
	f.msgs = append(f.msgs, &copied)
	return copied.ID, nil
}

func (f *fakeMessageStore) Between(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := []models.Message{}
	for _, m := range f.msgs {
		if (m.FromUser == a && m.ToUser == b) || (m.FromUser == b && m.ToUser == a) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeMessageStore) MarkRead(ctx context.Context, from, to primitive.ObjectID) (int64, error) {
	if f.markErr != nil {
		return 0, f.markErr
	}
	var n int64
	for _, m := range f.msgs {
		if m.FromUser == from && m.ToUser == to && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageStore) LatestPerPeer(ctx context.Context, user primitive.ObjectID) ([]models.PeerLatest, error) {
	if f.aggErr != nil {
		return nil, f.aggErr
	}
	latest := make(map[primitive.ObjectID]models.Message)
	for _, m := range f.msgs {
		var peer primitive.ObjectID
		switch user {
		case m.FromUser:
			peer = m.ToUser
		case m.ToUser:
			peer = m.FromUser
		default:
			continue
		}
		if cur, ok := latest[peer]; !ok || m.CreatedAt.After(cur.CreatedAt) {
			latest[peer] = *m
		}
	}
	out := []models.PeerLatest{}
	for peer, msg := range latest {
		out = append(out, models.PeerLatest{Peer: peer, Message: msg})
	}
	return out, nil
}
