package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReactionKind is the closed set of reactions a user can place on a post.
// Anything outside this set is rejected, never silently ignored.
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionLaugh ReactionKind = "laugh"
	ReactionAngry ReactionKind = "angry"
	ReactionSad   ReactionKind = "sad"
)

// ReactionKinds lists every recognized kind.
func ReactionKinds() []ReactionKind {
	return []ReactionKind{ReactionLike, ReactionLove, ReactionLaugh, ReactionAngry, ReactionSad}
}

// Valid reports whether k is a recognized reaction kind.
func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionAngry, ReactionSad:
		return true
	}
	return false
}

// Reactions holds one membership bucket per kind. Invariant: a user id
// appears in at most one bucket at any time.
type Reactions struct {
	Like  []primitive.ObjectID `bson:"like"`
	Love  []primitive.ObjectID `bson:"love"`
	Laugh []primitive.ObjectID `bson:"laugh"`
	Angry []primitive.ObjectID `bson:"angry"`
	Sad   []primitive.ObjectID `bson:"sad"`
}

// NewReactions returns reaction buckets initialized to empty sets, so that
// stored documents carry real arrays the update operators can target.
func NewReactions() Reactions {
	return Reactions{
		Like:  []primitive.ObjectID{},
		Love:  []primitive.ObjectID{},
		Laugh: []primitive.ObjectID{},
		Angry: []primitive.ObjectID{},
		Sad:   []primitive.ObjectID{},
	}
}

// Bucket returns the membership set for kind.
func (r *Reactions) Bucket(kind ReactionKind) []primitive.ObjectID {
	switch kind {
	case ReactionLike:
		return r.Like
	case ReactionLove:
		return r.Love
	case ReactionLaugh:
		return r.Laugh
	case ReactionAngry:
		return r.Angry
	case ReactionSad:
		return r.Sad
	}
	return nil
}

// Comment is an embedded child record of a post. Its identifier lives in its
// own space (a UUID, unrelated to any document id) and the author fields are
// a snapshot taken at comment time; later profile edits do not rewrite them.
type Comment struct {
	ID           string             `bson:"_id"`
	AuthorID     primitive.ObjectID `bson:"author_id"`
	AuthorName   string             `bson:"author_name"`
	AuthorAvatar string             `bson:"author_avatar"`
	Content      string             `bson:"content"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// Post is the persisted post document. Likes is the legacy toggle set and is
// deliberately independent of the reaction buckets.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	AuthorID  primitive.ObjectID   `bson:"author_id"`
	Content   string               `bson:"content"`
	ImageURL  string               `bson:"image_url"`
	CreatedAt time.Time            `bson:"created_at"`
	Likes     []primitive.ObjectID `bson:"likes"`
	Reactions Reactions            `bson:"reactions"`
	Comments  []Comment            `bson:"comments"`
}

type CommentView struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// View renders the comment with string identifiers.
func (c Comment) View() CommentView {
	return CommentView{
		ID:           c.ID,
		AuthorID:     c.AuthorID.Hex(),
		AuthorName:   c.AuthorName,
		AuthorAvatar: c.AuthorAvatar,
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
	}
}

type ReactionsView struct {
	Like  []string `json:"like"`
	Love  []string `json:"love"`
	Laugh []string `json:"laugh"`
	Angry []string `json:"angry"`
	Sad   []string `json:"sad"`
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

// View renders every bucket with string identifiers; empty buckets render as
// empty arrays, not null.
func (r *Reactions) View() ReactionsView {
	return ReactionsView{
		Like:  hexIDs(r.Like),
		Love:  hexIDs(r.Love),
		Laugh: hexIDs(r.Laugh),
		Angry: hexIDs(r.Angry),
		Sad:   hexIDs(r.Sad),
	}
}

// PostView is a fully joined post: the author is resolved to a public
// profile and no storage identifiers leak through.
type PostView struct {
	ID        string        `json:"id"`
	Author    Profile       `json:"author"`
	Content   string        `json:"content"`
	ImageURL  string        `json:"image_url"`
	CreatedAt time.Time     `json:"created_at"`
	Likes     []string      `json:"likes"`
	Reactions ReactionsView `json:"reactions"`
	Comments  []CommentView `json:"comments"`
}

// View renders the post joined with its author's public profile.
func (p *Post) View(author Profile) PostView {
	comments := make([]CommentView, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, c.View())
	}
	return PostView{
		ID:        p.ID.Hex(),
		Author:    author,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		Likes:     hexIDs(p.Likes),
		Reactions: p.Reactions.View(),
		Comments:  comments,
	}
}
