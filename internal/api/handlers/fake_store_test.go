package handlers_test

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/models"
	"github.com/yapster-gg/yapster-api/internal/store"
)

// fakeStore backs the HTTP tests with in-memory documents. Like the real
// store it enforces username uniqueness at insert time. hideUsernames makes
// username lookups miss, simulating the window where a concurrent signup
// has passed the availability check but not yet inserted; lookupErr makes
// document reads fail with the given error.
type fakeStore struct {
	users    map[string]*models.User
	posts    map[string]*models.Post
	comments map[string]*models.Comment

	hideUsernames bool
	lookupErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		posts:    make(map[string]*models.Post),
		comments: make(map[string]*models.Comment),
	}
}

func (f *fakeStore) UserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	if f.hideUsernames {
		return nil, common.ErrNotFound
	}
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) UsersByIDs(_ context.Context, ids []string) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeStore) UsersExcept(_ context.Context, id string) ([]models.User, error) {
	out := []models.User{}
	for uid, u := range f.users {
		if uid != id {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeStore) AllUsers(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) PostByID(_ context.Context, id string) (*models.Post, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if p, ok := f.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) AllPosts(_ context.Context) ([]models.Post, error) {
	out := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) CommentByID(_ context.Context, id string) (*models.Comment, error) {
	if c, ok := f.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) CommentsByPost(_ context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.Post == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) AllComments(_ context.Context) ([]models.Comment, error) {
	out := make([]models.Comment, 0, len(f.comments))
	for _, c := range f.comments {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) InsertUser(_ context.Context, user *models.User) (string, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return "", fmt.Errorf("username is taken: %w", common.ErrInvalidOperation)
		}
	}
	user.ID = primitive.NewObjectID()
	copied := *user
	f.users[user.ID.Hex()] = &copied
	return user.ID.Hex(), nil
}

func (f *fakeStore) InsertPost(_ context.Context, post *models.Post) (string, error) {
	post.ID = primitive.NewObjectID()
	copied := *post
	f.posts[post.ID.Hex()] = &copied
	return post.ID.Hex(), nil
}

func (f *fakeStore) InsertComment(_ context.Context, comment *models.Comment) (string, error) {
	comment.ID = primitive.NewObjectID()
	copied := *comment
	f.comments[comment.ID.Hex()] = &copied
	return comment.ID.Hex(), nil
}

func (f *fakeStore) AddToSet(_ context.Context, coll store.Collection, docID, field, value string) error {
	ref, err := f.arrayRef(coll, docID, field)
	if err != nil {
		return err
	}
	for _, v := range *ref {
		if v == value {
			return nil
		}
	}
	*ref = append(*ref, value)
	return nil
}

func (f *fakeStore) Pull(_ context.Context, coll store.Collection, docID, field, value string) error {
	ref, err := f.arrayRef(coll, docID, field)
	if err != nil {
		return err
	}
	out := (*ref)[:0]
	for _, v := range *ref {
		if v != value {
			out = append(out, v)
		}
	}
	*ref = out
	return nil
}

func (f *fakeStore) PullValues(ctx context.Context, coll store.Collection, docID, field string, values []string) error {
	for _, v := range values {
		if err := f.Pull(ctx, coll, docID, field, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) PullFromAll(ctx context.Context, coll store.Collection, field string, values []string) error {
	var ids []string
	switch coll {
	case store.Users:
		for id := range f.users {
			ids = append(ids, id)
		}
	case store.Posts:
		for id := range f.posts {
			ids = append(ids, id)
		}
	case store.Comments:
		for id := range f.comments {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		if err := f.PullValues(ctx, coll, id, field, values); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) DeleteCommentsByPost(_ context.Context, postID string) error {
	for id, c := range f.comments {
		if c.Post == postID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeStore) DeletePost(_ context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) SetUserFields(_ context.Context, id string, fields map[string]any) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "pronouns":
			u.Pronouns = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "image":
			u.Image = v.(string)
		case "banner":
			u.Banner = v.(string)
		case "passwordHash":
			u.PasswordHash = v.(string)
		}
	}
	return nil
}

func (f *fakeStore) Ping(_ context.Context) error { return nil }

func (f *fakeStore) arrayRef(coll store.Collection, docID, field string) (*[]string, error) {
	switch coll {
	case store.Users:
		u, ok := f.users[docID]
		if !ok {
			return nil, common.ErrNotFound
		}
		switch field {
		case "followers":
			return &u.Followers, nil
		case "following":
			return &u.Following, nil
		case "posts":
			return &u.Posts, nil
		case "likes":
			return &u.Likes, nil
		case "saves":
			return &u.Saves, nil
		case "comments":
			return &u.Comments, nil
		case "likedComments":
			return &u.LikedComments, nil
		}
	case store.Posts:
		p, ok := f.posts[docID]
		if !ok {
			return nil, common.ErrNotFound
		}
		switch field {
		case "likes":
			return &p.Likes, nil
		case "saves":
			return &p.Saves, nil
		case "comments":
			return &p.Comments, nil
		}
	case store.Comments:
		c, ok := f.comments[docID]
		if !ok {
			return nil, common.ErrNotFound
		}
		if field == "likes" {
			return &c.Likes, nil
		}
	}
	return nil, fmt.Errorf("unknown array %s.%s", coll, field)
}
