package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a profile document. The five trailing arrays are denormalized
// back-references holding hex document IDs; the authoritative copy of each
// relation lives on the opposite side (e.g. Post.Likes is authoritative for
// "who liked this post", User.Likes is the reverse index).
type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username      string             `json:"username" bson:"username"`
	Name          string             `json:"name" bson:"name"`
	Pronouns      string             `json:"pronouns" bson:"pronouns"`
	Bio           string             `json:"bio" bson:"bio"`
	Image         string             `json:"image" bson:"image"`
	Banner        string             `json:"banner" bson:"banner"`
	Verified      bool               `json:"verified" bson:"verified"`
	PasswordHash  string             `json:"-" bson:"passwordHash"`
	Followers     []string           `json:"followers" bson:"followers"`
	Following     []string           `json:"following" bson:"following"`
	Posts         []string           `json:"posts" bson:"posts"`
	Likes         []string           `json:"likes" bson:"likes"`
	Saves         []string           `json:"saves" bson:"saves"`
	Comments      []string           `json:"comments" bson:"comments"`
	LikedComments []string           `json:"likedComments" bson:"likedComments"`
}

// Public is the user shape returned by profile endpoints. Saves and
// likedComments stay private to the owner.
type PublicUser struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Name      string   `json:"name"`
	Image     string   `json:"image"`
	Banner    string   `json:"banner"`
	Pronouns  string   `json:"pronouns"`
	Bio       string   `json:"bio"`
	Verified  bool     `json:"verified"`
	Followers []string `json:"followers"`
	Following []string `json:"following"`
	Posts     []string `json:"posts"`
	Likes     []string `json:"likes"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Name:      u.Name,
		Image:     u.Image,
		Banner:    u.Banner,
		Pronouns:  u.Pronouns,
		Bio:       u.Bio,
		Verified:  u.Verified,
		Followers: orEmpty(u.Followers),
		Following: orEmpty(u.Following),
		Posts:     orEmpty(u.Posts),
		Likes:     orEmpty(u.Likes),
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
