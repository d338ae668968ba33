package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostContent is the user-supplied body of a post. Items are image URLs.
type PostContent struct {
	Text     string   `json:"text" bson:"text"`
	Items    []string `json:"items" bson:"items"`
	Location string   `json:"location" bson:"location"`
	Tags     []string `json:"tags" bson:"tags"`
}

// Post is a feed document. Likes and Saves hold user IDs, Comments holds
// comment IDs mirrored from the comment collection.
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Author    string             `json:"author" bson:"author"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Likes     []string           `json:"likes" bson:"likes"`
	Saves     []string           `json:"saves" bson:"saves"`
	Comments  []string           `json:"comments" bson:"comments"`
	Content   PostContent        `json:"content" bson:"content"`
}
