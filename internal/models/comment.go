package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment belongs to exactly one post. ParentID, when set, references
// another comment on the same post (threaded reply).
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Text      string             `json:"text" bson:"text"`
	Author    string             `json:"author" bson:"author"`
	Post      string             `json:"post" bson:"post"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Likes     []string           `json:"likes" bson:"likes"`
	ParentID  *string            `json:"parentId" bson:"parentId,omitempty"`
}
