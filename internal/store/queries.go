package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/models"
)

// storeErr wraps a raw driver error with the shared sentinel so callers
// can match it with errors.Is without depending on the driver.
func storeErr(err error) error {
	return fmt.Errorf("db error: %w: %w", common.ErrStoreFailure, err)
}

// oid parses a hex document ID. A malformed ID can never match a document,
// so it is reported as not-found rather than as a server error.
func oid(id string) (primitive.ObjectID, error) {
	parsed, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.ErrNotFound
	}
	return parsed, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	docID, err := oid(id)
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	err = s.coll(Users).FindOne(ctx, bson.M{"_id": docID}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return user, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.coll(Users).FindOne(ctx, bson.M{"username": username}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return user, nil
}

func (s *Store) UsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	docIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		parsed, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		docIDs = append(docIDs, parsed)
	}
	if len(docIDs) == 0 {
		return []models.User{}, nil
	}

	cursor, err := s.coll(Users).Find(ctx, bson.M{"_id": bson.M{"$in": docIDs}})
	if err != nil {
		return nil, storeErr(err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

// UsersExcept returns every user other than the given one (discover feed).
func (s *Store) UsersExcept(ctx context.Context, id string) ([]models.User, error) {
	docID, err := oid(id)
	if err != nil {
		return nil, err
	}
	cursor, err := s.coll(Users).Find(ctx, bson.M{"_id": bson.M{"$ne": docID}})
	if err != nil {
		return nil, storeErr(err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

func (s *Store) AllUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.coll(Users).Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

func (s *Store) PostByID(ctx context.Context, id string) (*models.Post, error) {
	docID, err := oid(id)
	if err != nil {
		return nil, err
	}
	post := &models.Post{}
	err = s.coll(Posts).FindOne(ctx, bson.M{"_id": docID}).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return post, nil
}

func (s *Store) AllPosts(ctx context.Context) ([]models.Post, error) {
	cursor, err := s.coll(Posts).Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, storeErr(err)
	}
	return posts, nil
}

func (s *Store) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	docID, err := oid(id)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{}
	err = s.coll(Comments).FindOne(ctx, bson.M{"_id": docID}).Decode(comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return comment, nil
}

func (s *Store) CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	cursor, err := s.coll(Comments).Find(ctx, bson.M{"post": postID})
	if err != nil {
		return nil, storeErr(err)
	}
	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, storeErr(err)
	}
	return comments, nil
}

func (s *Store) AllComments(ctx context.Context) ([]models.Comment, error) {
	cursor, err := s.coll(Comments).Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, storeErr(err)
	}
	return comments, nil
}

// InsertUser creates a user document. The unique index on username is the
// authoritative guard against concurrent signups racing the availability
// check; a duplicate-key violation surfaces as an invalid operation.
func (s *Store) InsertUser(ctx context.Context, user *models.User) (string, error) {
	res, err := s.coll(Users).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("username is taken: %w", common.ErrInvalidOperation)
		}
		return "", storeErr(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user.ID.Hex(), nil
}

func (s *Store) InsertPost(ctx context.Context, post *models.Post) (string, error) {
	res, err := s.coll(Posts).InsertOne(ctx, post)
	if err != nil {
		return "", storeErr(err)
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return post.ID.Hex(), nil
}

func (s *Store) InsertComment(ctx context.Context, comment *models.Comment) (string, error) {
	res, err := s.coll(Comments).InsertOne(ctx, comment)
	if err != nil {
		return "", storeErr(err)
	}
	comment.ID = res.InsertedID.(primitive.ObjectID)
	return comment.ID.Hex(), nil
}

// AddToSet adds value to the named array field if absent ($addToSet).
func (s *Store) AddToSet(ctx context.Context, coll Collection, docID, field, value string) error {
	id, err := oid(docID)
	if err != nil {
		return err
	}
	_, err = s.coll(coll).UpdateByID(ctx, id, bson.M{"$addToSet": bson.M{field: value}})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// Pull removes value from the named array field if present ($pull).
func (s *Store) Pull(ctx context.Context, coll Collection, docID, field, value string) error {
	id, err := oid(docID)
	if err != nil {
		return err
	}
	_, err = s.coll(coll).UpdateByID(ctx, id, bson.M{"$pull": bson.M{field: value}})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// PullValues removes every listed value from one document's array field.
func (s *Store) PullValues(ctx context.Context, coll Collection, docID, field string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	id, err := oid(docID)
	if err != nil {
		return err
	}
	_, err = s.coll(coll).UpdateByID(ctx, id, bson.M{"$pullAll": bson.M{field: values}})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// PullFromAll removes the listed values from the array field of every
// document whose field intersects them (one UpdateMany).
func (s *Store) PullFromAll(ctx context.Context, coll Collection, field string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	filter := bson.M{field: bson.M{"$in": values}}
	update := bson.M{"$pull": bson.M{field: bson.M{"$in": values}}}
	_, err := s.coll(coll).UpdateMany(ctx, filter, update)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *Store) DeleteCommentsByPost(ctx context.Context, postID string) error {
	_, err := s.coll(Comments).DeleteMany(ctx, bson.M{"post": postID})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	docID, err := oid(id)
	if err != nil {
		return err
	}
	_, err = s.coll(Posts).DeleteOne(ctx, bson.M{"_id": docID})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// SetUserFields applies a $set of profile fields on one user document.
func (s *Store) SetUserFields(ctx context.Context, id string, fields map[string]any) error {
	docID, err := oid(id)
	if err != nil {
		return err
	}
	_, err = s.coll(Users).UpdateByID(ctx, docID, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return storeErr(err)
	}
	return nil
}
