// SPDX-License-Identifier: AGPL-3.0-only

// Package coordinator implements the cross-document consistency core:
// toggle operations on denormalized back-reference arrays, cascading post
// deletion, comment creation/listing, and the reconciliation sweep.
//
// Every relation is stored twice (forward array on the target, mirror
// array on the actor) and both copies are maintained with independent
// set-semantics updates. The two writes of a toggle are not transactional;
// a failure between them leaves a narrow inconsistency window that is not
// compensated, only bounded by the periodic sweep.
package coordinator

import (
	"context"
	"log/slog"

	"github.com/yapster-gg/yapster-api/internal/models"
	"github.com/yapster-gg/yapster-api/internal/store"
)

// Store is the document-store surface the coordinator needs: typed finds
// plus add-if-absent / remove-if-present array mutations. *store.Store
// implements it; tests substitute an in-memory fake.
type Store interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
	PostByID(ctx context.Context, id string) (*models.Post, error)
	CommentByID(ctx context.Context, id string) (*models.Comment, error)
	CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error)

	InsertPost(ctx context.Context, post *models.Post) (string, error)
	InsertComment(ctx context.Context, comment *models.Comment) (string, error)

	AddToSet(ctx context.Context, coll store.Collection, docID, field, value string) error
	Pull(ctx context.Context, coll store.Collection, docID, field, value string) error
	PullValues(ctx context.Context, coll store.Collection, docID, field string, values []string) error
	PullFromAll(ctx context.Context, coll store.Collection, field string, values []string) error

	DeleteCommentsByPost(ctx context.Context, postID string) error
	DeletePost(ctx context.Context, id string) error

	AllUsers(ctx context.Context) ([]models.User, error)
	AllPosts(ctx context.Context) ([]models.Post, error)
	AllComments(ctx context.Context) ([]models.Comment, error)
}

type Coordinator struct {
	store Store
	log   *slog.Logger
}

func New(s Store, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{store: s, log: log}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
