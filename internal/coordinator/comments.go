// SPDX-License-Identifier: AGPL-3.0-only
package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/models"
	"github.com/yapster-gg/yapster-api/internal/store"
)

// CreateComment inserts a comment on a post, optionally threaded under a
// parent comment. The parent must exist and belong to the same post, which
// blocks cross-post reply injection. The new comment's ID is mirrored into
// the post's and the author's comments arrays.
func (c *Coordinator) CreateComment(ctx context.Context, actorID, postID, text string, parentID *string) (*models.Comment, error) {
	if _, err := c.store.PostByID(ctx, postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := c.store.CommentByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.Post != postID {
			return nil, fmt.Errorf("parent comment belongs to a different post: %w", common.ErrInvalidOperation)
		}
	}

	comment := &models.Comment{
		Text:      text,
		Author:    actorID,
		Post:      postID,
		Timestamp: time.Now().UTC(),
		Likes:     []string{},
		ParentID:  parentID,
	}

	id, err := c.store.InsertComment(ctx, comment)
	if err != nil {
		return nil, err
	}

	if err := c.store.AddToSet(ctx, store.Posts, postID, "comments", id); err != nil {
		return nil, err
	}
	if err := c.store.AddToSet(ctx, store.Users, actorID, "comments", id); err != nil {
		return nil, err
	}

	return comment, nil
}
