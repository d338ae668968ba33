// SPDX-License-Identifier: AGPL-3.0-only
package coordinator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/models"
	"github.com/yapster-gg/yapster-api/internal/store"
)

// CreatePost inserts the post and adds its ID to the author's posts array.
// Content is expected to be validated at the boundary already.
func (c *Coordinator) CreatePost(ctx context.Context, actorID string, content models.PostContent) (*models.Post, error) {
	post := &models.Post{
		Author:    actorID,
		Timestamp: time.Now().UTC(),
		Likes:     []string{},
		Saves:     []string{},
		Comments:  []string{},
		Content:   content,
	}

	id, err := c.store.InsertPost(ctx, post)
	if err != nil {
		return nil, err
	}

	if err := c.store.AddToSet(ctx, store.Users, actorID, "posts", id); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost removes a post together with its comments and every
// back-reference to them. Only the author may delete. Dependent records
// are cleaned before the post itself so a mid-sequence failure cannot
// leave comments pointing at a missing post; steps already applied are
// not rolled back.
func (c *Coordinator) DeletePost(ctx context.Context, actorID, postID string) error {
	post, err := c.store.PostByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.Author != actorID {
		return fmt.Errorf("only the author can delete a post: %w", common.ErrForbidden)
	}

	comments, err := c.store.CommentsByPost(ctx, postID)
	if err != nil {
		return err
	}

	commentIDs := make([]string, 0, len(comments))
	byAuthor := make(map[string][]string)
	for _, comment := range comments {
		id := comment.ID.Hex()
		commentIDs = append(commentIDs, id)
		byAuthor[comment.Author] = append(byAuthor[comment.Author], id)
	}

	// One bulk pull per distinct comment author.
	for author, ids := range byAuthor {
		if err := c.store.PullValues(ctx, store.Users, author, "comments", ids); err != nil {
			return err
		}
	}

	// Anyone who liked one of these comments loses the back-reference.
	if err := c.store.PullFromAll(ctx, store.Users, "likedComments", commentIDs); err != nil {
		return err
	}

	if err := c.store.DeleteCommentsByPost(ctx, postID); err != nil {
		return err
	}

	if err := c.store.Pull(ctx, store.Users, post.Author, "posts", postID); err != nil {
		return err
	}

	if err := c.store.DeletePost(ctx, postID); err != nil {
		return err
	}

	c.log.InfoContext(ctx, "post deleted", "post", postID, "comments", len(commentIDs))
	return nil
}

// ListComments returns a post's comments ordered by like count descending,
// newest first among ties. An empty result is only reported after
// confirming the post itself exists.
func (c *Coordinator) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := c.store.CommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if len(comments) == 0 {
		if _, err := c.store.PostByID(ctx, postID); err != nil {
			return nil, err
		}
		return []models.Comment{}, nil
	}

	sort.SliceStable(comments, func(i, j int) bool {
		if len(comments[i].Likes) != len(comments[j].Likes) {
			return len(comments[i].Likes) > len(comments[j].Likes)
		}
		return comments[i].Timestamp.After(comments[j].Timestamp)
	})

	return comments, nil
}
