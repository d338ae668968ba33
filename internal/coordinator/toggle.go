// SPDX-License-Identifier: AGPL-3.0-only
package coordinator

import (
	"context"
	"fmt"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/store"
)

// ToggleResult reports the post-toggle membership state and the target's
// forward-array length, re-read after the update so concurrent toggles
// don't make the count reflect pre-update state.
type ToggleResult struct {
	Active bool
	Count  int
}

// FollowResult carries both counts of the re-read target user.
type FollowResult struct {
	Following      bool
	FollowerCount  int
	FollowingCount int
}

// ToggleLike flips actorID's membership in the post's likes array and
// mirrors it on the actor's likes array. The two updates are independent
// set-semantics writes; neither is rolled back if the other fails.
func (c *Coordinator) ToggleLike(ctx context.Context, actorID, postID string) (*ToggleResult, error) {
	post, err := c.store.PostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := contains(post.Likes, actorID)

	if err := c.flip(ctx, liked, store.Posts, postID, "likes", actorID); err != nil {
		return nil, err
	}
	if err := c.flip(ctx, liked, store.Users, actorID, "likes", postID); err != nil {
		return nil, err
	}

	updated, err := c.store.PostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: !liked, Count: len(updated.Likes)}, nil
}

// ToggleSave flips actorID's membership in the post's saves array and the
// actor's saves mirror.
func (c *Coordinator) ToggleSave(ctx context.Context, actorID, postID string) (*ToggleResult, error) {
	post, err := c.store.PostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	saved := contains(post.Saves, actorID)

	if err := c.flip(ctx, saved, store.Posts, postID, "saves", actorID); err != nil {
		return nil, err
	}
	if err := c.flip(ctx, saved, store.Users, actorID, "saves", postID); err != nil {
		return nil, err
	}

	updated, err := c.store.PostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: !saved, Count: len(updated.Saves)}, nil
}

// ToggleCommentLike flips actorID's membership in the comment's likes
// array and the actor's likedComments mirror.
func (c *Coordinator) ToggleCommentLike(ctx context.Context, actorID, commentID string) (*ToggleResult, error) {
	comment, err := c.store.CommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	liked := contains(comment.Likes, actorID)

	if err := c.flip(ctx, liked, store.Comments, commentID, "likes", actorID); err != nil {
		return nil, err
	}
	if err := c.flip(ctx, liked, store.Users, actorID, "likedComments", commentID); err != nil {
		return nil, err
	}

	updated, err := c.store.CommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: !liked, Count: len(updated.Likes)}, nil
}

// ToggleFollow flips actorID's membership in the target user's followers
// array and the actor's following mirror. Following yourself is rejected
// before any write.
func (c *Coordinator) ToggleFollow(ctx context.Context, actorID, targetID string) (*FollowResult, error) {
	target, err := c.store.UserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if target.ID.Hex() == actorID {
		return nil, fmt.Errorf("cannot follow yourself: %w", common.ErrInvalidOperation)
	}

	following := contains(target.Followers, actorID)

	if err := c.flip(ctx, following, store.Users, targetID, "followers", actorID); err != nil {
		return nil, err
	}
	if err := c.flip(ctx, following, store.Users, actorID, "following", targetID); err != nil {
		return nil, err
	}

	updated, err := c.store.UserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return &FollowResult{
		Following:      !following,
		FollowerCount:  len(updated.Followers),
		FollowingCount: len(updated.Following),
	}, nil
}

// RemoveLike pulls postID from the actor's likes array only. The post's
// own likes array is deliberately untouched: this is local cleanup of the
// actor's list and must not move global counts.
func (c *Coordinator) RemoveLike(ctx context.Context, actorID, postID string) error {
	return c.store.Pull(ctx, store.Users, actorID, "likes", postID)
}

func (c *Coordinator) flip(ctx context.Context, active bool, coll store.Collection, docID, field, value string) error {
	if active {
		return c.store.Pull(ctx, coll, docID, field, value)
	}
	return c.store.AddToSet(ctx, coll, docID, field, value)
}
