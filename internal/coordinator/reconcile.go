// SPDX-License-Identifier: AGPL-3.0-only
package coordinator

import (
	"context"

	"github.com/yapster-gg/yapster-api/internal/models"
	"github.com/yapster-gg/yapster-api/internal/store"
)

// ReconcileStats summarizes one read-repair pass.
type ReconcileStats struct {
	Added  int // mirror entries added from an authoritative forward array
	Pruned int // dead or one-sided references removed
}

// Reconcile is the read-repair sweep bounding drift between the two copies
// of every denormalized relation. The forward array is authoritative
// (Post.Likes for "who liked", User.Followers for "who follows"): missing
// mirror entries are added, mirror entries the forward array does not
// confirm are pruned, and references to deleted documents are removed.
// Documents themselves are never deleted here; comments orphaned by a
// half-finished cascade are only reported.
//
// Repairs use the same set-semantics updates as the live path, so the
// sweep is safe to run concurrently with user traffic. It stops at the
// first store failure without undoing repairs already applied.
func (c *Coordinator) Reconcile(ctx context.Context) (*ReconcileStats, error) {
	users, err := c.store.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := c.store.AllPosts(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := c.store.AllComments(ctx)
	if err != nil {
		return nil, err
	}

	userByID := make(map[string]*models.User, len(users))
	for i := range users {
		userByID[users[i].ID.Hex()] = &users[i]
	}
	postByID := make(map[string]*models.Post, len(posts))
	for i := range posts {
		postByID[posts[i].ID.Hex()] = &posts[i]
	}
	commentByID := make(map[string]*models.Comment, len(comments))
	for i := range comments {
		commentByID[comments[i].ID.Hex()] = &comments[i]
	}

	stats := &ReconcileStats{}

	if err := c.repairUsers(ctx, users, userByID, postByID, commentByID, stats); err != nil {
		return stats, err
	}
	if err := c.repairPosts(ctx, posts, comments, userByID, commentByID, stats); err != nil {
		return stats, err
	}
	if err := c.repairComments(ctx, comments, userByID, postByID, stats); err != nil {
		return stats, err
	}

	c.log.InfoContext(ctx, "reconcile sweep finished",
		"users", len(users), "posts", len(posts), "comments", len(comments),
		"added", stats.Added, "pruned", stats.Pruned)
	return stats, nil
}

func (c *Coordinator) repairUsers(ctx context.Context, users []models.User, userByID map[string]*models.User, postByID map[string]*models.Post, commentByID map[string]*models.Comment, stats *ReconcileStats) error {
	for i := range users {
		u := &users[i]
		uid := u.ID.Hex()

		prune := func(field string, values []string) error {
			if len(values) == 0 {
				return nil
			}
			stats.Pruned += len(values)
			return c.store.PullValues(ctx, store.Users, uid, field, values)
		}

		// References to documents that no longer exist.
		if err := prune("posts", deadRefs(u.Posts, func(id string) bool { _, ok := postByID[id]; return ok })); err != nil {
			return err
		}
		if err := prune("comments", deadRefs(u.Comments, func(id string) bool { _, ok := commentByID[id]; return ok })); err != nil {
			return err
		}
		if err := prune("followers", deadRefs(u.Followers, func(id string) bool { return id != uid && userByID[id] != nil })); err != nil {
			return err
		}

		// Mirrors confirmed against their authoritative forward arrays.
		var likes []string
		for _, pid := range u.Likes {
			if post, ok := postByID[pid]; !ok || !contains(post.Likes, uid) {
				likes = append(likes, pid)
			}
		}
		if err := prune("likes", likes); err != nil {
			return err
		}

		var saves []string
		for _, pid := range u.Saves {
			if post, ok := postByID[pid]; !ok || !contains(post.Saves, uid) {
				saves = append(saves, pid)
			}
		}
		if err := prune("saves", saves); err != nil {
			return err
		}

		var likedComments []string
		for _, cid := range u.LikedComments {
			if comment, ok := commentByID[cid]; !ok || !contains(comment.Likes, uid) {
				likedComments = append(likedComments, cid)
			}
		}
		if err := prune("likedComments", likedComments); err != nil {
			return err
		}

		var following []string
		for _, tid := range u.Following {
			if target, ok := userByID[tid]; !ok || tid == uid || !contains(target.Followers, uid) {
				following = append(following, tid)
			}
		}
		if err := prune("following", following); err != nil {
			return err
		}

		// Forward direction: everyone in u.Followers must mirror u in
		// their following array.
		for _, fid := range u.Followers {
			follower, ok := userByID[fid]
			if !ok || fid == uid {
				continue
			}
			if !contains(follower.Following, uid) {
				if err := c.store.AddToSet(ctx, store.Users, fid, "following", uid); err != nil {
					return err
				}
				stats.Added++
			}
		}
	}
	return nil
}

func (c *Coordinator) repairPosts(ctx context.Context, posts []models.Post, comments []models.Comment, userByID map[string]*models.User, commentByID map[string]*models.Comment, stats *ReconcileStats) error {
	liveByPost := make(map[string][]string)
	for _, comment := range comments {
		liveByPost[comment.Post] = append(liveByPost[comment.Post], comment.ID.Hex())
	}

	for i := range posts {
		p := &posts[i]
		pid := p.ID.Hex()

		if author, ok := userByID[p.Author]; ok && !contains(author.Posts, pid) {
			if err := c.store.AddToSet(ctx, store.Users, p.Author, "posts", pid); err != nil {
				return err
			}
			stats.Added++
		}

		for _, uid := range p.Likes {
			if user, ok := userByID[uid]; ok && !contains(user.Likes, pid) {
				if err := c.store.AddToSet(ctx, store.Users, uid, "likes", pid); err != nil {
					return err
				}
				stats.Added++
			}
		}
		for _, uid := range p.Saves {
			if user, ok := userByID[uid]; ok && !contains(user.Saves, pid) {
				if err := c.store.AddToSet(ctx, store.Users, uid, "saves", pid); err != nil {
					return err
				}
				stats.Added++
			}
		}

		// The post's comments array tracks live comment documents that
		// reference it.
		var dead []string
		for _, cid := range p.Comments {
			if comment, ok := commentByID[cid]; !ok || comment.Post != pid {
				dead = append(dead, cid)
			}
		}
		if len(dead) > 0 {
			if err := c.store.PullValues(ctx, store.Posts, pid, "comments", dead); err != nil {
				return err
			}
			stats.Pruned += len(dead)
		}
		for _, cid := range liveByPost[pid] {
			if !contains(p.Comments, cid) {
				if err := c.store.AddToSet(ctx, store.Posts, pid, "comments", cid); err != nil {
					return err
				}
				stats.Added++
			}
		}
	}
	return nil
}

func (c *Coordinator) repairComments(ctx context.Context, comments []models.Comment, userByID map[string]*models.User, postByID map[string]*models.Post, stats *ReconcileStats) error {
	for i := range comments {
		comment := &comments[i]
		cid := comment.ID.Hex()

		// Deletion is never initiated by the sweep; a comment whose post
		// is gone means a cascade stopped partway.
		if _, ok := postByID[comment.Post]; !ok {
			c.log.WarnContext(ctx, "orphaned comment, post missing", "comment", cid, "post", comment.Post)
		}

		if author, ok := userByID[comment.Author]; ok && !contains(author.Comments, cid) {
			if err := c.store.AddToSet(ctx, store.Users, comment.Author, "comments", cid); err != nil {
				return err
			}
			stats.Added++
		}

		for _, uid := range comment.Likes {
			if user, ok := userByID[uid]; ok && !contains(user.LikedComments, cid) {
				if err := c.store.AddToSet(ctx, store.Users, uid, "likedComments", cid); err != nil {
					return err
				}
				stats.Added++
			}
		}
	}
	return nil
}

func deadRefs(refs []string, alive func(string) bool) []string {
	var dead []string
	for _, id := range refs {
		if !alive(id) {
			dead = append(dead, id)
		}
	}
	return dead
}
