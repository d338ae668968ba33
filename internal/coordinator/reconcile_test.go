package coordinator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_CleanStateIsNoop(t *testing.T) {
	fs := newFakeStore()
	author := fs.addUser()
	liker := fs.addUser()
	post := fs.addPost(author.ID.Hex())

	pid := post.ID.Hex()
	author.Posts = []string{pid}
	post.Likes = []string{liker.ID.Hex()}
	liker.Likes = []string{pid}

	coord := New(fs, nil)

	stats, err := coord.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Added)
	assert.Zero(t, stats.Pruned)
}

func TestReconcile_AddsMissingMirrors(t *testing.T) {
	fs := newFakeStore()
	author := fs.addUser()
	liker := fs.addUser()
	post := fs.addPost(author.ID.Hex())
	pid := post.ID.Hex()

	// Forward arrays populated, mirrors lost: the author's posts list and
	// the liker's likes list are empty.
	post.Likes = []string{liker.ID.Hex()}

	coord := New(fs, nil)

	stats, err := coord.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Contains(t, fs.users[author.ID.Hex()].Posts, pid)
	assert.Contains(t, fs.users[liker.ID.Hex()].Likes, pid)
	assert.Equal(t, 2, stats.Added)
}

func TestReconcile_PrunesUnconfirmedMirrors(t *testing.T) {
	fs := newFakeStore()
	user := fs.addUser()
	post := fs.addPost(fs.addUser().ID.Hex())
	pid := post.ID.Hex()

	// The user claims a like the post does not confirm; the forward array
	// wins and the mirror entry goes away.
	user.Likes = []string{pid}

	coord := New(fs, nil)

	stats, err := coord.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Empty(t, fs.users[user.ID.Hex()].Likes)
	assert.Empty(t, fs.posts[pid].Likes)
	assert.Equal(t, 1, stats.Pruned)
}

func TestReconcile_PrunesDeadReferences(t *testing.T) {
	fs := newFakeStore()
	user := fs.addUser()
	user.Posts = []string{"64f000000000000000000001"}
	user.Likes = []string{"64f000000000000000000002"}
	user.Followers = []string{"64f000000000000000000003"}

	coord := New(fs, nil)

	stats, err := coord.Reconcile(context.Background())
	require.NoError(t, err)

	uid := user.ID.Hex()
	assert.Empty(t, fs.users[uid].Posts)
	assert.Empty(t, fs.users[uid].Likes)
	assert.Empty(t, fs.users[uid].Followers)
	assert.Equal(t, 3, stats.Pruned)
}

func TestReconcile_RepairsFollowGraph(t *testing.T) {
	fs := newFakeStore()
	target := fs.addUser()
	follower := fs.addUser()

	// One-sided relation: the target lists the follower but the follower's
	// following array was never written.
	target.Followers = []string{follower.ID.Hex()}

	coord := New(fs, nil)

	_, err := coord.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Contains(t, fs.users[follower.ID.Hex()].Following, target.ID.Hex())
}

func TestReconcile_RepairsPostCommentsArray(t *testing.T) {
	fs := newFakeStore()
	author := fs.addUser()
	post := fs.addPost(author.ID.Hex())
	pid := post.ID.Hex()
	author.Posts = []string{pid}

	comment := fs.addComment(author.ID.Hex(), pid)
	cid := comment.ID.Hex()
	author.Comments = []string{cid}

	// The post carries a stale comment ID and misses the live one.
	post.Comments = []string{"64f000000000000000000009"}

	coord := New(fs, nil)

	_, err := coord.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{cid}, fs.posts[pid].Comments)
}

func TestReconcile_NeverDeletesOrphanedComments(t *testing.T) {
	fs := newFakeStore()
	author := fs.addUser()
	comment := fs.addComment(author.ID.Hex(), "64f000000000000000000000")
	cid := comment.ID.Hex()
	author.Comments = []string{cid}

	coord := New(fs, nil)

	_, err := coord.Reconcile(context.Background())
	require.NoError(t, err)

	// The orphan is reported, not removed.
	assert.Contains(t, fs.comments, cid)
	assert.Contains(t, fs.users[author.ID.Hex()].Comments, cid)
}
