package coordinator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yapster-gg/yapster-api/internal/common"
)

func TestCreateComment(t *testing.T) {
	fs := newFakeStore()
	author := fs.addUser()
	post := fs.addPost(fs.addUser().ID.Hex())
	aid, pid := author.ID.Hex(), post.ID.Hex()

	coord := New(fs, nil)

	comment, err := coord.CreateComment(context.Background(), aid, pid, "nice one", nil)
	require.NoError(t, err)

	cid := comment.ID.Hex()
	assert.Equal(t, aid, comment.Author)
	assert.Equal(t, pid, comment.Post)
	assert.Nil(t, comment.ParentID)
	assert.NotNil(t, comment.Likes)
	assert.Empty(t, comment.Likes)

	assert.Contains(t, fs.posts[pid].Comments, cid)
	assert.Contains(t, fs.users[aid].Comments, cid)
}

func TestCreateComment_ThreadedReply(t *testing.T) {
	fs := newFakeStore()
	author := fs.addUser()
	post := fs.addPost(fs.addUser().ID.Hex())
	parent := fs.addComment(fs.addUser().ID.Hex(), post.ID.Hex())
	parentID := parent.ID.Hex()

	coord := New(fs, nil)

	reply, err := coord.CreateComment(context.Background(), author.ID.Hex(), post.ID.Hex(), "agreed", &parentID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parentID, *reply.ParentID)
}

func TestCreateComment_ParentOnDifferentPost(t *testing.T) {
	fs := newFakeStore()
	author := fs.addUser()
	post := fs.addPost(fs.addUser().ID.Hex())
	otherPost := fs.addPost(fs.addUser().ID.Hex())
	parent := fs.addComment(fs.addUser().ID.Hex(), otherPost.ID.Hex())
	parentID := parent.ID.Hex()

	coord := New(fs, nil)

	_, err := coord.CreateComment(context.Background(), author.ID.Hex(), post.ID.Hex(), "sneaky", &parentID)
	assert.ErrorIs(t, err, common.ErrInvalidOperation)
	assert.Empty(t, fs.posts[post.ID.Hex()].Comments)
}

func TestCreateComment_ParentMissing(t *testing.T) {
	fs := newFakeStore()
	author := fs.addUser()
	post := fs.addPost(fs.addUser().ID.Hex())
	parentID := "64f000000000000000000000"

	coord := New(fs, nil)

	_, err := coord.CreateComment(context.Background(), author.ID.Hex(), post.ID.Hex(), "hello", &parentID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreateComment_PostMissing(t *testing.T) {
	fs := newFakeStore()
	author := fs.addUser()

	coord := New(fs, nil)

	_, err := coord.CreateComment(context.Background(), author.ID.Hex(), "64f000000000000000000000", "hello", nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
