package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oziev02/threadtree/internal/domain"
)

func ptr(id int64) *int64 { return &id }

// sample строит лес:
//
//	1(a)
//	├── 3(b)
//	│   └── 5(a)
//	└── 4(c)
//	2(b)
func sample() domain.Forest {
	c1 := NewComment(1, "a", "root one")
	c2 := NewComment(2, "b", "root two")
	c3 := NewComment(3, "b", "reply three")
	c4 := NewComment(4, "c", "reply four")
	c5 := NewComment(5, "a", "deep five")

	c3.Replies = []domain.Comment{c5}
	c1.Replies = []domain.Comment{c3, c4}
	return domain.Forest{c1, c2}
}

func TestInsertReplyRoot(t *testing.T) {
	f := sample()
	before := f.Clone()

	out := InsertReply(f, nil, NewComment(10, "u", "fresh"))

	require.Len(t, out, 3)
	assert.Equal(t, before, f, "input forest must not change")
	assert.Equal(t, before[0], out[0])
	assert.Equal(t, before[1], out[1])

	added := out[2]
	assert.Equal(t, int64(10), added.ID)
	assert.Equal(t, "u", added.Author)
	assert.Equal(t, "fresh", added.Content)
	assert.Zero(t, added.Upvotes)
	assert.Zero(t, added.Downvotes)
	assert.NotNil(t, added.Replies)
	assert.Empty(t, added.Replies)
}

func TestInsertReplyNested(t *testing.T) {
	f := sample()
	before := f.Clone()

	out := InsertReply(f, ptr(5), NewComment(11, "d", "deeper"))

	assert.Equal(t, before, f)
	assert.Equal(t, 6, out.Count())

	deep, ok := Find(out, 5)
	require.True(t, ok)
	require.Len(t, deep.Replies, 1)
	assert.Equal(t, int64(11), deep.Replies[0].ID)

	// остальные узлы не изменились
	assert.Equal(t, before[1], out[1])
	assert.Equal(t, before[0].Replies[1], out[0].Replies[1])
	assert.Equal(t, before[0].Content, out[0].Content)
}

func TestInsertReplyAppendsAfterExistingSiblings(t *testing.T) {
	out := InsertReply(sample(), ptr(1), NewComment(12, "e", "last"))

	require.Len(t, out[0].Replies, 3)
	ids := []int64{out[0].Replies[0].ID, out[0].Replies[1].ID, out[0].Replies[2].ID}
	assert.Equal(t, []int64{3, 4, 12}, ids)
}

func TestInsertReplyUnknownParent(t *testing.T) {
	f := sample()
	out := InsertReply(f, ptr(404), NewComment(13, "u", "lost"))

	assert.Equal(t, f, out)
	assert.Equal(t, 5, out.Count())
}

func TestInsertDoesNotAliasInput(t *testing.T) {
	f := make(domain.Forest, 1, 4)
	f[0] = NewComment(1, "a", "x")

	first := InsertReply(f, nil, NewComment(2, "a", "y"))
	second := InsertReply(f, nil, NewComment(3, "a", "z"))

	assert.Equal(t, int64(2), first[1].ID)
	assert.Equal(t, int64(3), second[1].ID)
}

func TestUpdateContent(t *testing.T) {
	f := sample()
	before := f.Clone()

	out := UpdateContent(f, 5, "a", "edited")

	got, ok := Find(out, 5)
	require.True(t, ok)
	assert.Equal(t, "edited", got.Content)
	assert.Equal(t, "a", got.Author)
	assert.Equal(t, before, f)
	assert.Equal(t, before[1], out[1])
}

func TestUpdateContentWrongAuthor(t *testing.T) {
	f := sample()

	out := UpdateContent(f, 5, "b", "hijack")

	assert.Equal(t, f, out)
	got, _ := Find(out, 5)
	assert.Equal(t, "deep five", got.Content)
}

func TestUpdateContentNotFound(t *testing.T) {
	f := sample()
	assert.Equal(t, f, UpdateContent(f, 404, "a", "nothing"))
}

func TestDeleteByIDCascade(t *testing.T) {
	f := sample()
	before := f.Clone()

	// у узла 1 три потомка: 3, 4, 5
	out := DeleteByID(f, 1, "a")

	assert.Equal(t, before.Count()-4, out.Count())
	for _, id := range []int64{1, 3, 4, 5} {
		_, ok := Find(out, id)
		assert.False(t, ok, "id %d must be gone", id)
	}
	assert.Equal(t, before, f)
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestDeleteByIDNested(t *testing.T) {
	out := DeleteByID(sample(), 3, "b")

	require.Len(t, out[0].Replies, 1)
	assert.Equal(t, int64(4), out[0].Replies[0].ID)
	_, ok := Find(out, 5)
	assert.False(t, ok, "children are not spliced up")
}

func TestDeleteByIDWrongAuthorOrMissing(t *testing.T) {
	f := sample()

	assert.Equal(t, f, DeleteByID(f, 3, "a"))
	assert.Equal(t, f, DeleteByID(f, 404, "a"))
	assert.Equal(t, f, DeleteByID(f, 1, ""))
}

func TestAdjustVoteRepeated(t *testing.T) {
	f := sample()
	for i := 0; i < 7; i++ {
		f = AdjustVote(f, 5, domain.Upvote)
	}
	f = AdjustVote(f, 5, domain.Downvote)

	got, ok := Find(f, 5)
	require.True(t, ok)
	assert.Equal(t, 7, got.Upvotes)
	assert.Equal(t, 1, got.Downvotes)

	root, _ := Find(f, 1)
	assert.Zero(t, root.Upvotes)
}

func TestAdjustVoteUnknownKindOrID(t *testing.T) {
	f := sample()
	assert.Equal(t, f, AdjustVote(f, 5, domain.VoteKind("sideways")))
	assert.Equal(t, f, AdjustVote(f, 404, domain.Upvote))
}

func TestDuplicateIDsOnlyFirstAffected(t *testing.T) {
	first := NewComment(7, "a", "first")
	dup := NewComment(7, "a", "second")
	first.Replies = []domain.Comment{dup}
	f := domain.Forest{first, NewComment(7, "a", "third")}

	voted := AdjustVote(f, 7, domain.Upvote)
	assert.Equal(t, 1, voted[0].Upvotes)
	assert.Zero(t, voted[0].Replies[0].Upvotes)
	assert.Zero(t, voted[1].Upvotes)

	edited := UpdateContent(f, 7, "a", "changed")
	assert.Equal(t, "changed", edited[0].Content)
	assert.Equal(t, "second", edited[0].Replies[0].Content)
	assert.Equal(t, "third", edited[1].Content)

	deleted := DeleteByID(f, 7, "a")
	require.Len(t, deleted, 1)
	assert.Equal(t, "third", deleted[0].Content)

	nested := InsertReply(f, ptr(7), NewComment(8, "b", "reply"))
	require.Len(t, nested[0].Replies, 2)
	assert.Empty(t, nested[0].Replies[0].Replies)
	assert.Empty(t, nested[1].Replies)
}

func TestDuplicateIDForbiddenFirstMatchStops(t *testing.T) {
	first := NewComment(7, "a", "first")
	first.Replies = []domain.Comment{NewComment(7, "b", "second")}
	f := domain.Forest{first}

	out := UpdateContent(f, 7, "b", "changed")

	assert.Equal(t, f, out)
}

func TestScenario(t *testing.T) {
	var f domain.Forest

	f = InsertReply(f, nil, NewComment(100, "a", "hello"))
	require.Len(t, f, 1)
	assert.Equal(t, domain.Comment{ID: 100, Author: "a", Content: "hello", Replies: []domain.Comment{}}, f[0])

	f = InsertReply(f, ptr(100), NewComment(101, "b", "hi back"))
	require.Len(t, f[0].Replies, 1)
	assert.Equal(t, "b", f[0].Replies[0].Author)
	assert.Equal(t, "hi back", f[0].Replies[0].Content)

	f = AdjustVote(f, 100, domain.Upvote)
	assert.Equal(t, 1, f[0].Upvotes)

	f = DeleteByID(f, 100, "a")
	assert.Empty(t, f)
}
