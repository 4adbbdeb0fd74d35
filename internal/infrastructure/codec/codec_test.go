package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oziev02/threadtree/internal/domain"
)

func TestRoundTrip(t *testing.T) {
	f := domain.Forest{
		{ID: 1, Author: "a", Content: "First comment", Upvotes: 2, Replies: []domain.Comment{
			{ID: 5, Author: "b", Content: "reply", Downvotes: 1, Replies: []domain.Comment{}},
		}},
		{ID: 2, Author: "b", Content: "Second comment!", Replies: []domain.Comment{}},
	}

	data, err := Encode(f)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestEncodeWireFormat(t *testing.T) {
	data, err := Encode(domain.Forest{{ID: 1, Author: "a", Content: "x"}})
	require.NoError(t, err)

	assert.JSONEq(t,
		`[{"id":1,"username":"a","content":"x","upvotes":0,"downvotes":0,"replies":[]}]`,
		string(data))
}

func TestDecodeMillisecondIDs(t *testing.T) {
	raw := `[{"id":1700000000000,"username":"a","content":"hello","upvotes":1,"downvotes":0,
		"replies":[{"id":1700000000001,"username":"b","content":"hi back","upvotes":0,"downvotes":0,"replies":[]}]}]`

	got, err := Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hi back", got[0].Replies[0].Content)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode([]byte("{broken"))
	assert.Error(t, err)

	_, err = Decode([]byte(`[{"id":1,"replies":[{"id":1}]}]`))
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, got)
}
