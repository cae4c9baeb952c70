package queue

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func groups(reqs []HelpRequest) []GroupID {
	out := make([]GroupID, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Group)
	}
	return out
}

func TestStoreInsertRejectsDuplicate(t *testing.T) {
	assert := assert.New(t)
	s := NewStore()

	first, err := s.Insert(HelpRequest{Group: 5, VoiceChannel: snowflake.ID(10)})
	assert.NoError(err)
	assert.Equal(1, first.Position)
	assert.Equal(uint64(1), first.Seq)

	_, err = s.Insert(HelpRequest{Group: 5, VoiceChannel: snowflake.ID(99)})
	assert.ErrorIs(err, ErrDuplicateGroup)

	snap := s.Snapshot()
	if assert.Len(snap, 1) {
		assert.Equal(snowflake.ID(10), snap[0].VoiceChannel, "existing entry must not be overwritten")
	}
}

func TestStorePopFrontOrder(t *testing.T) {
	assert := assert.New(t)
	s := NewStore()
	for _, g := range []GroupID{3, 1, 2} {
		_, err := s.Insert(HelpRequest{Group: g})
		assert.NoError(err)
	}

	for _, want := range []GroupID{3, 1, 2} {
		got, err := s.PopFront()
		assert.NoError(err)
		assert.Equal(want, got.Group)
		assert.Equal(1, got.Position)
	}
	_, err := s.PopFront()
	assert.ErrorIs(err, ErrQueueEmpty)
}

func TestStoreRemoveKeepsOrder(t *testing.T) {
	assert := assert.New(t)
	s := NewStore()
	for g := GroupID(1); g <= 5; g++ {
		_, _ = s.Insert(HelpRequest{Group: g})
	}

	removed, err := s.Remove(3)
	assert.NoError(err)
	assert.Equal(GroupID(3), removed.Group)
	assert.Equal(3, removed.Position)
	assert.Equal([]GroupID{1, 2, 4, 5}, groups(s.Snapshot()))

	_, err = s.Remove(3)
	assert.ErrorIs(err, ErrNotFound)
	assert.Equal(4, s.Len())

	// A removed group may queue again and goes to the back.
	_, err = s.Insert(HelpRequest{Group: 3})
	assert.NoError(err)
	assert.Equal([]GroupID{1, 2, 4, 5, 3}, groups(s.Snapshot()))
}

func TestStoreClear(t *testing.T) {
	assert := assert.New(t)
	s := NewStore()
	assert.Equal(0, s.Clear())

	for g := GroupID(1); g <= 3; g++ {
		_, _ = s.Insert(HelpRequest{Group: g})
	}
	assert.Equal(3, s.Clear())
	assert.Empty(s.Snapshot())

	_, err := s.Insert(HelpRequest{Group: 1})
	assert.NoError(err, "cleared groups can queue again")
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	assert := assert.New(t)
	s := NewStore()
	_, _ = s.Insert(HelpRequest{Group: 1})
	_, _ = s.Insert(HelpRequest{Group: 2})

	snap := s.Snapshot()
	snap[0].Group = 42
	assert.Equal([]GroupID{1, 2}, groups(s.Snapshot()))
	assert.Equal(2, snap[1].Position)
}

func TestStorePopFrontLongRun(t *testing.T) {
	assert := assert.New(t)
	s := NewStore()
	for g := GroupID(0); g < 200; g++ {
		_, _ = s.Insert(HelpRequest{Group: g})
	}
	for want := GroupID(0); want < 190; want++ {
		got, err := s.PopFront()
		assert.NoError(err)
		assert.Equal(want, got.Group)
	}
	for g := GroupID(200); g < 300; g++ {
		_, _ = s.Insert(HelpRequest{Group: g})
	}
	snap := s.Snapshot()
	assert.Len(snap, 110)
	assert.Equal(GroupID(190), snap[0].Group)
	assert.Equal(GroupID(299), snap[109].Group)
	assert.Equal(110, snap[109].Position)
}
