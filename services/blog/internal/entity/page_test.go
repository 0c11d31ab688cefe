package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Limit: DefaultPageLimit}, NewPage(0, 0))
	assert.Equal(t, Page{Number: 1, Limit: MaxPageLimit}, NewPage(-3, 1000))
	assert.Equal(t, Page{Number: 4, Limit: 25}, NewPage(4, 25))
}

func TestPage_Range(t *testing.T) {
	from, to := NewPage(1, 10).Range()
	assert.Equal(t, 0, from)
	assert.Equal(t, 9, to)

	from, to = NewPage(3, 10).Range()
	assert.Equal(t, 20, from)
	assert.Equal(t, 29, to)
	assert.Equal(t, 20, NewPage(3, 10).Offset())
}

func TestPage_ConsecutivePagesNeverOverlap(t *testing.T) {
	for limit := 1; limit <= MaxPageLimit; limit++ {
		prevTo := -1
		for number := 1; number <= 50; number++ {
			from, to := NewPage(number, limit).Range()
			assert.Equal(t, prevTo+1, from, "limit=%d page=%d", limit, number)
			assert.Equal(t, limit-1, to-from)
			prevTo = to
		}
	}
}

func TestPostInput_Publishes(t *testing.T) {
	published := StatusPublished
	draft := StatusDraft

	assert.True(t, PostInput{Status: &published}.Publishes())
	assert.False(t, PostInput{Status: &draft}.Publishes())
	assert.False(t, PostInput{}.Publishes())
	assert.True(t, PostInput{}.IsEmpty())
}
