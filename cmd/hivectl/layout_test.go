package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slabware/skiphive/hive"
)

func TestRenderBlock(t *testing.T) {
	bs := hive.BlockStats{
		Capacity:     8,
		Live:         3,
		LastEndpoint: 6,
		Runs: []hive.Run{
			{Start: 0, Len: 2},
			{Start: 2, Len: 3, Erased: true},
			{Start: 5, Len: 1},
		},
	}
	assert.Equal(t, "[##...#__]", renderBlock(bs))
}

func TestRenderBlock_Empty(t *testing.T) {
	bs := hive.BlockStats{Capacity: 4}
	assert.Equal(t, "[____]", renderBlock(bs))
}
