package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Concat(slices.All([]string{"a", "b"}), slices.All([]string{"c"}))
	keys := slices.Collect(IterSeq2Keys(seq))
	assert.Equal([]int{0, 1, 0}, keys)

	merged := maps.Collect(IterSeq2Concat(maps.All(map[string]int{"x": 1}), maps.All(map[string]int{"y": 2})))
	assert.Equal(map[string]int{"x": 1, "y": 2}, merged)
}
