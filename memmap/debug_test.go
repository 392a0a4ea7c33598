//go:build memmapdebug

package memmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate_Debug(t *testing.T) {
	assert := assert.New(t)

	assert.True(DEBUG)
	assert.PanicsWithError(ErrAddress(0x100).Error(), func() { Translate(0x100) })
	assert.NotPanics(func() { Translate(BASE) })
	assert.NotPanics(func() { Translate(REGISTER_COUNT - 1) })

	mm := WithCapacity[int](1)
	assert.Panics(func() { mm.Get(REGISTER_COUNT) })
	assert.Panics(func() { mm.Entry(BASE - 4) })
}
