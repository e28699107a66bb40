package handler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool(t *testing.T) {
	buf := getBuffer()
	buf.WriteString("leftover")
	putBuffer(buf)

	again := getBuffer()
	assert.Zero(t, again.Len(), "pooled buffers come back empty")
	putBuffer(again)

	big := bytes.NewBuffer(make([]byte, 0, maxPooledBufferSize*2))
	assert.NotPanics(t, func() { putBuffer(big) })
}
