package internal

import (
	"bytes"
	"sync"
)

// BufferPool is a sync.Pool for buffers that outgoing packets are batched in.
var BufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}
