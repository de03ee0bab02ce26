package event_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pawmart/pawmart/pkg/event"
)

func TestFireSync(t *testing.T) {
	defer event.Flush()

	var got atomic.Value
	event.Listen("order.placed", func(payload interface{}) {
		got.Store(payload)
	})

	event.Fire("order.placed", uint(42))
	assert.Equal(t, uint(42), got.Load())
}

func TestFireAsyncDelivers(t *testing.T) {
	defer event.Flush()

	var count atomic.Int32
	event.Listen("order.status_changed", func(payload interface{}) {
		count.Add(1)
	})

	for i := 0; i < 10; i++ {
		event.FireAsync("order.status_changed", i)
	}

	assert.Eventually(t, func() bool {
		return count.Load() == 10
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFireNoListeners(t *testing.T) {
	assert.NotPanics(t, func() {
		event.Fire("nobody.listens", nil)
	})
}
