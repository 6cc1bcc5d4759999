package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualAfterFunc(t *testing.T) {
	m := NewManual()
	fired := 0
	m.AfterFunc(300*time.Millisecond, func() { fired++ })

	m.Advance(299 * time.Millisecond)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, m.Pending())

	m.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, m.Pending())
}

func TestManualEveryAndStop(t *testing.T) {
	m := NewManual()
	n := 0
	s := m.Every(5*time.Second, func() { n++ })

	m.Advance(16 * time.Second)
	assert.Equal(t, 3, n)

	assert.True(t, s.Stop())
	assert.False(t, s.Stop())
	m.Advance(time.Minute)
	assert.Equal(t, 3, n)
}

func TestManualOrderAndNested(t *testing.T) {
	m := NewManual()
	var order []string
	m.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	m.AfterFunc(time.Second, func() {
		order = append(order, "a")
		m.AfterFunc(500*time.Millisecond, func() { order = append(order, "a2") })
	})

	m.Advance(3 * time.Second)
	assert.Equal(t, []string{"a", "a2", "b"}, order)
	assert.Equal(t, 3*time.Second, m.Now())
}

func TestRealAfterFuncAndEvery(t *testing.T) {
	var once, ticks atomic.Int32
	Real{}.AfterFunc(time.Millisecond, func() { once.Add(1) })
	s := Real{}.Every(time.Millisecond, func() { ticks.Add(1) })

	require.Eventually(t, func() bool { return once.Load() == 1 && ticks.Load() >= 2 }, time.Second, time.Millisecond)
	assert.True(t, s.Stop())
	assert.False(t, s.Stop())
}
