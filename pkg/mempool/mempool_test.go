package mempool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cuemby/warrenchain/pkg/types"
)

func tx(n byte) types.Transaction {
	var from, to types.Address
	from[0] = n
	return types.NewTransaction(from, to, types.Uint256FromUint64(uint64(n)), nil)
}

func TestPushPopFIFO(t *testing.T) {
	m := New(4)

	for i := byte(1); i <= 3; i++ {
		_, ok := m.Push(tx(i))
		assert.True(t, ok)
	}

	for i := byte(1); i <= 3; i++ {
		got, ok := m.Pop()
		assert.True(t, ok)
		assert.Equal(t, tx(i), got)
	}

	_, ok := m.Pop()
	assert.False(t, ok)
}

func TestPushOverflowReturnsTransaction(t *testing.T) {
	m := New(2)

	_, ok := m.Push(tx(1))
	assert.True(t, ok)
	_, ok = m.Push(tx(2))
	assert.True(t, ok)

	rejected, ok := m.Push(tx(3))
	assert.False(t, ok)
	assert.Equal(t, tx(3), rejected)
}

func TestDefaultCapacity(t *testing.T) {
	m := New(0)
	assert.Equal(t, DefaultCapacity, m.Cap())
}

func TestDrainStopsEarlyWhenEmpty(t *testing.T) {
	m := New(10)
	_, _ = m.Push(tx(1))
	_, _ = m.Push(tx(2))

	drained := m.Drain(10)
	assert.Len(t, drained, 2)
	assert.Equal(t, tx(1), drained[0])
	assert.Equal(t, tx(2), drained[1])
}

func TestDrainRespectsMax(t *testing.T) {
	m := New(10)
	for i := byte(1); i <= 5; i++ {
		_, _ = m.Push(tx(i))
	}

	drained := m.Drain(3)
	assert.Len(t, drained, 3)
	assert.Equal(t, 2, m.Len())
}

func TestConcurrentProducersThenDrain(t *testing.T) {
	m := New(1000)
	var wg sync.WaitGroup

	for p := 0; p < 10; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				for {
					if _, ok := m.Push(tx(byte(i))); ok {
						break
					}
				}
			}
		}(p)
	}
	wg.Wait()

	assert.Equal(t, 500, m.Len())

	count := 0
	for {
		if _, ok := m.Pop(); !ok {
			break
		}
		count++
	}
	assert.Equal(t, 500, count)
}
