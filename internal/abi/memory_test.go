//go:build wasip1

package abi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackedStats() (count, totalBytes int) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	return len(memoryManager.ptrs), memoryManager.totalAllocated
}

func freeAllTracked() {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	clear(memoryManager.ptrs)
	memoryManager.totalAllocated = 0
}

func TestAllocateDeallocate(t *testing.T) {
	freeAllTracked()

	size := uint32(1024)
	ptr := allocate(size)
	require.NotZero(t, ptr, "allocate returned 0")

	allocCount, totalBytes := trackedStats()
	assert.Equal(t, 1, allocCount)
	assert.Equal(t, int(size), totalBytes)

	data := []byte("hello world")
	copyToMemory(ptr, data)
	assert.Equal(t, data, readFromMemory(ptr, uint32(len(data))))

	deallocate(ptr, size)

	allocCount, totalBytes = trackedStats()
	assert.Zero(t, allocCount)
	assert.Zero(t, totalBytes)
}

func TestAllocate_ZeroSize(t *testing.T) {
	assert.Zero(t, allocate(0))
	assert.Zero(t, Alloc(0))
}

func TestDeallocate_Idempotent(t *testing.T) {
	freeAllTracked()

	ptr := allocate(100)
	deallocate(ptr, 100)
	deallocate(ptr, 100)

	_, totalBytes := trackedStats()
	assert.Zero(t, totalBytes)
}

func TestAlloc(t *testing.T) {
	freeAllTracked()

	packed := Alloc(8)
	_, length := UnpackPtrLen(packed)
	assert.Equal(t, uint32(8), length)
	assert.Equal(t, make([]byte, 8), BytesFromPtr(packed))

	DeallocatePacked(packed)
	allocCount, _ := trackedStats()
	assert.Zero(t, allocCount)
}

func TestPtrFromBytes(t *testing.T) {
	freeAllTracked()

	data := []byte("test data")
	packed := PtrFromBytes(data)

	ptr, length := UnpackPtrLen(packed)
	assert.NotZero(t, ptr)
	assert.Equal(t, uint32(len(data)), length)
	assert.Equal(t, data, BytesFromPtr(packed))

	DeallocatePacked(packed)

	allocCount, _ := trackedStats()
	assert.Zero(t, allocCount)
}

func TestPtrFromBytes_Empty(t *testing.T) {
	assert.Zero(t, PtrFromBytes(nil))
	assert.Zero(t, PtrFromBytes([]byte{}))
	assert.Nil(t, BytesFromPtr(0))
	DeallocatePacked(0)
}

func TestConcurrency(t *testing.T) {
	freeAllTracked()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			packed := PtrFromBytes([]byte("concurrent test data"))
			_ = BytesFromPtr(packed)
			DeallocatePacked(packed)
		}()
	}
	wg.Wait()

	allocCount, _ := trackedStats()
	assert.Zero(t, allocCount)
}

func TestConfigure_WithMaxTotalAllocations(t *testing.T) {
	freeAllTracked()
	defer Configure(WithMaxTotalAllocations(DefaultMaxTotalAllocations))

	Configure(WithMaxTotalAllocations(1024))

	ptr := allocate(512)
	require.NotZero(t, ptr)
	deallocate(ptr, 512)

	assert.Panics(t, func() {
		allocate(2048)
	}, "expected panic when exceeding allocation limit")
}

func TestConfigure_InvalidLimit(t *testing.T) {
	freeAllTracked()

	Configure(WithMaxTotalAllocations(0))
	Configure(WithMaxTotalAllocations(-100))

	ptr := allocate(1024)
	require.NotZero(t, ptr)
	deallocate(ptr, 1024)
}
