package async

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	assert := assert.New(t)
	a, err := Run(func() int {
		return 123
	}).Await()
	assert.NoError(err)
	assert.Equal(123, a)
}

func TestGo(t *testing.T) {
	assert := assert.New(t)
	r := Go(func() (int, error) {
		return 123, nil
	}).Result()
	assert.True(r.IsOk())
	assert.Equal(123, r.Value)

	r = Go(func() (int, error) {
		return 0, fmt.Errorf("error")
	}).Result()
	assert.True(r.IsErr())
}

func TestGoRecoversPanic(t *testing.T) {
	_, err := Go(func() (int, error) {
		panic("boom")
	}).Await()
	assert.ErrorContains(t, err, "boom")
}

func TestAwaitIsRepeatable(t *testing.T) {
	var calls atomic.Int32
	fut := Go(func() (string, error) {
		calls.Add(1)
		return "once", nil
	})

	for i := 0; i < 3; i++ {
		v, err := fut.Await()
		assert.NoError(t, err)
		assert.Equal(t, "once", v)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestThen(t *testing.T) {
	release := make(chan struct{})
	fut := Go(func() (string, error) {
		<-release
		return "done", nil
	})

	got := make(chan string, 2)
	fut.Then(func(v string, err error) {
		assert.NoError(t, err)
		got <- v
	})

	select {
	case <-fut.Done():
		t.Fatal("future resolved before the call returned")
	default:
	}

	close(release)

	select {
	case v := <-got:
		assert.Equal(t, "done", v)
	case <-time.After(time.Second):
		t.Fatal("callback was not invoked")
	}

	select {
	case <-got:
		t.Fatal("callback invoked more than once")
	case <-time.After(50 * time.Millisecond):
	}
}
