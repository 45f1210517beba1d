package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type closer struct {
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func TestProtect(t *testing.T) {
	assert.NoError(t, protect(func() error { return nil }))

	errBoom := errors.New("boom")
	assert.ErrorIs(t, protect(func() error { return errBoom }), errBoom)

	err := protect(func() error { panic("index out of range") })
	assert.EqualError(t, err, "unexpected failure: index out of range")
}

func TestExitOnInterrupt_ClosesBeforeExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &closer{}
	var out bytes.Buffer
	code := -1

	exitOnInterrupt(ctx, make(chan struct{}), c, &out, func(n int) { code = n })

	assert.True(t, c.closed)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Program interrupted. Goodbye!")
}

func TestExitOnInterrupt_DoneFirst(t *testing.T) {
	done := make(chan struct{})
	close(done)

	c := &closer{}
	exited := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	exitOnInterrupt(ctx, done, c, &bytes.Buffer{}, func(int) { exited = true })

	assert.False(t, c.closed)
	assert.False(t, exited)
}
