package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystem_WriteText(t *testing.T) {
	var got string
	s := &System{write: func(text string) error {
		got = text
		return nil
	}}

	err := s.WriteText(context.Background(), "abc")

	assert.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestSystem_WriteTextError(t *testing.T) {
	s := &System{write: func(string) error { return errors.New("no display") }}

	err := s.WriteText(context.Background(), "abc")

	assert.ErrorContains(t, err, "no display")
}

func TestSystem_CancelledContext(t *testing.T) {
	called := false
	s := &System{write: func(string) error {
		called = true
		return nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.WriteText(ctx, "abc")

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestNew_DisabledReturnsNoop(t *testing.T) {
	w := New(false)

	assert.IsType(t, Noop{}, w)
	assert.NoError(t, w.WriteText(context.Background(), "abc"))
}
