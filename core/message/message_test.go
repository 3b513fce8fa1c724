package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wired/core/message"
)

func TestPayload(t *testing.T) {
	t.Parallel()

	data, err := message.NewText("hi").Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)

	data, err = message.NewBinary([]byte{1, 2}).Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, data)

	for _, typ := range []message.Type{message.Close, message.Ping, message.Pong} {
		_, err := message.Message{Type: typ}.Payload()
		require.ErrorIs(t, err, message.ErrNotData, typ.String())
	}
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	m, err := message.NewJSON(map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, message.Text, m.Type)
	assert.JSONEq(t, `{"n":1}`, string(m.Data))

	_, err = message.NewJSON(make(chan int))
	require.Error(t, err)
}

func TestClone(t *testing.T) {
	t.Parallel()

	m := message.NewBinary([]byte{1})
	c := m.Clone()
	c.Data[0] = 9
	assert.Equal(t, byte(1), m.Data[0])
}

func TestTypeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "text", message.Text.String())
	assert.Equal(t, "pong", message.Pong.String())
	assert.Equal(t, "type(3)", message.Type(3).String())
}
