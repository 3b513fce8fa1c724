package binder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wired/core/binder"
)

type chatMessage struct {
	Text  string            `json:"text"`
	Count int               `json:"count"`
	Tags  []string          `json:"tags"`
	Meta  map[string]string `json:"meta"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		var m chatMessage
		require.NoError(t, binder.JSON([]byte(`{"text":"hi","count":2,"tags":["a"]}`), &m))
		assert.Equal(t, chatMessage{Text: "hi", Count: 2, Tags: []string{"a"}}, m)
	})

	t.Run("sanitizes strings", func(t *testing.T) {
		t.Parallel()
		var m chatMessage
		payload := `{"text":"a\u0000b\r\nc\td","tags":["x\ny"],"meta":{"k":"v\u0007"}}`
		require.NoError(t, binder.JSON([]byte(payload), &m))
		assert.Equal(t, "abc\td", m.Text)
		assert.Equal(t, []string{"xy"}, m.Tags)
		assert.Equal(t, "v", m.Meta["k"])
	})

	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty", payload: ""},
		{name: "invalid", payload: `{"text":`},
		{name: "unknown field", payload: `{"nope":1}`},
		{name: "wrong type", payload: `{"count":"x"}`},
		{name: "trailing data", payload: `{"text":"a"}{"text":"b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var m chatMessage
			err := binder.JSON([]byte(tt.payload), &m)
			require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
			assert.True(t, binder.IsDecodeError(err))
		})
	}

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		big := `{"text":"` + strings.Repeat("a", binder.MaxJSONSize) + `"}`
		var m chatMessage
		require.ErrorIs(t, binder.JSON([]byte(big), &m), binder.ErrPayloadTooLarge)
	})

	t.Run("scalar target", func(t *testing.T) {
		t.Parallel()
		var n int
		require.NoError(t, binder.JSON([]byte(" 42 \n"), &n))
		assert.Equal(t, 42, n)
	})
}

type search struct {
	Q        string   `query:"q" form:"q"`
	Page     int      `query:"page" form:"page"`
	Limit    uint     `query:"limit"`
	Score    float64  `query:"score"`
	Tags     []string `query:"tags"`
	IDs      []int    `query:"ids"`
	Active   *bool    `query:"active"`
	Internal string   `query:"-"`
	Fallback string
	hidden   string
}

func TestQuery(t *testing.T) {
	t.Parallel()

	var s search
	raw := "q=go%0Alang&page=2&limit=10&score=1.5&tags=a,b&tags=c&ids=1&ids=2&active=on&Internal=x&fallback=f&hidden=h"
	require.NoError(t, binder.Query(raw, &s))

	assert.Equal(t, "golang", s.Q)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, uint(10), s.Limit)
	assert.InDelta(t, 1.5, s.Score, 0.0001)
	assert.Equal(t, []string{"a", "b", "c"}, s.Tags)
	assert.Equal(t, []int{1, 2}, s.IDs)
	require.NotNil(t, s.Active)
	assert.True(t, *s.Active)
	assert.Empty(t, s.Internal)
	assert.Equal(t, "f", s.Fallback)
	assert.Empty(t, s.hidden)
}

func TestQueryErrors(t *testing.T) {
	t.Parallel()

	var s search
	require.ErrorIs(t, binder.Query("page=abc", &s), binder.ErrFailedToParseQuery)
	require.ErrorIs(t, binder.Query("active=maybe", &s), binder.ErrFailedToParseQuery)
	require.ErrorIs(t, binder.Query("q=%zz", &s), binder.ErrFailedToParseQuery)

	err := binder.Query("q=a", s)
	require.ErrorIs(t, err, binder.ErrInvalidTarget)
	require.ErrorIs(t, err, binder.ErrFailedToParseQuery)
}

func TestForm(t *testing.T) {
	t.Parallel()

	var s search
	require.NoError(t, binder.Form([]byte("q=hello&page=3"), &s))
	assert.Equal(t, "hello", s.Q)
	assert.Equal(t, 3, s.Page)

	require.ErrorIs(t, binder.Form([]byte("page=x"), &s), binder.ErrFailedToParseForm)
}

func TestForContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		wantErr     bool
		form        bool
	}{
		{contentType: ""},
		{contentType: "application/json"},
		{contentType: "application/json; charset=utf-8"},
		{contentType: "application/x-www-form-urlencoded", form: true},
		{contentType: "text/plain", wantErr: true},
		{contentType: ";;", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()

			dec, err := binder.ForContentType(tt.contentType)
			if tt.wantErr {
				require.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
				return
			}
			require.NoError(t, err)

			var s search
			if tt.form {
				require.NoError(t, dec([]byte("q=x"), &s))
			} else {
				require.NoError(t, dec([]byte(`{"Q":"x"}`), &s))
			}
			assert.Equal(t, "x", s.Q)
		})
	}
}
