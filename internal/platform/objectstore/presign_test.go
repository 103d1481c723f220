// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blenda/internal/platform/objectstore"
)

func newPresigner(t *testing.T) *objectstore.Presigner {
	t.Helper()
	presigner, err := objectstore.NewPresigner(objectstore.Options{
		Bucket:          "thumbs",
		Region:          "auto",
		Endpoint:        "https://storage.blenda.test",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		TTL:             15 * time.Minute,
	})
	require.NoError(t, err)
	return presigner
}

/*
TestPresigner_Resolve covers pass-through, bare keys and s3:// references.
*/
func TestPresigner_Resolve(t *testing.T) {
	ctx := context.Background()
	presigner := newPresigner(t)
	require.True(t, presigner.Enabled())

	t.Run("absolute url passes through", func(t *testing.T) {
		got, err := presigner.Resolve(ctx, "https://cdn.blenda.test/a.png")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.blenda.test/a.png", got)
	})

	t.Run("empty stays empty", func(t *testing.T) {
		got, err := presigner.Resolve(ctx, "  ")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("bare key uses configured bucket", func(t *testing.T) {
		got, err := presigner.Resolve(ctx, "templates/t1/thumb.jpg")
		require.NoError(t, err)

		parsed, err := url.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, "storage.blenda.test", parsed.Host)
		assert.Equal(t, "/thumbs/templates/t1/thumb.jpg", parsed.Path)
		assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))
		assert.Equal(t, "900", parsed.Query().Get("X-Amz-Expires"))
	})

	t.Run("s3 reference in configured bucket", func(t *testing.T) {
		got, err := presigner.Resolve(ctx, "s3://thumbs/t1/frame.png")
		require.NoError(t, err)

		parsed, err := url.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, "/thumbs/t1/frame.png", parsed.Path)
		assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))
	})

	t.Run("s3 reference to another bucket is never signed", func(t *testing.T) {
		got, err := presigner.Resolve(ctx, "s3://other-private-bucket/payroll.csv")
		assert.ErrorIs(t, err, objectstore.ErrForeignBucket)
		assert.Empty(t, got)
	})

	t.Run("asset path passes through", func(t *testing.T) {
		got, err := presigner.Resolve(ctx, "/default-thumbnail.svg")
		require.NoError(t, err)
		assert.Equal(t, "/default-thumbnail.svg", got)
	})

	t.Run("protocol-relative path is rejected", func(t *testing.T) {
		_, err := presigner.Resolve(ctx, "//evil.test/a.png")
		assert.ErrorIs(t, err, objectstore.ErrInvalidReference)
	})

	t.Run("s3 reference without key", func(t *testing.T) {
		_, err := presigner.Resolve(ctx, "s3://thumbs")
		assert.ErrorIs(t, err, objectstore.ErrInvalidReference)
	})
}

func TestPresigner_Check(t *testing.T) {
	presigner := newPresigner(t)

	tests := []struct {
		name string
		ref  string
		want error
	}{
		{"absolute url", "https://cdn.blenda.test/a.png", nil},
		{"asset path", "/default-thumbnail.svg", nil},
		{"bare key", "templates/t1/thumb.jpg", nil},
		{"own bucket", "s3://thumbs/templates/t1/thumb.jpg", nil},
		{"foreign bucket", "s3://renders/t1/frame.png", objectstore.ErrForeignBucket},
		{"empty", "   ", objectstore.ErrInvalidReference},
		{"url without host", "https://", objectstore.ErrInvalidReference},
		{"other scheme", "ftp://files.blenda.test/a.png", objectstore.ErrInvalidReference},
		{"protocol-relative", "//evil.test/a.png", objectstore.ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := presigner.Check(tt.ref)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPresigner_Disabled(t *testing.T) {
	presigner, err := objectstore.NewPresigner(objectstore.Options{})
	require.NoError(t, err)
	assert.False(t, presigner.Enabled())

	got, err := presigner.Resolve(context.Background(), "templates/t1/thumb.jpg")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = presigner.Resolve(context.Background(), "http://cdn.blenda.test/a.png")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.blenda.test/a.png", got)

	assert.NoError(t, presigner.Check("/default-thumbnail.svg"))
	assert.ErrorIs(t, presigner.Check("templates/t1/thumb.jpg"), objectstore.ErrDisabled)
}
