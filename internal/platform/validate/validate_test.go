// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/validate"
)

/*
TestValidator_Rules runs each rule against a passing and a failing input.
*/
func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name     string
		apply    func(v *validate.Validator)
		hasError bool
	}{
		{"required ok", func(v *validate.Validator) { v.Required("name", "Acme") }, false},
		{"required blank", func(v *validate.Validator) { v.Required("name", "   ") }, true},
		{"email ok", func(v *validate.Validator) { v.Email("email", "ana@blenda.test") }, false},
		{"email display name", func(v *validate.Validator) { v.Email("email", "Ana <ana@blenda.test>") }, true},
		{"email garbage", func(v *validate.Validator) { v.Email("email", "not-an-email") }, true},
		{"slug ok", func(v *validate.Validator) { v.Slug("slug", "acme-summer-2026") }, false},
		{"slug upper", func(v *validate.Validator) { v.Slug("slug", "Acme") }, true},
		{"slug trailing hyphen", func(v *validate.Validator) { v.Slug("slug", "acme-") }, true},
		{"uuid ok", func(v *validate.Validator) { v.UUID("id", "0190d6c4-2f1e-7b3a-9c1d-5e6f7a8b9c0d") }, false},
		{"uuid bad", func(v *validate.Validator) { v.UUID("id", "123") }, true},
		{"url empty", func(v *validate.Validator) { v.URL("url", "") }, false},
		{"url ok", func(v *validate.Validator) { v.URL("url", "https://cdn.blenda.test/a.png") }, false},
		{"url relative", func(v *validate.Validator) { v.URL("url", "/a.png") }, true},
		{"oneof ok", func(v *validate.Validator) { v.OneOf("role", "owner", "owner", "member") }, false},
		{"oneof bad", func(v *validate.Validator) { v.OneOf("role", "root", "owner", "member") }, true},
		{"maxlen", func(v *validate.Validator) { v.MaxLen("title", "héllo", 4) }, true},
		{"minlen", func(v *validate.Validator) { v.MinLen("password", "short", 8) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.apply(v)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Err verifies that failures aggregate into one VALIDATION_ERROR.
*/
func TestValidator_Err(t *testing.T) {
	v := &validate.Validator{}
	assert.NoError(t, v.Err())

	err := v.Required("name", "").Slug("slug", "Bad Slug").Err()
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	require.Len(t, ae.Details, 2)
	assert.Equal(t, "name", ae.Details[0].Field)
	assert.Equal(t, "slug", ae.Details[1].Field)
}
