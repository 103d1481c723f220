// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/blenda/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[string, int](nil, func(s string) int { return len(s) }))
	assert.Equal(t, []int{2, 5}, slice.Map([]string{"en", "fr-ca"}, func(s string) int { return len(s) }))
}
