// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package slice_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc-aweaver/techradar-1/pkg/slice"
)

func TestMapFilter(t *testing.T) {
	doubled := slice.Map([]int{1, 2, 3}, func(v int) int { return v * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)

	even := slice.Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	assert.Nil(t, slice.Map[int, int](nil, func(v int) int { return v }))
}

func TestGroupBy_FirstSeenOrder(t *testing.T) {
	groups, err := slice.GroupBy([]string{"pear", "apple", "plum", "avocado"}, func(s string) (string, error) {
		return strings.ToUpper(s[:1]), nil
	})
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "P", groups[0].Key)
	assert.Equal(t, []string{"pear", "plum"}, groups[0].Items)
	assert.Equal(t, "A", groups[1].Key)
	assert.Equal(t, []string{"apple", "avocado"}, groups[1].Items)
}

func TestGroupBy_KeyError(t *testing.T) {
	boom := errors.New("bad key")
	groups, err := slice.GroupBy([]int{1, 2}, func(v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, groups)
}

func TestGroupBy_Empty(t *testing.T) {
	groups, err := slice.GroupBy([]int{}, func(v int) (int, error) { return v, nil })
	require.NoError(t, err)
	assert.Empty(t, groups)
}
