// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package errkind

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "LoopMisMatch", LoopMisMatch.Error())
	assert.Equal(t, "CyclicGraph", CyclicGraph.String())

	err := errors.Wrapf(LoopMisMatch, "access map %d", 3)
	require.ErrorIs(t, err, LoopMisMatch)
	assert.NotErrorIs(t, err, InvalidAccessPattern)
	assert.Contains(t, err.Error(), "access map 3: LoopMisMatch")

	kind, found := Of(errors.WithMessage(err, "emitting block_7"))
	require.True(t, found)
	assert.Equal(t, LoopMisMatch, kind)

	_, found = Of(errors.New("plain"))
	assert.False(t, found)
}

func TestKindString(t *testing.T) {
	for _, kind := range KindValues() {
		parsed, err := KindString(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	_, err := KindString("NoSuchKind")
	require.Error(t, err)
}
