// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpanIDIsUUIDv7(t *testing.T) {
	id := NewSpanID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.EqualValues(t, 7, parsed.Version())
}

func TestNewSpanIDIsUnique(t *testing.T) {
	assert.NotEqual(t, NewSpanID(), NewSpanID())
}
