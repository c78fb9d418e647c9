// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package grpcclient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuickRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := quickRetry(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestQuickRetryGivesUpEventually(t *testing.T) {
	attempts := 0
	err := quickRetry(context.Background(), func() error {
		attempts++
		return errors.New("persistent")
	})

	assert.Error(t, err)
	assert.Greater(t, attempts, 1)
}
