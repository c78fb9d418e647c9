// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

package icmpengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSeqWrapsSkippingZero(t *testing.T) {
	assert.EqualValues(t, 1, nextSeq(0))
	assert.EqualValues(t, 2, nextSeq(1))
	assert.EqualValues(t, 1, nextSeq(0xFFFF))
}

func TestNextSeqNeverZero(t *testing.T) {
	seq := uint16(0)
	for i := 0; i < 1<<17; i++ {
		seq = nextSeq(seq)
		if seq == 0 {
			t.Fatalf("sequence counter produced zero at iteration %d", i)
		}
	}
}
