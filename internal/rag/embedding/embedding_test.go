package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatches(t *testing.T) {
	texts := make([]string, 250)
	batches := Batches(texts, 100)
	assert.Len(t, batches, 3)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[2], 50)

	assert.Empty(t, Batches(nil, 100))
	assert.Len(t, Batches([]string{"a", "b"}, 0), 1)
}
