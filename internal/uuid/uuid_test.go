package uuid_test

import (
	"testing"

	"github.com/KirkDiggler/nightfall/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()
	a, b := gen.New(), gen.New()

	assert.True(t, uuid.IsValid(a))
	assert.NotEqual(t, a, b)
}

func TestSequenceGenerator(t *testing.T) {
	gen := uuid.NewSequenceGenerator("run")

	assert.Equal(t, "run-1", gen.New())
	assert.Equal(t, "run-2", gen.New())
	assert.False(t, uuid.IsValid("run-3"))
}
