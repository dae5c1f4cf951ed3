package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/KirkDiggler/nightfall/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientCatalog(t *testing.T) {
	err := errors.InsufficientCatalog("EVIL", 3, 1)

	assert.True(t, errors.IsInsufficientCatalog(err))
	assert.False(t, errors.IsConfig(err))
	assert.Contains(t, err.Error(), "EVIL")

	meta := errors.GetMeta(err)
	require.NotNil(t, meta)
	assert.Equal(t, "EVIL", meta[errors.MetaCategory])
	assert.Equal(t, 3, meta[errors.MetaNeeded])
	assert.Equal(t, 1, meta[errors.MetaAvailable])
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode errors.Code
	}{
		{
			name:     "keeps code of wrapped app error",
			err:      errors.Catalogf("Seer", "duplicate role name %q", "Seer"),
			wantCode: errors.CodeCatalog,
		},
		{
			name:     "keeps code through fmt wrapping",
			err:      fmt.Errorf("loading: %w", errors.Configf("need at least %d players", 5)),
			wantCode: errors.CodeConfig,
		},
		{
			name:     "plain errors become unknown",
			err:      stderrors.New("boom"),
			wantCode: errors.CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := errors.Wrap(tt.err, "context")
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.wantCode, errors.GetCode(wrapped))
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}

func TestWrap_PreservesMetaCopy(t *testing.T) {
	orig := errors.InsufficientCatalog("profession", 8, 6)
	wrapped := errors.Wrap(orig, "generate")
	wrapped.WithMeta("run", "abc")

	_, leaked := orig.Meta["run"]
	assert.False(t, leaked)
	assert.Equal(t, "profession", errors.GetMeta(wrapped)[errors.MetaCategory])
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, errors.WrapWithCode(nil, errors.CodeInternal, "nothing"))
}

func TestWrapWithCode(t *testing.T) {
	err := errors.WrapWithCode(stderrors.New("bad yaml"), errors.CodeCatalog, "decode catalog")
	assert.True(t, errors.IsCatalog(err))
	assert.Equal(t, "decode catalog: bad yaml", err.Error())
}
