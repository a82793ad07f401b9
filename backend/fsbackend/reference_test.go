package fsbackend_test

import (
	"testing"

	"github.com/wyag/git-go/backend"
	"github.com/wyag/git-go/backend/fsbackend"
	"github.com/wyag/git-go/ginternals"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func newTestBackend(t *testing.T) *fsbackend.Backend {
	t.Helper()
	fs := afero.NewMemMapFs()
	b := fsbackend.New("/repo/.git", fs)
	require.NoError(t, b.Init())
	return b
}

func TestWriteAndReadReference(t *testing.T) {
	t.Parallel()

	t.Run("oid reference round-trips", func(t *testing.T) {
		t.Parallel()
		b := newTestBackend(t)

		oid, err := ginternals.NewOidFromHex("fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3")
		require.NoError(t, err)

		ref := ginternals.NewReference(ginternals.LocalBranchFullName("master"), oid)
		require.NoError(t, b.WriteReference(ref))

		got, err := b.Reference(ginternals.LocalBranchFullName("master"))
		require.NoError(t, err)
		assert.Equal(t, oid, got.Target())
	})

	t.Run("symbolic reference resolves through its target", func(t *testing.T) {
		t.Parallel()
		b := newTestBackend(t)

		oid, err := ginternals.NewOidFromHex("fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3")
		require.NoError(t, err)
		require.NoError(t, b.WriteReference(ginternals.NewReference(ginternals.LocalBranchFullName("master"), oid)))
		require.NoError(t, b.WriteReference(ginternals.NewSymbolicReference(ginternals.Head, ginternals.LocalBranchFullName("master"))))

		got, err := b.Reference(ginternals.Head)
		require.NoError(t, err)
		assert.Equal(t, oid, got.Target())
		assert.Equal(t, ginternals.SymbolicReference, got.Type())
	})

	t.Run("unknown reference", func(t *testing.T) {
		t.Parallel()
		b := newTestBackend(t)

		_, err := b.Reference(ginternals.LocalBranchFullName("nope"))
		assert.True(t, xerrors.Is(err, ginternals.ErrRefNotFound))
	})

	t.Run("invalid reference name is rejected before touching disk", func(t *testing.T) {
		t.Parallel()
		b := newTestBackend(t)

		oid, err := ginternals.NewOidFromHex("fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3")
		require.NoError(t, err)
		err = b.WriteReference(ginternals.NewReference("refs/heads/bad..name", oid))
		assert.True(t, xerrors.Is(err, ginternals.ErrRefNameInvalid))
	})
}

func TestWriteReferenceSafe(t *testing.T) {
	t.Parallel()

	b := newTestBackend(t)
	oid, err := ginternals.NewOidFromHex("fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3")
	require.NoError(t, err)

	ref := ginternals.NewReference(ginternals.LocalBranchFullName("master"), oid)
	require.NoError(t, b.WriteReferenceSafe(ref))

	err = b.WriteReferenceSafe(ref)
	assert.True(t, xerrors.Is(err, ginternals.ErrRefExists))
}

func TestWalkReferences(t *testing.T) {
	t.Parallel()

	b := newTestBackend(t)
	oid, err := ginternals.NewOidFromHex("fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3")
	require.NoError(t, err)

	require.NoError(t, b.WriteReference(ginternals.NewReference(ginternals.LocalBranchFullName("master"), oid)))
	require.NoError(t, b.WriteReference(ginternals.NewReference(ginternals.LocalTagFullName("v1"), oid)))

	var names []string
	err = b.WalkReferences(func(ref *ginternals.Reference) error {
		names = append(names, ref.Name())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{ginternals.LocalBranchFullName("master"), ginternals.LocalTagFullName("v1")}, names)

	t.Run("can be stopped early", func(t *testing.T) {
		var seen []string
		err := b.WalkReferences(func(ref *ginternals.Reference) error {
			seen = append(seen, ref.Name())
			return backend.WalkStop
		})
		require.NoError(t, err)
		assert.Len(t, seen, 1)
	})
}
