package gridcore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	desc := Descriptor{
		Nx: 4, Ny: 4, Nz: 4, OrigX: 0, OrigY: 0, OrigZ: 0, Dx: 1, Dy: 1, Dz: 1,
		Kind: Velocity, Cascading: true, MergeDepths: []float64{2},
	}
	g, err := Allocate(desc, "snap")
	require.NoError(t, err)
	require.NoError(t, g.SetValueAt(1, 1, 1, 9.5))

	snap := g.Snapshot(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NotEmpty(t, snap.ID)

	round, err := snapshotBuffer(snap)
	require.NoError(t, err)
	require.Equal(t, snap.ID, round.ID)

	g2 := round.Restore()
	require.Equal(t, g.Desc, g2.Desc)
	require.Equal(t, 9.5, g2.ValueAt(1, 1, 1))
}
