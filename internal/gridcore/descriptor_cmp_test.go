package gridcore

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// TestDescriptorRoundTripDeepEqual round-trips a cascading descriptor
// through WriteHeader/ReadHeader and diffs the whole struct at once with
// go-cmp, rather than field-by-field assertions, so a future field added
// to Descriptor gets caught here without the test needing an update.
func TestDescriptorRoundTripDeepEqual(t *testing.T) {
	desc := Descriptor{
		Nx: 12, Ny: 9, Nz: 5,
		OrigX: -3.5, OrigY: 2.25, OrigZ: 0,
		Dx: 0.5, Dy: 0.5, Dz: 1.0,
		Kind: Slowness, ElemType: Float32,
		Cascading:   true,
		MergeDepths: []float64{2, 8},
	}
	g, err := Allocate(desc, "cmp-rt")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.WriteHeader(&buf, Transform{Kind: "NONE"}))

	got, _, err := ReadHeader(&buf, "cmp-rt.hdr")
	require.NoError(t, err)

	diff := cmp.Diff(desc, got, cmpopts.EquateApprox(0, 1e-9))
	if diff != "" {
		t.Fatalf("descriptor round trip mismatch (-want +got):\n%s", diff)
	}
}
