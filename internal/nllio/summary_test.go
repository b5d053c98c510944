package nllio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/seismocore/internal/locstats"
)

func sampleSummary() HypocenterSummary {
	return HypocenterSummary{
		FileRoot:      "loc.20260731.120000.grid0",
		Status:        "LOCATED",
		StatusComment: "",
		OriginTime:    time.Date(2026, 7, 31, 12, 0, 1, 250000000, time.UTC),
		Lat:           46.123456,
		Lon:           7.654321,
		Depth:         8.5,
		Quality: Quality{
			Pmax: 1.2, MFmin: 0.5, MFmax: 2.1, RMS: 0.04,
			Nphs: 12, Gap: 145.0, Dist: 3.2,
		},
		Expect: locstats.Expectation{X: 1.1, Y: 2.2, Z: 8.4},
		Cov: locstats.Covariance{
			XX: 0.5, XY: 0.01, XZ: 0.02, YY: 0.6, YZ: 0.03, ZZ: 0.7,
		},
		Ellipsoid: locstats.Ellipsoid3D{
			Len1: 1.0, Az1: 10, Dip1: 5,
			Len2: 2.0, Az2: 100, Dip2: 15,
			Len3: 3.0, Az3: 200, Dip3: 70,
		},
		TaitBryan: locstats.TaitBryan{
			SemiMajor: 3.0, SemiMinor: 1.0, SemiIntermediate: 2.0,
			MajorPlunge: 70, MajorAzimuth: 200, MajorRotation: 12,
		},
	}
}

func TestFormatContainsAllRecordTags(t *testing.T) {
	text := Format(sampleSummary())
	for _, tag := range []string{"NLLOC", "GEOGRAPHIC", "QUALITY", "STATISTICS", "QML_ConfidenceEllipsoid", "END_NLLOC"} {
		require.Contains(t, text, tag)
	}
	require.True(t, strings.HasSuffix(text, "END_NLLOC\n\n"))
}

func TestFormatParseRoundTrip(t *testing.T) {
	h := sampleSummary()
	text := Format(h)

	parsed, err := Parse(strings.NewReader(text))
	require.NoError(t, err)

	require.Equal(t, h.FileRoot, parsed.FileRoot)
	require.Equal(t, h.Status, parsed.Status)
	require.True(t, h.OriginTime.Equal(parsed.OriginTime))
	require.InDelta(t, h.Lat, parsed.Lat, 1e-6)
	require.InDelta(t, h.Lon, parsed.Lon, 1e-6)
	require.InDelta(t, h.Depth, parsed.Depth, 1e-6)

	require.InDelta(t, h.Quality.Pmax, parsed.Quality.Pmax, 1e-6)
	require.Equal(t, h.Quality.Nphs, parsed.Quality.Nphs)
	require.InDelta(t, h.Quality.Gap, parsed.Quality.Gap, 1e-6)

	require.InDelta(t, h.Expect.X, parsed.Expect.X, 1e-6)
	require.InDelta(t, h.Cov.ZZ, parsed.Cov.ZZ, 1e-6)
	require.InDelta(t, h.Ellipsoid.Len3, parsed.Ellipsoid.Len3, 1e-6)

	require.InDelta(t, h.TaitBryan.SemiMajor, parsed.TaitBryan.SemiMajor, 1e-6)
	require.InDelta(t, h.TaitBryan.MajorAzimuth, parsed.TaitBryan.MajorAzimuth, 1e-6)
}

func TestParseMissingEndNllocErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("NLLOC \"x\" \"y\" \"z\"\n"))
	require.Error(t, err)
}

func TestParseMissingFileRootErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("NLLOC\nEND_NLLOC\n"))
	require.Error(t, err)
}
