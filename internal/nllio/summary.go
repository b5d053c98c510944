// Package nllio formats and parses the NonLinLoc hypocenter summary text
// record: a pure text layer the core's location-statistics types can be
// exercised against, without taking on full phase-file I/O.
package nllio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/seismocore/internal/coreerrs"
	"github.com/banshee-data/seismocore/internal/locstats"
)

// Quality carries the location-quality fields of the QUALITY line.
type Quality struct {
	Pmax, MFmin, MFmax, RMS float64
	Nphs                    int
	Gap, Dist               float64
}

// HypocenterSummary is one NLLOC .../END_NLLOC record.
type HypocenterSummary struct {
	FileRoot      string
	Status        string
	StatusComment string

	OriginTime time.Time
	Lat, Lon   float64
	Depth      float64

	Quality Quality

	Expect    locstats.Expectation
	Cov       locstats.Covariance
	Ellipsoid locstats.Ellipsoid3D
	TaitBryan locstats.TaitBryan
}

// sixSigFigs renders v in decimal notation with at least six significant
// digits, per spec.md SS6. A fixed %.6g loses precision on any value whose
// exact representation needs more than six digits (e.g. a latitude like
// 46.123456), so this uses the shortest decimal that round-trips back to
// the exact float64 bit pattern, written without an exponent, padding up to
// six significant digits (leading zeros do not count) for values that would
// otherwise print shorter (e.g. "5" -> "5.00000", "0.04" -> "0.0400000").
func sixSigFigs(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	digits := 0
	for _, r := range s {
		if (r >= '1' && r <= '9') || (r == '0' && digits > 0) {
			digits++
		}
	}
	if digits >= 6 {
		return s
	}
	neg := strings.HasPrefix(s, "-")
	mantissa := strings.TrimPrefix(s, "-")
	if !strings.Contains(mantissa, ".") {
		mantissa += "."
	}
	mantissa += strings.Repeat("0", 6-digits)
	if neg {
		return "-" + mantissa
	}
	return mantissa
}

// Format renders h as the NLLOC/GEOGRAPHIC/QUALITY/STATISTICS/
// QML_ConfidenceEllipsoid/END_NLLOC text block, with a trailing blank line.
// All numeric fields use decimal notation to at least six significant
// digits, per spec.md SS6.
func Format(h HypocenterSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "NLLOC %q %q %q\n", h.FileRoot, h.Status, h.StatusComment)
	ot := h.OriginTime.UTC()
	fmt.Fprintf(&b, "GEOGRAPHIC  OT %04d %02d %02d %02d %02d %09.6f  Lat %s Long %s Depth %s\n",
		ot.Year(), ot.Month(), ot.Day(), ot.Hour(), ot.Minute(),
		float64(ot.Second())+float64(ot.Nanosecond())/1e9,
		sixSigFigs(h.Lat), sixSigFigs(h.Lon), sixSigFigs(h.Depth))
	q := h.Quality
	fmt.Fprintf(&b, "QUALITY  Pmax %s MFmin %s MFmax %s RMS %s Nphs %d Gap %s Dist %s\n",
		sixSigFigs(q.Pmax), sixSigFigs(q.MFmin), sixSigFigs(q.MFmax), sixSigFigs(q.RMS), q.Nphs, sixSigFigs(q.Gap), sixSigFigs(q.Dist))
	fmt.Fprintf(&b, "STATISTICS  ExpectX %s Y %s Z %s  CovXX %s XY %s XZ %s YY %s YZ %s ZZ %s  EllAz1 %s Dip1 %s Len1 %s  Az2 %s Dip2 %s Len2 %s  Len3 %s\n",
		sixSigFigs(h.Expect.X), sixSigFigs(h.Expect.Y), sixSigFigs(h.Expect.Z),
		sixSigFigs(h.Cov.XX), sixSigFigs(h.Cov.XY), sixSigFigs(h.Cov.XZ), sixSigFigs(h.Cov.YY), sixSigFigs(h.Cov.YZ), sixSigFigs(h.Cov.ZZ),
		sixSigFigs(h.Ellipsoid.Az1), sixSigFigs(h.Ellipsoid.Dip1), sixSigFigs(h.Ellipsoid.Len1),
		sixSigFigs(h.Ellipsoid.Az2), sixSigFigs(h.Ellipsoid.Dip2), sixSigFigs(h.Ellipsoid.Len2),
		sixSigFigs(h.Ellipsoid.Len3))
	fmt.Fprintf(&b, "QML_ConfidenceEllipsoid  semiMajorAxisLength %s  semiMinorAxisLength %s  semiIntermediateAxisLength %s  majorAxisPlunge %s  majorAxisAzimuth %s  majorAxisRotation %s\n",
		sixSigFigs(h.TaitBryan.SemiMajor), sixSigFigs(h.TaitBryan.SemiMinor), sixSigFigs(h.TaitBryan.SemiIntermediate),
		sixSigFigs(h.TaitBryan.MajorPlunge), sixSigFigs(h.TaitBryan.MajorAzimuth), sixSigFigs(h.TaitBryan.MajorRotation))
	b.WriteString("END_NLLOC\n\n")

	return b.String()
}

// Parse reads one HypocenterSummary record from r, tolerant of field order
// within each line but requiring NLLOC as the first non-blank line and
// END_NLLOC to terminate the record.
func Parse(r io.Reader) (HypocenterSummary, error) {
	var h HypocenterSummary
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		tag := fields[0]
		switch tag {
		case "NLLOC":
			parts := splitQuoted(line)
			if len(parts) < 4 {
				return h, &coreerrs.HeaderParseError{Path: "<nllio.Parse>", Reason: "NLLOC line missing fileroot/status/comment"}
			}
			h.FileRoot, h.Status, h.StatusComment = parts[1], parts[2], parts[3]
		case "GEOGRAPHIC":
			if err := parseGeographic(fields, &h); err != nil {
				return h, err
			}
		case "QUALITY":
			if err := parseQuality(fields, &h.Quality); err != nil {
				return h, err
			}
		case "STATISTICS":
			if err := parseStatistics(fields, &h); err != nil {
				return h, err
			}
		case "QML_ConfidenceEllipsoid":
			if err := parseEllipsoid(fields, &h.TaitBryan); err != nil {
				return h, err
			}
		case "END_NLLOC":
			return h, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return h, &coreerrs.IoError{Path: "<nllio.Parse>", Op: "scan hypocenter summary", Err: err}
	}
	return h, &coreerrs.HeaderParseError{Path: "<nllio.Parse>", Reason: "missing END_NLLOC terminator"}
}

// splitQuoted splits a line into whitespace-separated tokens, treating
// double-quoted spans as single tokens (for the NLLOC line's quoted
// fileroot/status/comment fields).
func splitQuoted(line string) []string {
	var parts []string
	var cur strings.Builder
	inQuote := false
	started := false // a token has begun (quote opened or a char written), even if still empty
	for _, r := range line {
		switch {
		case r == '"':
			if inQuote {
				parts = append(parts, cur.String())
				cur.Reset()
				started = false
			} else {
				started = true
			}
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			if started {
				parts = append(parts, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		parts = append(parts, cur.String())
	}
	return parts
}

func fieldFloat(fields []string, name string) (float64, error) {
	for i, f := range fields {
		if f == name && i+1 < len(fields) {
			return strconv.ParseFloat(fields[i+1], 64)
		}
	}
	return 0, fmt.Errorf("field %q not found", name)
}

func fieldInt(fields []string, name string) (int, error) {
	v, err := fieldFloat(fields, name)
	return int(v), err
}

func parseGeographic(fields []string, h *HypocenterSummary) error {
	var year, month, day, hour, minute int
	var sec float64
	for i, f := range fields {
		if f == "OT" && i+6 < len(fields) {
			year, _ = strconv.Atoi(fields[i+1])
			month, _ = strconv.Atoi(fields[i+2])
			day, _ = strconv.Atoi(fields[i+3])
			hour, _ = strconv.Atoi(fields[i+4])
			minute, _ = strconv.Atoi(fields[i+5])
			sec, _ = strconv.ParseFloat(fields[i+6], 64)
		}
	}
	wholeSec := int(sec)
	nanos := int((sec - float64(wholeSec)) * 1e9)
	h.OriginTime = time.Date(year, time.Month(month), day, hour, minute, wholeSec, nanos, time.UTC)

	var err error
	if h.Lat, err = fieldFloat(fields, "Lat"); err != nil {
		return &coreerrs.HeaderParseError{Path: "<nllio.Parse>", Reason: err.Error()}
	}
	if h.Lon, err = fieldFloat(fields, "Long"); err != nil {
		return &coreerrs.HeaderParseError{Path: "<nllio.Parse>", Reason: err.Error()}
	}
	if h.Depth, err = fieldFloat(fields, "Depth"); err != nil {
		return &coreerrs.HeaderParseError{Path: "<nllio.Parse>", Reason: err.Error()}
	}
	return nil
}

func parseQuality(fields []string, q *Quality) error {
	var err error
	if q.Pmax, err = fieldFloat(fields, "Pmax"); err != nil {
		return &coreerrs.HeaderParseError{Path: "<nllio.Parse>", Reason: err.Error()}
	}
	q.MFmin, _ = fieldFloat(fields, "MFmin")
	q.MFmax, _ = fieldFloat(fields, "MFmax")
	q.RMS, _ = fieldFloat(fields, "RMS")
	q.Nphs, _ = fieldInt(fields, "Nphs")
	q.Gap, _ = fieldFloat(fields, "Gap")
	q.Dist, _ = fieldFloat(fields, "Dist")
	return nil
}

func parseStatistics(fields []string, h *HypocenterSummary) error {
	h.Expect.X, _ = fieldFloat(fields, "ExpectX")
	h.Expect.Y, _ = fieldFloat(fields, "Y")
	h.Expect.Z, _ = fieldFloat(fields, "Z")
	h.Cov.XX, _ = fieldFloat(fields, "CovXX")
	h.Cov.XY, _ = fieldFloat(fields, "XY")
	h.Cov.XZ, _ = fieldFloat(fields, "XZ")
	h.Cov.YY, _ = fieldFloat(fields, "YY")
	h.Cov.YZ, _ = fieldFloat(fields, "YZ")
	h.Cov.ZZ, _ = fieldFloat(fields, "ZZ")
	h.Ellipsoid.Az1, _ = fieldFloat(fields, "EllAz1")
	h.Ellipsoid.Dip1, _ = fieldFloat(fields, "Dip1")
	h.Ellipsoid.Len1, _ = fieldFloat(fields, "Len1")
	h.Ellipsoid.Az2, _ = fieldFloat(fields, "Az2")
	h.Ellipsoid.Dip2, _ = fieldFloat(fields, "Dip2")
	h.Ellipsoid.Len2, _ = fieldFloat(fields, "Len2")
	h.Ellipsoid.Len3, _ = fieldFloat(fields, "Len3")
	return nil
}

func parseEllipsoid(fields []string, tb *locstats.TaitBryan) error {
	var err error
	if tb.SemiMajor, err = fieldFloat(fields, "semiMajorAxisLength"); err != nil {
		return &coreerrs.HeaderParseError{Path: "<nllio.Parse>", Reason: err.Error()}
	}
	tb.SemiMinor, _ = fieldFloat(fields, "semiMinorAxisLength")
	tb.SemiIntermediate, _ = fieldFloat(fields, "semiIntermediateAxisLength")
	tb.MajorPlunge, _ = fieldFloat(fields, "majorAxisPlunge")
	tb.MajorAzimuth, _ = fieldFloat(fields, "majorAxisAzimuth")
	tb.MajorRotation, _ = fieldFloat(fields, "majorAxisRotation")
	return nil
}
