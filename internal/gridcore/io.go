package gridcore

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/seismocore/internal/coreerrs"
)

// Transform names the header's geographic transform line, either a plain
// simple transform or a full geographic (TRANS_SIMPLE / TRANS_GLOBAL)
// projection, per spec.md SS6.
type Transform struct {
	Kind      string // "NONE", "SIMPLE", or "GLOBAL"
	OrigLat   float64
	OrigLon   float64
	RotAngle  float64
}

// WriteHeader writes the NonLinLoc-compatible .hdr text file describing g
// to w: the geometry line (ending in the kind and element-type tags), the
// TRANSFORM line, and (for cascading grids) a CASCADING_GRID line listing the merge
// depths, matching the line order read by ReadHeader.
func (g *Grid) WriteHeader(w io.Writer, t Transform) error {
	d := &g.Desc
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d %d %d  %f %f %f  %f %f %f  %s %s\n",
		d.Nx, d.Ny, d.Nz, d.OrigX, d.OrigY, d.OrigZ, d.Dx, d.Dy, d.Dz,
		string(d.Kind), elemTypeName(d.ElemType)); err != nil {
		return &coreerrs.IoError{Path: headerPathHint(w), Op: "write header geometry", Err: err}
	}

	if _, err := fmt.Fprintf(bw, "TRANSFORM  %s  LatOrig %f  LongOrig %f  RotCW %f\n",
		t.Kind, t.OrigLat, t.OrigLon, t.RotAngle); err != nil {
		return &coreerrs.IoError{Path: headerPathHint(w), Op: "write transform", Err: err}
	}

	if d.Cascading {
		depths := make([]string, len(d.MergeDepths))
		for i, v := range d.MergeDepths {
			depths[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if _, err := fmt.Fprintf(bw, "CASCADING_GRID  %s\n", strings.Join(depths, " ")); err != nil {
			return &coreerrs.IoError{Path: headerPathHint(w), Op: "write cascading header", Err: err}
		}
	}

	return bw.Flush()
}

func headerPathHint(w io.Writer) string {
	if f, ok := w.(*os.File); ok {
		return f.Name()
	}
	return "<stream>"
}

func elemTypeName(e ElemType) string {
	if e == Float32 {
		return "FLOAT"
	}
	return "DOUBLE"
}

// ReadHeader parses a NonLinLoc-compatible .hdr text file into a
// Descriptor and the Transform line, leaving ByteOrder at Native (callers
// determine swap need from the companion .buf read).
func ReadHeader(r io.Reader, path string) (Descriptor, Transform, error) {
	sc := bufio.NewScanner(r)
	var d Descriptor
	var t Transform
	gotGeometry := false

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch {
		case !gotGeometry:
			if len(fields) < 11 {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "geometry line has too few fields"}
			}
			var err error
			if d.Nx, err = strconv.Atoi(fields[0]); err != nil {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad Nx: " + err.Error()}
			}
			if d.Ny, err = strconv.Atoi(fields[1]); err != nil {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad Ny: " + err.Error()}
			}
			if d.Nz, err = strconv.Atoi(fields[2]); err != nil {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad Nz: " + err.Error()}
			}
			if d.OrigX, err = strconv.ParseFloat(fields[3], 64); err != nil {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad OrigX: " + err.Error()}
			}
			if d.OrigY, err = strconv.ParseFloat(fields[4], 64); err != nil {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad OrigY: " + err.Error()}
			}
			if d.OrigZ, err = strconv.ParseFloat(fields[5], 64); err != nil {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad OrigZ: " + err.Error()}
			}
			if d.Dx, err = strconv.ParseFloat(fields[6], 64); err != nil {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad Dx: " + err.Error()}
			}
			if d.Dy, err = strconv.ParseFloat(fields[7], 64); err != nil {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad Dy: " + err.Error()}
			}
			if d.Dz, err = strconv.ParseFloat(fields[8], 64); err != nil {
				return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad Dz: " + err.Error()}
			}
			d.Kind = Kind(fields[9])
			if strings.EqualFold(fields[10], "FLOAT") {
				d.ElemType = Float32
			} else {
				d.ElemType = Float64
			}
			gotGeometry = true

		case strings.HasPrefix(line, "TRANSFORM"):
			t.Kind = fieldAfter(fields, 1, "NONE")
			t.OrigLat = parseFieldAfter(fields, "LatOrig")
			t.OrigLon = parseFieldAfter(fields, "LongOrig")
			t.RotAngle = parseFieldAfter(fields, "RotCW")

		case strings.HasPrefix(line, "CASCADING_GRID"):
			d.Cascading = true
			d.MergeDepths = make([]float64, 0, len(fields)-1)
			for _, f := range fields[1:] {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "bad cascading merge depth: " + err.Error()}
				}
				d.MergeDepths = append(d.MergeDepths, v)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return d, t, &coreerrs.IoError{Path: path, Op: "read header", Err: err}
	}
	if !gotGeometry {
		return d, t, &coreerrs.HeaderParseError{Path: path, Reason: "missing geometry line"}
	}
	return d, t, nil
}

func fieldAfter(fields []string, idx int, def string) string {
	if idx < len(fields) {
		return fields[idx]
	}
	return def
}

func parseFieldAfter(fields []string, key string) float64 {
	for i, f := range fields {
		if f == key && i+1 < len(fields) {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err == nil {
				return v
			}
		}
	}
	return 0
}

// WriteBuf writes the grid's physical buffer in the descriptor's element
// type, swapping byte order when order is Swapped.
func (g *Grid) WriteBuf(w io.Writer, order ByteOrder) error {
	bw := bufio.NewWriter(w)
	for _, v := range g.buf {
		if err := writeElem(bw, v, g.Desc.ElemType, order); err != nil {
			return &coreerrs.IoError{Path: headerPathHint(w), Op: "write buf", Err: err}
		}
	}
	return bw.Flush()
}

func writeElem(w io.Writer, v float64, elemType ElemType, order ByteOrder) error {
	bo := nativeOrder(order)
	if elemType == Float32 {
		var buf [4]byte
		bo.PutUint32(buf[:], math.Float32bits(float32(v)))
		_, err := w.Write(buf[:])
		return err
	}
	var buf [8]byte
	bo.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.Write(buf[:])
	return err
}

func nativeOrder(order ByteOrder) binary.ByteOrder {
	if order == Swapped {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ReadBuf reads a physical buffer sized for desc (uniform or cascading)
// from r, in the descriptor's element type, swapping byte order when order
// is Swapped, and returns the populated Grid.
func ReadBuf(r io.Reader, desc Descriptor, title string, order ByteOrder) (*Grid, error) {
	g, err := Allocate(desc, title)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(r)
	bo := nativeOrder(order)
	for i := range g.buf {
		v, err := readElem(br, desc.ElemType, bo)
		if err != nil {
			return nil, &coreerrs.IoError{Path: title, Op: "read buf", Err: err}
		}
		g.buf[i] = v
	}
	return g, nil
}

func readElem(r io.Reader, elemType ElemType, bo binary.ByteOrder) (float64, error) {
	if elemType == Float32 {
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(bo.Uint32(buf[:]))), nil
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(bo.Uint64(buf[:])), nil
}
