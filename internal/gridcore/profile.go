package gridcore

// ProfileSample is one point of a 1D radial profile read off a finished
// grid (the eikonal solver's under-the-source travel-time profile).
type ProfileSample struct {
	Depth float64
	Value float64
}
