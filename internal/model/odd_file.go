package model

// OddFile is an image or raw file whose counterpart does not exist.
type OddFile struct {
	// Path is the file path as reached by the walk, rooted at Root.
	Path string `json:"path"`

	// Kind tells which side of the pair is present.
	Kind Kind `json:"kind"`

	// Root is the directory argument the file was found under.
	Root string `json:"root"`

	// Photo holds EXIF details when metadata enrichment was requested
	// and the file carries readable EXIF data.
	Photo *PhotoInfo `json:"photo,omitempty"`
}

// PhotoInfo is the subset of EXIF metadata shown next to an odd file
// so the user can recognise the shot before deleting it.
type PhotoInfo struct {
	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	TakenAt  string `json:"taken_at,omitempty"`
	Software string `json:"software,omitempty"`
}

// Camera returns "Make Model", collapsing whichever part is missing.
func (p *PhotoInfo) Camera() string {
	if p == nil {
		return ""
	}
	switch {
	case p.Make == "":
		return p.Model
	case p.Model == "":
		return p.Make
	default:
		return p.Make + " " + p.Model
	}
}

// IsZero reports whether no EXIF field was found.
func (p *PhotoInfo) IsZero() bool {
	return p == nil || (p.Make == "" && p.Model == "" && p.TakenAt == "" && p.Software == "")
}
