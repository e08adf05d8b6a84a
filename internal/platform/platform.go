// Package platform maps a node's OS name and CPU architecture to the
// best-fit downloadable variant of a tool.
package platform

// Family is the OS family of a build node, derived from the raw OS name
// the node reports.
type Family int

const (
	Unknown Family = iota
	Linux
	Windows
	MacOS
	SunOS
	FreeBSD
	Irix
	AIX
	HPUX
)

var familyNames = map[Family]string{
	Linux:   "Linux",
	Windows: "Windows",
	MacOS:   "macOS",
	SunOS:   "SunOS",
	FreeBSD: "FreeBSD",
	Irix:    "Irix",
	AIX:     "AIX",
	HPUX:    "HPUX",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return "unknown"
}

// Tag returns the OS name used by the download site for this family.
func (f Family) Tag() string {
	switch f {
	case Windows:
		return "win32"
	case MacOS:
		return "Darwin"
	case Irix:
		return "IRIX64"
	case HPUX:
		return "HP-UX"
	default:
		return f.String()
	}
}
