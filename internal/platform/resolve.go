package platform

import (
	"strings"

	"github.com/cmkit/cmkit/internal/catalog"
)

// Resolve returns the first variant of tool, in catalog order, that applies
// to a node reporting the given OS name and architecture. Catalogs may list
// overlapping variants, so the first-match ordering is part of the contract.
func Resolve(osName, arch string, tool catalog.Tool) (catalog.Variant, bool) {
	f := FamilyOf(osName)
	for _, v := range tool.Variants {
		if appliesTo(f, arch, v.OS, v.Arch) {
			return v, true
		}
	}
	return catalog.Variant{}, false
}

// FamilyOf derives the OS family from the raw OS name a node reports
// (the JVM-style "os.name" value on the reference download site).
// Unrecognized names yield Unknown, which never matches any variant.
func FamilyOf(osName string) Family {
	switch {
	case osName == "Linux":
		return Linux
	case strings.HasPrefix(osName, "Windows"):
		return Windows
	case strings.Contains(osName, "OS X"):
		return MacOS
	case osName == "SunOS":
		return SunOS
	case osName == "AIX":
		return AIX
	case osName == "HPUX":
		return HPUX
	case osName == "Irix":
		return Irix
	case osName == "FreeBSD":
		return FreeBSD
	}
	return Unknown
}

// appliesTo reports whether a variant published for (variantOS, variantArch)
// can run on a node of the given family with the given architecture.
//
// The architecture rules are per family, not simple equality: 64-bit Linux
// and macOS nodes accept the 32-bit or universal builds the download site
// published for older releases, while Windows, AIX and HP-UX only ever had
// a single architecture published.
func appliesTo(f Family, nodeArch, variantOS, variantArch string) bool {
	if f == Unknown || f.Tag() != variantOS {
		return false
	}
	switch f {
	case Linux:
		if nodeArch == "i386" && variantArch == "i386" {
			return true
		}
		if nodeArch == "amd64" && (variantArch == "i386" || variantArch == "x86_64") {
			return true
		}
		return false
	case MacOS:
		if nodeArch == "i386" && variantArch == "i386" {
			return true
		}
		if (nodeArch == "amd64" || nodeArch == "x86_64") &&
			(variantArch == "universal" || variantArch == "x86_64") {
			return true
		}
		return false
	case Windows, AIX, HPUX:
		return true
	case SunOS:
		// sparc is the only architecture ever published.
		return nodeArch == "sparc" && variantArch == "sparc"
	case Irix:
		// the site publishes "n32" and "64"; accept either.
		return true
	}
	return false
}
