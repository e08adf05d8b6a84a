package platform

import "runtime"

// Node returns the OS name and architecture of the local node in the
// spelling the catalog matching rules expect (the JVM-style values the
// download site keys its variants by).
func Node() (osName, arch string) {
	switch runtime.GOOS {
	case "linux":
		osName = "Linux"
	case "windows":
		osName = "Windows"
	case "darwin":
		osName = "Mac OS X"
	case "freebsd":
		osName = "FreeBSD"
	case "solaris", "illumos":
		osName = "SunOS"
	case "aix":
		osName = "AIX"
	default:
		osName = runtime.GOOS
	}
	switch runtime.GOARCH {
	case "386":
		arch = "i386"
	default:
		arch = runtime.GOARCH
	}
	return osName, arch
}
