// Package cmcache reads the key/value cache file the configure step
// generates (CMakeCache.txt).
package cmcache

import (
	"bufio"
	"bytes"
	"strings"
)

// BuildToolKey is the cache entry naming the low-level build tool the
// generated build scripts are written for (e.g. /usr/bin/make).
const BuildToolKey = "CMAKE_BUILD_TOOL"

// FileName is the name of the cache file under the build directory.
const FileName = "CMakeCache.txt"

// Value returns the value of key in the cache data. A missing key is not
// an error: the second result is simply false. Lines have the form
// KEY:TYPE=VALUE; blank lines and comments are ignored.
func Value(data []byte, key string) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		head, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name, _, ok := strings.Cut(head, ":")
		if !ok {
			continue
		}
		if name == key {
			return value, true
		}
	}
	return "", false
}

// BuildTool returns the build tool recorded in the cache data.
func BuildTool(data []byte) (string, bool) {
	return Value(data, BuildToolKey)
}
