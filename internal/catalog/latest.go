package catalog

import "golang.org/x/mod/semver"

// Latest returns the tool with the highest version-shaped id. Ids that do
// not parse as versions rank below any that do; among unparseable ids the
// first in catalog order wins.
func Latest(tools []Tool) (Tool, bool) {
	if len(tools) == 0 {
		return Tool{}, false
	}
	best := tools[0]
	for _, t := range tools[1:] {
		if semver.Compare(canon(t.ID), canon(best.ID)) > 0 {
			best = t
		}
	}
	return best, true
}

func canon(id string) string {
	v := "v" + id
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
