package registry

import (
	"github.com/Masterminds/semver/v3"
)

// LatestTag returns the greatest semantic version among tags.
// Tags that are not semantic versions are ignored; ok is false if none is.
// The original tag text is returned, not the normalized version.
func LatestTag(tags []string) (latest string, ok bool) {
	var best *semver.Version
	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			latest = tag
		}
	}
	return latest, best != nil
}
