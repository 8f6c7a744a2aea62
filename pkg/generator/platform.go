package generator

import "strings"

// Platform is a set of capability flags describing which platform family a
// generator belongs to.
type Platform uint32

const (
	// Desktop marks generators for desktop operating systems.
	Desktop Platform = 1 << iota
	// Mobile marks generators for phones and tablets.
	Mobile
	// Mac marks generators backed by a macOS toolkit.
	Mac
	// Windows marks generators backed by a Windows toolkit.
	Windows
	// Linux marks generators backed by a Unix toolkit such as GTK.
	Linux
	// IOS marks generators backed by UIKit.
	IOS
	// Android marks generators backed by the Android view system.
	Android
)

var platformNames = []struct {
	flag Platform
	name string
}{
	{Desktop, "desktop"},
	{Mobile, "mobile"},
	{Mac, "mac"},
	{Windows, "windows"},
	{Linux, "linux"},
	{IOS, "ios"},
	{Android, "android"},
}

// Has reports whether every flag in f is set in p.
func (p Platform) Has(f Platform) bool {
	return p&f == f
}

func (p Platform) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	for _, n := range platformNames {
		if p.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
