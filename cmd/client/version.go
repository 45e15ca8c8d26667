package main

import "runtime/debug"

// buildVersion reports the short commit this binary was built from, or "dev"
// for builds without VCS stamping (go run, tests).
func buildVersion() (commit string, modified bool) {
	commit = "dev"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) >= 7 {
				commit = s.Value[:7]
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return commit, modified
}
