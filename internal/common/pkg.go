package common

import "path"

// PkgAlias returns the default package name (last element) of an import
// path, or "" for an empty path.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}
