package node

import "github.com/pkg/xattr"

// listXattrs resolves extended attribute names for a path. Overridable so
// snapshot construction stays testable on hosts without xattr support.
// Unsupported platforms and failed queries both yield no value.
var listXattrs = func(path string) []string {
	if !xattr.XATTR_SUPPORTED {
		return nil
	}

	names, err := xattr.LList(path)
	if err != nil || len(names) == 0 {
		return nil
	}

	return names
}
