// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"path/filepath"
	"strings"
)

const (
	extJPG = ".jpg"
	extSVG = ".svg"
)

// Ext returns the extension of path including the dot. A leading dot
// (".DS_Store") or a trailing dot ("name.") is not an extension.
func Ext(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// IsJPG reports whether path carries the .jpg extension in any case.
func IsJPG(path string) bool {
	return strings.EqualFold(Ext(path), extJPG)
}

func isSVG(path string) bool {
	return strings.EqualFold(Ext(path), extSVG)
}

// OutputPath replaces the extension of src with .jpg, or appends .jpg when
// src has none.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, Ext(src)) + extJPG
}
