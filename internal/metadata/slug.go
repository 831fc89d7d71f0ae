package metadata

import (
	"path"
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s, collapses every run of characters outside [a-z0-9]
// into a single hyphen and trims leading and trailing hyphens.
func Slug(s string) string {
	s = strings.ToLower(s)
	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FileSlug derives a slug from a file name, dropping the source extension.
func FileSlug(name, ext string) string {
	if ext != "" && len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
		name = name[:len(name)-len(ext)]
	}
	return Slug(name)
}

// OutputPath joins the essays directory, the slugged category path and the
// document slug into a slash-separated path relative to the docs directory.
func OutputPath(essaysDir, topCategory, subCategory, slug string) string {
	parts := []string{essaysDir, Slug(topCategory)}
	if subCategory != "" {
		parts = append(parts, Slug(subCategory))
	}
	parts = append(parts, slug+".md")
	return path.Join(parts...)
}
