// Package naming normalizes user-supplied package names.
//
// Scoped npm names (@scope/name) are recognized and preserved, unscoped names
// are reduced to lowercase hyphenated slugs, and camel-cased identifiers are
// derived for use inside generated source files.
package naming
