// Package pathutils resolves user-supplied directory arguments.
package pathutils
