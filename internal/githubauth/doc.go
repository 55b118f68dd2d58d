// Package githubauth locates a GitHub API token in the environment for the
// optional username lookup.
package githubauth
