// Package identity resolves the committer identity git would use in a working
// directory and derives a GitHub username from it.
//
// Resolver memoizes user.name and user.email per working directory in two
// independent DirectoryCache instances. Empty results are never cached, so a
// later call retries the lookup. GitHubUsernameLookup searches the GitHub API
// for the account that owns an email address.
package identity
