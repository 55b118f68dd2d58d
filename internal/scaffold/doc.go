// Package scaffold generates new npm module projects.
//
// The npm command parses the module name, seeds prompt defaults from the git
// identity, collects answers, renders the embedded template catalog into
// <directory>/<repoName>, initializes a git repository, and installs
// dependencies. Rendering failures abort the run; repository initialization
// and installation failures are reported as warnings.
package scaffold
