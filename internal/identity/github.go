package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v67/github"
)

const (
	usernameNotFoundMessageConstant       = "no github account found for email"
	usernameNotFoundErrorTemplateConstant = "no github account found for email %s"
	invalidBaseURLErrorTemplateConstant   = "invalid github api base url %q: %w"
	emailSearchQueryTemplateConstant      = "%s in:email"
	githubBaseURLPathSeparatorConstant    = "/"
	usernameSearchResultsPerPageConstant  = 1
	emptyEmailLookupMessageConstant       = "email address is required for github lookup"
)

var (
	// ErrUsernameNotFound indicates the GitHub search returned no account for the email.
	ErrUsernameNotFound = errors.New(usernameNotFoundMessageConstant)
	// ErrEmptyEmail indicates LookupUsername was called without an email address.
	ErrEmptyEmail = errors.New(emptyEmailLookupMessageConstant)
)

// UsernameNotFoundError reports the email that produced no search results.
type UsernameNotFoundError struct {
	Email string
}

// Error describes the missing account.
func (notFoundError UsernameNotFoundError) Error() string {
	return fmt.Sprintf(usernameNotFoundErrorTemplateConstant, notFoundError.Email)
}

// Is reports whether target is ErrUsernameNotFound.
func (notFoundError UsernameNotFoundError) Is(target error) bool {
	return target == ErrUsernameNotFound
}

// GitHubLookupOptions configures GitHubUsernameLookup.
type GitHubLookupOptions struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

// GitHubUsernameLookup resolves GitHub logins through the user search API.
type GitHubUsernameLookup struct {
	client *github.Client
}

// NewGitHubUsernameLookup builds a lookup backed by go-github. An empty token
// issues unauthenticated requests; an empty BaseURL targets api.github.com.
func NewGitHubUsernameLookup(options GitHubLookupOptions) (*GitHubUsernameLookup, error) {
	client := github.NewClient(options.HTTPClient)
	if token := strings.TrimSpace(options.Token); len(token) > 0 {
		client = client.WithAuthToken(token)
	}

	trimmedBaseURL := strings.TrimSpace(options.BaseURL)
	if len(trimmedBaseURL) > 0 {
		if !strings.HasSuffix(trimmedBaseURL, githubBaseURLPathSeparatorConstant) {
			trimmedBaseURL += githubBaseURLPathSeparatorConstant
		}
		parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
		if parseError != nil {
			return nil, fmt.Errorf(invalidBaseURLErrorTemplateConstant, options.BaseURL, parseError)
		}
		client.BaseURL = parsedBaseURL
	}

	return &GitHubUsernameLookup{client: client}, nil
}

// LookupUsername returns the login of the first account whose public email
// matches. API and transport errors are returned unchanged.
func (lookup *GitHubUsernameLookup) LookupUsername(executionContext context.Context, email string) (string, error) {
	trimmedEmail := strings.TrimSpace(email)
	if len(trimmedEmail) == 0 {
		return "", ErrEmptyEmail
	}

	searchResult, _, searchError := lookup.client.Search.Users(
		executionContext,
		fmt.Sprintf(emailSearchQueryTemplateConstant, trimmedEmail),
		&github.SearchOptions{ListOptions: github.ListOptions{PerPage: usernameSearchResultsPerPageConstant}},
	)
	if searchError != nil {
		return "", searchError
	}

	for _, user := range searchResult.Users {
		if login := user.GetLogin(); len(login) > 0 {
			return login, nil
		}
	}
	return "", UsernameNotFoundError{Email: trimmedEmail}
}
