package naming

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	slugSeparatorConstant     = "-"
	identifierPrefixConstant  = "_"
	scopedNameSegmentCount    = 3
	scopedNameSegmentIndex    = 2
	scopedPackagePatternValue = `^@([^/]+)/([^/]+)$`
	packageNamePatternValue   = `^(?:@[a-z0-9-][a-z0-9._-]*/)?[a-z0-9-][a-z0-9._-]*$`
	packageNameMaximumLength  = 214
)

var (
	scopedPackagePattern     = regexp.MustCompile(scopedPackagePatternValue)
	packageNamePattern       = regexp.MustCompile(packageNamePatternValue)
	slugDisallowedCharacters = regexp.MustCompile(`[^a-z0-9]+`)
)

// reservedIdentifiers cannot name an exported function in strict-mode TypeScript.
var reservedIdentifiers = map[string]struct{}{
	"await": {}, "break": {}, "case": {}, "catch": {}, "class": {}, "const": {},
	"continue": {}, "debugger": {}, "default": {}, "delete": {}, "do": {},
	"else": {}, "enum": {}, "export": {}, "extends": {}, "false": {},
	"finally": {}, "for": {}, "function": {}, "if": {}, "implements": {},
	"import": {}, "in": {}, "instanceof": {}, "interface": {}, "let": {},
	"new": {}, "null": {}, "package": {}, "private": {}, "protected": {},
	"public": {}, "return": {}, "static": {}, "super": {}, "switch": {},
	"this": {}, "throw": {}, "true": {}, "try": {}, "typeof": {}, "var": {},
	"void": {}, "while": {}, "with": {}, "yield": {},
}

// ModuleName bundles the values derived from a raw package name.
type ModuleName struct {
	Raw       string
	IsScoped  bool
	RepoName  string
	Slug      string
	CamelName string
}

// Parse derives every naming field from the raw name.
func Parse(rawName string) ModuleName {
	repoName := RepoName(rawName)
	return ModuleName{
		Raw:       rawName,
		IsScoped:  IsScoped(rawName),
		RepoName:  repoName,
		Slug:      Slugify(rawName),
		CamelName: CamelCase(repoName),
	}
}

// IsScoped reports whether the name has the form @scope/name with two
// non-empty, slash-free segments.
func IsScoped(name string) bool {
	return scopedPackagePattern.MatchString(name)
}

// RepoName strips the @scope/ prefix from scoped names and returns other names unchanged.
func RepoName(name string) string {
	matches := scopedPackagePattern.FindStringSubmatch(name)
	if len(matches) != scopedNameSegmentCount {
		return name
	}
	return matches[scopedNameSegmentIndex]
}

// Slugify returns scoped names unchanged and converts everything else into a
// lowercase, hyphen-delimited slug.
func Slugify(name string) string {
	if IsScoped(name) {
		return name
	}
	lowered := strings.ToLower(stripDiacritics(name))
	hyphenated := slugDisallowedCharacters.ReplaceAllString(lowered, slugSeparatorConstant)
	return strings.Trim(hyphenated, slugSeparatorConstant)
}

// ValidPackageName reports whether name satisfies the npm registry rules for
// new packages: lowercase, URL-safe, no leading dot or underscore.
func ValidPackageName(name string) bool {
	return len(name) <= packageNameMaximumLength && packageNamePattern.MatchString(name)
}

// CamelCase joins the words of name into a TypeScript identifier, lowercasing
// the first word and title-casing the rest: "my-app" becomes "myApp" and
// "myAPIClient" becomes "myApiClient". Words break on separators and on case
// changes. A leading digit or a reserved word gets a "_" prefix. Names without
// letters or digits produce an empty string.
func CamelCase(name string) string {
	titleCaser := cases.Title(language.Und)
	lowerCaser := cases.Lower(language.Und)

	var builder strings.Builder
	for wordIndex, word := range splitWords(stripDiacritics(name)) {
		if wordIndex == 0 {
			builder.WriteString(lowerCaser.String(word))
			continue
		}
		builder.WriteString(titleCaser.String(word))
	}

	identifier := builder.String()
	if len(identifier) == 0 {
		return identifier
	}
	if _, reserved := reservedIdentifiers[identifier]; reserved {
		return identifierPrefixConstant + identifier
	}
	if firstRune := []rune(identifier)[0]; unicode.IsDigit(firstRune) {
		return identifierPrefixConstant + identifier
	}
	return identifier
}

func splitWords(name string) []string {
	segments := strings.FieldsFunc(name, func(character rune) bool {
		return !unicode.IsLetter(character) && !unicode.IsDigit(character)
	})

	words := make([]string, 0, len(segments))
	for _, segment := range segments {
		words = append(words, splitCaseBoundaries(segment)...)
	}
	return words
}

// splitCaseBoundaries breaks "fooBar" into foo/Bar and "APIClient" into API/Client.
func splitCaseBoundaries(segment string) []string {
	characters := []rune(segment)
	words := []string{}
	wordStart := 0
	for characterIndex := 1; characterIndex < len(characters); characterIndex++ {
		previous := characters[characterIndex-1]
		current := characters[characterIndex]
		lowerToUpper := (unicode.IsLower(previous) || unicode.IsDigit(previous)) && unicode.IsUpper(current)
		acronymEnd := unicode.IsUpper(previous) && unicode.IsUpper(current) &&
			characterIndex+1 < len(characters) && unicode.IsLower(characters[characterIndex+1])
		if lowerToUpper || acronymEnd {
			words = append(words, string(characters[wordStart:characterIndex]))
			wordStart = characterIndex
		}
	}
	return append(words, string(characters[wordStart:]))
}

func stripDiacritics(value string) string {
	diacriticRemover := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, transformError := transform.String(diacriticRemover, value)
	if transformError != nil {
		return value
	}
	return stripped
}
