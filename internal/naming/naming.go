package naming

import (
	"go/token"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// commonInitialisms mirrors the golint list so generated names read like hand-written Go.
var commonInitialisms = map[string]bool{
	"ACL": true, "API": true, "ASCII": true, "CPU": true, "CSS": true, "DNS": true,
	"EOF": true, "GUID": true, "HTML": true, "HTTP": true, "HTTPS": true, "ID": true,
	"IP": true, "JSON": true, "LHS": true, "QPS": true, "RAM": true, "RHS": true,
	"RPC": true, "SLA": true, "SMTP": true, "SQL": true, "SSH": true, "TCP": true,
	"TLS": true, "TTL": true, "UDP": true, "UI": true, "UID": true, "UUID": true,
	"URI": true, "URL": true, "UTF8": true, "VM": true, "XML": true, "XMPP": true,
	"XSRF": true, "XSS": true,
}

var (
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
	dotVersion   = regexp.MustCompile(`\.v[0-9]+$`)
)

// Words splits an identifier on separators, case changes and acronym boundaries.
func Words(name string) []string {
	var (
		words []string
		cur   []rune
		runes = []rune(name)
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Pascal converts name to an exported Go identifier.
func Pascal(name string) string {
	var b strings.Builder
	for _, w := range Words(name) {
		if up := strings.ToUpper(w); commonInitialisms[up] {
			b.WriteString(up)
			continue
		}
		r := []rune(w)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// LowerCamel converts name to an unexported Go identifier that is never a keyword.
func LowerCamel(name string) string {
	words := Words(name)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	first := words[0]
	if commonInitialisms[strings.ToUpper(first)] {
		b.WriteString(strings.ToLower(first))
	} else {
		r := []rune(first)
		b.WriteRune(unicode.ToLower(r[0]))
		b.WriteString(string(r[1:]))
	}
	b.WriteString(Pascal(strings.Join(words[1:], "_")))
	return SafeIdent(b.String())
}

// SafeIdent appends an underscore to Go keywords and predeclared identifiers.
func SafeIdent(name string) string {
	if token.IsKeyword(name) || predeclared[name] {
		return name + "_"
	}
	return name
}

var predeclared = map[string]bool{
	"any": true, "bool": true, "byte": true, "error": true, "string": true, "int": true,
	"len": true, "cap": true, "new": true, "make": true, "nil": true, "true": true,
	"false": true, "append": true, "copy": true, "delete": true, "panic": true,
}

// Plural pluralizes the last word of an identifier.
func Plural(name string) string {
	return inflection.Plural(name)
}

// PackageName guesses the declared name of the package at importPath, skipping
// a trailing major version element.
func PackageName(importPath string) string {
	base := path.Base(importPath)
	if majorVersion.MatchString(base) {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}
	base = dotVersion.ReplaceAllString(base, "")
	base = strings.TrimPrefix(base, "go-")
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, base)
}
