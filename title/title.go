package title

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Namespace int

const (
	NamespaceMain Namespace = 0
	NamespaceFile Namespace = 6
)

func (ns Namespace) String() string {
	switch ns {
	case NamespaceFile:
		return "File"
	default:
		return ""
	}
}

// Maximum length of a database key in bytes.
const maxKeyLength = 255

// Characters that never appear in a valid title.
const illegalChars = "#<>[]|{}"

// Reference identifies a page by namespace and database key. The key uses
// underscores in place of spaces.
type Reference struct {
	Namespace Namespace
	DBKey     string
}

// Text returns the display form of the name, without namespace prefix.
func (r Reference) Text() string {
	return strings.ReplaceAll(r.DBKey, "_", " ")
}

// PrefixedText returns the display name including its namespace, e.g.
// "File:Sunset over lake.jpg".
func (r Reference) PrefixedText() string {
	prefix := r.Namespace.String()
	if prefix == "" {
		return r.Text()
	}
	return prefix + ":" + r.Text()
}

func (r Reference) String() string {
	return r.PrefixedText()
}

// MakeSafe normalizes user input into a reference within ns. It reports false
// if the text cannot name a valid page.
func MakeSafe(ns Namespace, text string) (Reference, bool) {
	name := strings.Join(strings.Fields(strings.ReplaceAll(text, "_", " ")), " ")

	if ns == NamespaceFile {
		name = stripFilePrefix(name)
	}

	if name == "" || len(name) > maxKeyLength {
		return Reference{}, false
	}

	for _, r := range name {
		if strings.ContainsRune(illegalChars, r) || unicode.IsControl(r) || r == utf8.RuneError {
			return Reference{}, false
		}
	}

	first, size := utf8.DecodeRuneInString(name)
	name = string(unicode.ToUpper(first)) + name[size:]

	return Reference{
		Namespace: ns,
		DBKey:     strings.ReplaceAll(name, " ", "_"),
	}, true
}

func stripFilePrefix(name string) string {
	for _, prefix := range []string{"file:", "image:"} {
		if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			return strings.TrimSpace(name[len(prefix):])
		}
	}
	return name
}
