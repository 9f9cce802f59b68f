package region

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quoteReplacer = strings.NewReplacer("’", "'", "‘", "'", "`", "'", "´", "'")

// Key folds a region name into its lookup key: diacritics removed,
// typographic quotes normalized, lower-cased, whitespace collapsed.
//
//	Key("Ñuble")      == "nuble"
//	Key("O’Higgins")  == "o'higgins"
//	Key(" Los  Ríos") == "los rios"
func Key(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = quoteReplacer.Replace(folded)
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}
