package bridge

// excludedKeywords are lexical keywords that the direct-completion
// source produces but that are not useful as top-level suggestions.
// Built once, read-only thereafter.
var excludedKeywords = map[string]struct{}{
	"abstract":  {},
	"async":     {},
	"await":     {},
	"declare":   {},
	"export":    {},
	"from":      {},
	"import":    {},
	"infer":     {},
	"is":        {},
	"keyof":     {},
	"module":    {},
	"namespace": {},
	"readonly":  {},
	"satisfies": {},
	"type":      {},
}

// excluded reports whether a completion label must never appear in the
// merged list.
func excluded(name string) bool {
	_, ok := excludedKeywords[name]
	return ok
}
