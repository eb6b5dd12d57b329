package helper

import (
	"regexp"
	"strings"
)

var (
	tplBlockRe = regexp.MustCompile(`(?s)\{\{#([a-zA-Z0-9_.]+)\}\}(.*?)\{\{/([a-zA-Z0-9_.]+)\}\}`)
	tplTokenRe = regexp.MustCompile(`\{\{([a-zA-Z0-9_.]+)\}\}`)
)

// RenderTemplate substitutes {{key}} tokens and resolves {{#key}}...{{/key}}
// conditional blocks: a block body is kept iff the key's value is truthy
// (non-empty, not "false", not "0"). Unknown tokens render as empty strings.
func RenderTemplate(tpl string, vars map[string]string) string {
	out := tplBlockRe.ReplaceAllStringFunc(tpl, func(m string) string {
		sub := tplBlockRe.FindStringSubmatch(m)
		open, body, closing := sub[1], sub[2], sub[3]
		if open != closing {
			// mismatched block markers are left as-is
			return m
		}
		if truthy(vars[open]) {
			return body
		}
		return ""
	})

	return tplTokenRe.ReplaceAllStringFunc(out, func(m string) string {
		key := tplTokenRe.FindStringSubmatch(m)[1]
		return vars[key]
	})
}

func truthy(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	return s != "" && s != "false" && s != "0"
}
