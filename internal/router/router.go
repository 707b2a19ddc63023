// Package router resolves method+path pairs to handler identifiers without
// pulling in a web framework. Route tables are ordered slices, so matching
// precedence is reproducible: exact match first, then parametrized patterns,
// then literal-prefix fallback, each tier walked in registration order.
package router

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([^/{}]+)\}`)

type route struct {
	pattern string
	handler string
	re      *regexp.Regexp // nil for literal routes
	params  []string       // placeholder names in encounter order
}

// Match is the result of a successful resolution.
type Match struct {
	Handler     string
	PathParams  map[string]string
	QueryParams map[string]string
}

// Router holds one ordered route table per HTTP method. It is built once at
// startup and read-only afterwards; it never writes responses itself.
type Router struct {
	tables map[string][]route
}

func New() *Router {
	return &Router{tables: make(map[string][]route)}
}

// Handle registers a pattern for a method. Patterns may contain {name}
// placeholders, each matching exactly one path segment.
func (r *Router) Handle(method, pattern, handlerID string) {
	rt := route{pattern: pattern, handler: handlerID}
	if strings.Contains(pattern, "{") {
		rt.re, rt.params = compilePattern(pattern)
	}
	r.tables[method] = append(r.tables[method], rt)
}

// compilePattern turns "/api/images/{filename}" into an anchored regexp with
// one "([^/]+)" capture per placeholder. Literal parts are quoted so dots in
// patterns stay literal.
func compilePattern(pattern string) (*regexp.Regexp, []string) {
	var params []string
	var sb strings.Builder
	sb.WriteString("^")

	last := 0
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(pattern, -1) {
		sb.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		sb.WriteString(`([^/]+)`)
		params = append(params, pattern[loc[2]:loc[3]])
		last = loc[1]
	}
	sb.WriteString(regexp.QuoteMeta(pattern[last:]))
	sb.WriteString("$")

	return regexp.MustCompile(sb.String()), params
}

// Resolve maps a method and raw request path (query string included) to a
// handler identifier plus extracted path and query parameters. The boolean is
// false when no route matches.
func (r *Router) Resolve(method, rawPath string) (Match, bool) {
	path, query, _ := strings.Cut(rawPath, "?")

	m := Match{
		PathParams:  map[string]string{},
		QueryParams: parseQuery(query),
	}

	table := r.tables[method]

	for _, rt := range table {
		if rt.re == nil && rt.pattern == path {
			m.Handler = rt.handler
			return m, true
		}
	}

	for _, rt := range table {
		if rt.re == nil {
			continue
		}
		groups := rt.re.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		for i, name := range rt.params {
			m.PathParams[name] = groups[i+1]
		}
		m.Handler = rt.handler
		return m, true
	}

	for _, rt := range table {
		if rt.re == nil && strings.HasPrefix(path, rt.pattern) {
			m.Handler = rt.handler
			return m, true
		}
	}

	return Match{}, false
}

// parseQuery splits "a=1&b=2" into a map. A key given twice resolves to its
// last occurrence; pairs without "=" are dropped.
func parseQuery(query string) map[string]string {
	params := map[string]string{}
	if query == "" {
		return params
	}
	for _, pair := range strings.Split(query, "&") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		params[key] = value
	}
	return params
}
