// Package fallback supplies known-safe substitute resources for steps whose
// model-claimed resources failed grounding or URL validation. Every URL here
// is a hardcoded, stable, https documentation site: this is the pipeline's
// safety net and must never itself need validation.
package fallback

import "strings"

// Resource is a substitute learning resource. Substitutes are always free
// documentation, so callers materialize them with type "docs", is_free true
// and an empty source id.
type Resource struct {
	Title     string
	URL       string
	Publisher string
}

// rule maps a keyword set to a canned resource. Rules are evaluated in order;
// the first rule with any keyword present wins.
type rule struct {
	keywords []string
	resource Resource
}

var rules = []rule{
	{
		keywords: []string{"react", "jsx", "hooks", "next.js", "nextjs"},
		resource: Resource{Title: "React Documentation", URL: "https://react.dev/learn", Publisher: "React"},
	},
	{
		keywords: []string{"typescript", "ts "},
		resource: Resource{Title: "TypeScript Handbook", URL: "https://www.typescriptlang.org/docs/handbook/intro.html", Publisher: "TypeScript"},
	},
	{
		keywords: []string{"node", "express", "npm"},
		resource: Resource{Title: "Node.js Documentation", URL: "https://nodejs.org/en/learn", Publisher: "Node.js"},
	},
	{
		keywords: []string{"python", "django", "flask", "pandas"},
		resource: Resource{Title: "Python Tutorial", URL: "https://docs.python.org/3/tutorial/", Publisher: "Python Software Foundation"},
	},
	{
		keywords: []string{"golang", "go "},
		resource: Resource{Title: "Go Documentation", URL: "https://go.dev/doc/", Publisher: "Go"},
	},
	{
		keywords: []string{"sql", "database", "postgres", "postgresql"},
		resource: Resource{Title: "PostgreSQL Tutorial", URL: "https://www.postgresql.org/docs/current/tutorial.html", Publisher: "PostgreSQL"},
	},
	{
		keywords: []string{"git", "github", "version control"},
		resource: Resource{Title: "Git Book", URL: "https://git-scm.com/book/en/v2", Publisher: "Git"},
	},
	{
		keywords: []string{"docker", "container", "kubernetes"},
		resource: Resource{Title: "Docker Get Started", URL: "https://docs.docker.com/get-started/", Publisher: "Docker"},
	},
	{
		keywords: []string{"aws", "cloud"},
		resource: Resource{Title: "AWS Getting Started", URL: "https://aws.amazon.com/getting-started/", Publisher: "Amazon Web Services"},
	},
	{
		keywords: []string{"html", "css", "javascript", "web", "frontend", "dom"},
		resource: Resource{Title: "MDN Web Docs", URL: "https://developer.mozilla.org/en-US/docs/Web", Publisher: "MDN Web Docs"},
	},
}

// defaultResource is returned when no keyword rule matches.
var defaultResource = Resource{
	Title:     "MDN Web Docs",
	URL:       "https://developer.mozilla.org/en-US/docs/Web",
	Publisher: "MDN Web Docs",
}

// Pick returns a substitute resource for a step, chosen deterministically
// from the step's title and description.
func Pick(stepTitle, stepDescription string) Resource {
	haystack := strings.ToLower(stepTitle + " " + stepDescription)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(haystack, kw) {
				return r.resource
			}
		}
	}
	return defaultResource
}
