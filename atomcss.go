// Package atomcss compiles utility class names into one stylesheet.
//
// Class names are ":" separated tokens resolved against a style
// configuration: optional layer, media query and modifier tokens followed by
// an atom and its value, a named class, an alias or a CSS chunk.
//
//	md:hover:bg:$blue-500   →  @media (min-width: 768px) { .md\:hover\:bg\:\$blue-500:hover { ... } }
//	p:$4                    →  .p\:\$4 { padding: 1rem; }
//	animate:spin            →  also emits @keyframes spin
//
// # Building
//
// Build loads the style configuration, runs the registered extensions,
// scans source files for class names and writes the stylesheet:
//
//	result, err := atomcss.Build(atomcss.BuildOptions{
//		ConfigPath: "atomcss.config.yaml",
//		Include:    []string{"web/**/*.templ", "!web/vendor/**"},
//		Output:     "web/static/app.css",
//	})
//
// # Linting
//
// Lint reports class names in sources that do not resolve, and alias members
// that do not resolve, as golangci-lint style issues:
//
//	result, err := atomcss.Lint(atomcss.LintOptions{Paths: []string{"web/**/*.templ"}})
//	atomcss.WriteOutput(os.Stdout, result, atomcss.OutputIssues, report.Options{})
//
// The atomcss command in cmd/atomcss wraps both.
package atomcss
