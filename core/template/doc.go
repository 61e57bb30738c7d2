// Package template renders HTML files by plain string substitution.
//
// Given templates/hello.html containing "<h1>Hello {{name}}</h1>":
//
//	tpl := template.New("templates")
//	out, err := tpl.Render("hello.html", map[string]any{"name": "Ada"})
//	// out == "<h1>Hello Ada</h1>"
//
// Values are inserted verbatim. Escape untrusted input before passing it in.
package template
