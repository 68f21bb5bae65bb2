// Package scaffold provides embedded front-matter stub templates for the
// inkpress CLI's new-content command.
package scaffold

import "embed"

// Templates contains the content file stubs.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS
