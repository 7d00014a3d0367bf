// Package webui embeds the browser-facing templates the clean server
// renders for non-JSON clients.
package webui

import "embed"

//go:embed *.tmpl.html
var Files embed.FS
