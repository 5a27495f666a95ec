// Package web holds the static chat page compiled into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Pages returns the static page tree rooted at the directory holding index.html.
func Pages() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
