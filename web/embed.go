package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// Static returns the frontend assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
