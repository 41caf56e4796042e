package main

import (
	"io/fs"
	"os"
)

// FS groups together the filesystem interfaces that are common between
// embed.FS and what os.DirFS() returns. This way the code that reads data from
// disk can use a FS object and thus work the same if the files are embedded
// or not.
type FS interface {
	fs.FS
	fs.ReadFileFS
	fs.ReadDirFS
}

// DataFS returns the working directory if it has a data folder, so that
// config and levels can be edited without rebuilding. Otherwise it returns
// the files embedded in the executable.
func DataFS() FS {
	dir := os.DirFS(".").(FS)
	if FileExists(dir, "data") {
		return dir
	}
	return &embeddedFiles
}
