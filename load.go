package main

import (
	"github.com/goccy/go-yaml"
	"github.com/marisvali/blastarena/arena"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func LoadYAML(fsys FS, filename string, v any) {
	data, err := fsys.ReadFile(filename)
	Check(err)
	if err != nil {
		return
	}
	Check(yaml.Unmarshal(data, v))
}

func LoadLevel(fsys FS, filename string) arena.Level {
	data, err := fsys.ReadFile(filename)
	Check(err)
	level, err := arena.LoadLevel(data)
	Check(err)
	return level
}

func (g *Gui) ConfigFile() string {
	if g.devModeEnabled {
		return "data/config-dev.yaml"
	}
	return "data/config.yaml"
}

func (g *Gui) LoadGuiData() {
	// Read from the disk over and over until a full read is possible.
	// This avoids crashing when a file is read while it is still being
	// written. Only useful when reading from the disk; the embedded files
	// either load on the first try or never.
	previousVal := CheckCrashes
	if g.FSys != &embeddedFiles {
		CheckCrashes = false
	}
	for {
		CheckFailed = nil
		LoadYAML(g.FSys, g.ConfigFile(), &g.Config)
		if CheckFailed == nil {
			g.level = LoadLevel(g.FSys, g.Config.Level)
		}
		if CheckFailed == nil {
			break
		}
	}
	CheckCrashes = previousVal

	g.defaultFont = NewFontFace(36)
	g.smallFont = NewFontFace(20)
}

func NewFontFace(size float64) font.Face {
	fontData, err := opentype.Parse(goregular.TTF)
	Check(err)

	face, err := opentype.NewFace(fontData, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingVertical,
	})
	Check(err)
	return face
}

// LevelFiles lists the level files available in fsys.
func LevelFiles(fsys FS) []string {
	return GetFiles(fsys, "data/levels", "*.yaml")
}
