package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrNoFont reports that no usable TTF could be located. gopdf bundles no
// fonts, so without one the PDF engine is effectively unavailable and
// exports degrade to the PNG+CSV mode.
var ErrNoFont = errors.New("no usable TTF font found")

// fontCandidates lists well-known TTF locations per platform.
func fontCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		win := os.Getenv("WINDIR")
		if win == "" {
			win = `C:\Windows`
		}
		return []string{
			filepath.Join(win, "Fonts", "arial.ttf"),
			filepath.Join(win, "Fonts", "segoeui.ttf"),
			filepath.Join(win, "Fonts", "tahoma.ttf"),
		}
	case "darwin":
		return []string{
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			"/System/Library/Fonts/Supplemental/Verdana.ttf",
			"/Library/Fonts/Arial.ttf",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/TTF/DejaVuSans.ttf",
			"/usr/share/fonts/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		}
	}
}

// FindFont returns the TTF to embed in PDFs: the configured override when
// set, otherwise the first probe hit. A configured path that does not
// exist is not silently replaced by a probe; the user asked for that font.
func FindFont(override string) (string, error) {
	if override != "" {
		if fileExists(override) {
			return override, nil
		}
		return "", fmt.Errorf("configured font %s: %w", override, ErrNoFont)
	}
	for _, p := range fontCandidates() {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", ErrNoFont
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
