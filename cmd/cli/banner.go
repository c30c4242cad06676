package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/anstrom/portmerge/internal/config"
)

const (
	authorLine = "作者： anstrom"
	repoURL    = "https://github.com/anstrom/portmerge"
)

var bannerArt = []string{
	"                  _",
	" _ __   ___  _ __| |_ _ __ ___   ___ _ __ __ _  ___",
	"| '_ \\ / _ \\| '__| __| '_ ` _ \\ / _ \\ '__/ _` |/ _ \\",
	"| |_) | (_) | |  | |_| | | | | |  __/ | | (_| |  __/",
	"| .__/ \\___/|_|   \\__|_| |_| |_|\\___|_|  \\__, |\\___|",
	"|_|                                      |___/",
}

type bannerStyle struct {
	Unicode bool
	Color   bool
	Margin  int
	Padding int
}

type boxChars struct {
	topLeft, topRight, bottomLeft, bottomRight, horizontal, vertical string
}

var (
	unicodeBox = boxChars{"┌", "┐", "└", "┘", "─", "│"}
	asciiBox   = boxChars{"+", "+", "+", "+", "-", "|"}
)

// palette holds the colors of one run. Each color is switched on or off on
// its own, so the fatih/color package setting is left alone.
type palette struct {
	frame, title, author, link   *color.Color
	success, info, warn, failed *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		frame:   color.New(color.FgCyan),
		title:   color.New(color.FgCyan, color.Bold),
		author:  color.New(color.FgGreen, color.Bold),
		link:    color.New(color.FgYellow),
		success: color.New(color.FgGreen, color.Bold),
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		failed:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.frame, p.title, p.author, p.link, p.success, p.info, p.warn, p.failed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// bannerLines returns the uncolored banner content.
func bannerLines() []string {
	lines := make([]string, 0, len(bannerArt)+4)
	lines = append(lines, bannerArt...)
	lines = append(lines, "", authorLine, repoURL, "version "+version)
	return lines
}

// printBanner draws the banner box. Widths are measured in terminal cells,
// so wide characters keep the right border aligned.
func printBanner(w io.Writer, style bannerStyle) {
	box := asciiBox
	if style.Unicode {
		box = unicodeBox
	}
	pad := max(style.Padding, 0)
	margin := strings.Repeat(" ", max(style.Margin, 0))

	lines := bannerLines()
	content := 0
	for _, line := range lines {
		content = max(content, runewidth.StringWidth(line))
	}

	pal := newPalette(style.Color)
	horizontal := strings.Repeat(box.horizontal, content+2*pad)
	frame := func(s string) string {
		if style.Unicode {
			return pal.frame.Sprint(s)
		}
		return s
	}
	bar := pal.frame.Sprint(box.vertical)

	fmt.Fprintln(w, margin+frame(box.topLeft+horizontal+box.topRight))
	for _, line := range lines {
		fill := strings.Repeat(" ", content-runewidth.StringWidth(line))
		inner := strings.Repeat(" ", pad)
		fmt.Fprintln(w, margin+bar+inner+pal.bannerLine(line)+fill+inner+bar)
	}
	fmt.Fprintln(w, margin+frame(box.bottomLeft+horizontal+box.bottomRight))
}

func (p palette) bannerLine(line string) string {
	switch {
	case strings.TrimSpace(line) == "":
		return line
	case line == authorLine:
		return p.author.Sprint(line)
	case strings.HasPrefix(line, "http"), strings.HasPrefix(line, "version"):
		return p.link.Sprint(line)
	default:
		return p.title.Sprint(line)
	}
}

// colorEnabled resolves a color mode; auto colors only terminals.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
