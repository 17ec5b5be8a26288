package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/util"
	"gopkg.in/yaml.v2"
)

// FrontMatter holds the optional YAML header of a description sidecar.
type FrontMatter struct {
	Caption  string `yaml:"caption,omitempty"`
	Redirect bool   `yaml:"redirect,omitempty"`
}

// readSidecar splits a description file into its front matter and the page
// text. The caption, if any, is prepended to the text as a <randomcaption>
// line.
func readSidecar(source []byte) (FrontMatter, string, error) {
	fm := FrontMatter{}

	fmSource, body, err := findFrontMatterSource(source)
	if err != nil {
		return fm, "", fmt.Errorf("read front matter: %w", err)
	}

	if fmSource != nil {
		if err := yaml.Unmarshal(fmSource, &fm); err != nil {
			return fm, "", fmt.Errorf("parse YAML: %w", err)
		}
	}

	text := strings.TrimRight(strings.TrimLeft(string(body), "\r\n"), " \t\r\n")

	if fm.Caption != "" {
		text = "<randomcaption>" + fm.Caption + "</randomcaption>\n" + text
	}

	return fm, text, nil
}

func findFrontMatterSource(source []byte) ([]byte, []byte, error) {
	nSkipWhite := util.FirstNonSpacePosition(source)
	if nSkipWhite < 0 || !startsWithFrontMatterMarker(source[nSkipWhite:]) {
		return nil, source, nil
	}

	startPos := nSkipWhite + 3
	endPos, ok := findEndPos(source[startPos:])
	if !ok {
		return nil, source, fmt.Errorf("no front matter ending indicator")
	}
	endPos += startPos

	return source[startPos:endPos], source[endPos+3:], nil
}

// findEndPos locates the closing marker, which must start a line.
func findEndPos(source []byte) (int, bool) {
	for i := 0; i+3 <= len(source); i++ {
		if (i == 0 || source[i-1] == '\n') && startsWithFrontMatterMarker(source[i:]) {
			return i, true
		}
	}

	return 0, false
}

func startsWithFrontMatterMarker(source []byte) bool {
	return bytes.HasPrefix(source, []byte{'-', '-', '-'})
}
