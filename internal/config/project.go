package config

import (
	"encoding/xml"
	"fmt"
	"os"
)

// ProjectFile is the thin XML shape backing spec §6's
// initProject(cfgPath) → projectHandle: a list of components, each
// naming its member files. Build-system concerns (compiler flags,
// dependency graphs) are out of scope per spec §1 — this loader exists
// only so the CLI has a real entry point.
type ProjectFile struct {
	XMLName    xml.Name         `xml:"Project"`
	Components []ComponentEntry `xml:"Component"`
}

// ComponentEntry names one component and its constituent files, in the
// order they should be lexed/preprocessed/parsed (spec §3 "Project
// hierarchy").
type ComponentEntry struct {
	Name  string   `xml:"name,attr"`
	Files []string `xml:"File"`
}

// LoadProject reads and parses a project/component declaration file.
func LoadProject(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", path, err)
	}
	var pf ProjectFile
	if err := xml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing project file %s: %w", path, err)
	}
	return &pf, nil
}
