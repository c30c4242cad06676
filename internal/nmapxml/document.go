package nmapxml

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ullaakut/nmap/v3"

	"github.com/anstrom/portmerge/internal/errors"
)

const (
	outputDirPerm  = 0750
	outputFilePerm = 0644
)

// DocumentResult is the outcome of loading one scan document: either a parsed
// run or the reason it could not be parsed.
type DocumentResult struct {
	Path string
	Run  *nmap.Run
	Err  error
}

// OK reports whether the document was parsed.
func (d DocumentResult) OK() bool {
	return d.Err == nil && d.Run != nil
}

// LoadDocument reads and parses the nmap XML document at path.
func LoadDocument(path string) DocumentResult {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from the configured scan directory
	if err != nil {
		return DocumentResult{Path: path, Err: err}
	}
	return ParseDocument(path, data)
}

// ParseDocument parses nmap XML content that was read from path.
func ParseDocument(path string, data []byte) DocumentResult {
	run := &nmap.Run{}
	if err := nmap.Parse(data, run); err != nil {
		return DocumentResult{Path: path, Err: err}
	}
	return DocumentResult{Path: path, Run: run}
}

// WriteDocument writes run to path as indented XML.
func WriteDocument(run *nmap.Run, path string) error {
	if run == nil {
		return errors.ErrOutputWrite(path, fmt.Errorf("nil document"))
	}

	data, err := xml.MarshalIndent(run, "", "  ")
	if err != nil {
		return errors.ErrOutputWrite(path, fmt.Errorf("encode XML: %w", err))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, outputDirPerm); err != nil {
			return errors.WrapSourceError(errors.CodeDirectoryCreate, "Failed to create output directory", dir, err)
		}
	}

	content := append([]byte(xml.Header), data...)
	content = append(content, '\n')
	if err := os.WriteFile(path, content, outputFilePerm); err != nil {
		return errors.ErrOutputWrite(path, err)
	}
	return nil
}
