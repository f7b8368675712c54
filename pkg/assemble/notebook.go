package assemble

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Notebook is an nbformat 4 document wrapping the assembled artifact as a
// single code cell between two markdown cells. The wrapper never alters the
// ordering or content produced by the assembler.
type Notebook struct {
	Cells         []any            `json:"cells"`
	Metadata      notebookMetadata `json:"metadata"`
	NBFormat      int              `json:"nbformat"`
	NBFormatMinor int              `json:"nbformat_minor"`
}

type notebookMetadata struct {
	Kernelspec kernelspec     `json:"kernelspec"`
	Pyfold     pyfoldMetadata `json:"pyfold"`
}

type kernelspec struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
	Name        string `json:"name"`
}

type pyfoldMetadata struct {
	RunID string `json:"run_id"`
}

type markdownCell struct {
	CellType string   `json:"cell_type"`
	Metadata struct{} `json:"metadata"`
	Source   []string `json:"source"`
}

type codeCell struct {
	CellType       string   `json:"cell_type"`
	Metadata       struct{} `json:"metadata"`
	Source         []string `json:"source"`
	ExecutionCount *int     `json:"execution_count"`
	Outputs        []any    `json:"outputs"`
}

// NewNotebook wraps the assembled artifact. The banner appears as the
// leading markdown cell and again, fenced, as the trailing cell; the
// artifact itself becomes the code cell, split into lines with newlines
// kept.
func NewNotebook(artifact, banner, runID string) *Notebook {
	trailer := append([]string{"```\n"}, splitKeepEnds(banner)...)
	trailer = append(trailer, "\n```\n")

	return &Notebook{
		Cells: []any{
			markdownCell{
				CellType: "markdown",
				Source:   []string{"## Notebook generated by pyfold\n"},
			},
			codeCell{
				CellType: "code",
				Source:   splitKeepEnds(artifact),
				Outputs:  []any{},
			},
			markdownCell{
				CellType: "markdown",
				Source:   trailer,
			},
		},
		Metadata: notebookMetadata{
			Kernelspec: kernelspec{
				DisplayName: "Python 3",
				Language:    "python",
				Name:        "python3",
			},
			Pyfold: pyfoldMetadata{RunID: runID},
		},
		NBFormat:      4,
		NBFormatMinor: 4,
	}
}

// WriteJSON encodes the notebook as indented JSON.
func (n *Notebook) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("encode notebook: %w", err)
	}
	return nil
}

// ExportNotebook writes the notebook to a file at path.
func ExportNotebook(n *Notebook, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return n.WriteJSON(f)
}

// splitKeepEnds splits text into lines, each retaining its trailing newline
// (the final line keeps none if the text does not end with one). This is the
// line shape nbformat expects for cell sources.
func splitKeepEnds(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
