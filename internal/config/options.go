package config

import (
	"fmt"
	"strings"
)

// Format is one of the closed set of digest renderers.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatTree     Format = "tree"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatXML      Format = "xml"
)

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatMarkdown, FormatTree, FormatCSV, FormatHTML, FormatXML}
}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range Formats() {
		if f == name {
			return f, nil
		}
	}
	return "", &UnknownFormatError{Value: s}
}

// UnknownFormatError is returned for an output format outside the supported set.
type UnknownFormatError struct {
	Value string
}

func (e *UnknownFormatError) Error() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return fmt.Sprintf("unknown output format %q (expected one of %s)", e.Value, strings.Join(names, ", "))
}

// BinaryAction controls what happens to files classified as binary.
type BinaryAction string

const (
	BinarySkip    BinaryAction = "skip"
	BinaryInclude BinaryAction = "include"
	BinaryHexdump BinaryAction = "hexdump"
)

// SortKey selects the discovery ordering.
type SortKey string

const (
	SortByPath      SortKey = "path"
	SortBySize      SortKey = "size"
	SortByExtension SortKey = "extension"
	SortByModified  SortKey = "modified"
)

// SortDirection is either ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// GroupingMode selects the key records are clustered by before rendering.
type GroupingMode string

const (
	GroupNone      GroupingMode = "none"
	GroupExtension GroupingMode = "extension"
	GroupDirectory GroupingMode = "directory"
	GroupLanguage  GroupingMode = "language"
)
