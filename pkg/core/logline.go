package core

import "strings"

// LogLine is a single monitor update: the whitespace-separated fields of one
// input line with the trailing suffix field already removed.
type LogLine struct {
	Source string   `json:"source"`  // file path, or "-" for stdin
	LineNo int      `json:"line_no"` // 1-based within Source
	Fields []string `json:"fields"`
}

// ParseLogLine tokenizes raw and drops its suffix field.
func ParseLogLine(source string, lineNo int, raw string) LogLine {
	return LogLine{
		Source: source,
		LineNo: lineNo,
		Fields: StripSuffix(Fields(raw)),
	}
}

// Fields splits s on runs of whitespace. Empty fields never appear in the
// result, so repeated spaces or tabs between columns are tolerated.
func Fields(s string) []string {
	return strings.Fields(s)
}

// StripSuffix drops the last field. Monitor output always ends each line
// with a status field that is not part of the name/value pair.
func StripSuffix(fields []string) []string {
	if len(fields) == 0 {
		return fields
	}
	return fields[:len(fields)-1]
}

// Field returns the field at index i, if the line has one.
func (l LogLine) Field(i int) (string, bool) {
	if i < 0 || i >= len(l.Fields) {
		return "", false
	}
	return l.Fields[i], true
}
