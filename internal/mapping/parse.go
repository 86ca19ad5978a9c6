package mapping

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fjacquet/txtag/internal/tagerror"
)

// ParseRule splits one "prefix<sep>tag" line. The line must contain the
// separator exactly once and the tag must not be empty. An empty prefix is
// allowed and matches every description.
func ParseRule(line, sep string) (Rule, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	parts := strings.Split(line, sep)
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("expected exactly one %q separator, found %d", sep, len(parts)-1)
	}
	if parts[1] == "" {
		return Rule{}, fmt.Errorf("empty tag")
	}
	return Rule{Prefix: parts[0], Tag: parts[1]}, nil
}

// ParseRules builds a table from rule lines. Every line must be a rule, so a
// blank line is malformed too. The first malformed line aborts with a
// *tagerror.ConfigError and no table.
func ParseRules(lines []string, sep string) (*Table, error) {
	return parseLines("", lines, sep)
}

// ReadRules parses the text rule format from r. source names the input in
// error messages.
func ReadRules(source string, r io.Reader, sep string) (*Table, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &tagerror.ResourceError{Path: source, Op: "read", Err: err}
	}
	return parseLines(source, lines, sep)
}

func parseLines(source string, lines []string, sep string) (*Table, error) {
	rules := make([]Rule, 0, len(lines))
	for i, line := range lines {
		rule, err := ParseRule(strings.TrimSuffix(line, "\r"), sep)
		if err != nil {
			return nil, &tagerror.ConfigError{
				Source:  source,
				Line:    i + 1,
				Content: line,
				Reason:  err.Error(),
			}
		}
		rules = append(rules, rule)
	}
	return NewTable(rules), nil
}
