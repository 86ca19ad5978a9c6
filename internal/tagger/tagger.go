// Package tagger runs a single sequential pass over a delimited file,
// tagging each data row and writing the transformed copy.
package tagger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/txtag/internal/classifier"
	"fjacquet/txtag/internal/fileutils"
	"fjacquet/txtag/internal/logging"
	"fjacquet/txtag/internal/mapping"
	"fjacquet/txtag/internal/tagerror"
)

// RowErrorPolicy decides what happens to a row missing the description column.
type RowErrorPolicy string

const (
	// AbortOnRowError stops the run at the first malformed row.
	AbortOnRowError RowErrorPolicy = "abort"
	// SkipOnRowError writes the row unchanged and carries on.
	SkipOnRowError RowErrorPolicy = "skip"
)

// ParseRowErrorPolicy accepts "abort", "skip" or "" (abort).
func ParseRowErrorPolicy(s string) (RowErrorPolicy, error) {
	switch RowErrorPolicy(s) {
	case "", AbortOnRowError:
		return AbortOnRowError, nil
	case SkipOnRowError:
		return SkipOnRowError, nil
	}
	return "", fmt.Errorf("unknown row error policy %q (want abort or skip)", s)
}

// DefaultDelimiter separates fields in input and output files.
const DefaultDelimiter = ","

// Options configure a run. Table may be nil when no mapping was given.
type Options struct {
	InputPath  string
	OutputPath string
	Table      *mapping.Table
	Column     int
	Delimiter  string
	OnRowError RowErrorPolicy
}

func (o Options) delimiter() string {
	if o.Delimiter == "" {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// Run tags InputPath into OutputPath. Both files are closed on every path;
// rows written before a failure stay on disk.
func Run(opts Options, logger logging.Logger) (summary Summary, err error) {
	log := logger.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: opts.InputPath},
		logging.Field{Key: logging.FieldOutputFile, Value: opts.OutputPath},
	)

	in, err := fileutils.OpenInput(opts.InputPath)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close input file")
		}
	}()

	out, err := fileutils.CreateOutput(opts.OutputPath)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &tagerror.ResourceError{Path: opts.OutputPath, Op: "close", Err: cerr}
		}
	}()

	log.Info("Tagging transactions",
		logging.Field{Key: logging.FieldCount, Value: opts.Table.Len()},
		logging.Field{Key: logging.FieldColumn, Value: opts.Column},
	)

	summary, err = Process(in, out, opts, log)
	if err != nil {
		var resErr *tagerror.ResourceError
		if errors.As(err, &resErr) && resErr.Path == "" {
			resErr.Path = pathForOp(resErr.Op, opts)
		}
		return summary, err
	}

	summary.LogSummary(log)
	return summary, nil
}

func pathForOp(op string, opts Options) string {
	if op == "read" {
		return opts.InputPath
	}
	return opts.OutputPath
}

// Process streams r to w. The first line is the header; every following line
// is a data row. Each output line ends with "\n".
func Process(r io.Reader, w io.Writer, opts Options, logger logging.Logger) (Summary, error) {
	delim := opts.delimiter()
	policy := opts.OnRowError
	if policy == "" {
		policy = AbortOnRowError
	}

	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	var (
		summary Summary
		rows    *classifier.Classifier
		lineNum int
	)

	for {
		line, rerr := reader.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			_ = writer.Flush()
			return summary, &tagerror.ResourceError{Op: "read", Err: rerr}
		}
		if line == "" && rerr != nil {
			break
		}
		lineNum++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		fields := classifier.Split(line, delim)

		var outFields []string
		if rows == nil {
			header := classifier.DeriveHeader(fields)
			if opts.Column >= header.ColumnCount {
				logger.Warn("Description column is beyond the header",
					logging.Field{Key: logging.FieldColumn, Value: opts.Column},
					logging.Field{Key: logging.FieldCount, Value: header.ColumnCount},
				)
			}
			rows = classifier.New(opts.Table, opts.Column, header)
			outFields = header.EmitHeader(fields)
		} else {
			summary.Total++
			res, err := rows.Classify(lineNum, fields)
			if err != nil {
				if policy != SkipOnRowError {
					if ferr := writer.Flush(); ferr != nil {
						logger.WithError(ferr).Warn("Failed to flush partial output")
					}
					return summary, err
				}
				logger.WithError(err).Warn("Row written without tag",
					logging.Field{Key: logging.FieldLine, Value: lineNum})
				summary.Skipped++
				outFields = fields
			} else {
				if res.Tagged {
					summary.Tagged++
					logger.Debug("Row tagged",
						logging.Field{Key: logging.FieldLine, Value: lineNum},
						logging.Field{Key: logging.FieldTag, Value: res.Tag},
					)
				}
				outFields = res.Fields
			}
		}

		if _, err := writer.WriteString(classifier.Join(outFields, delim) + "\n"); err != nil {
			return summary, &tagerror.ResourceError{Op: "write", Err: err}
		}
		if rerr != nil {
			break
		}
	}
	if err := writer.Flush(); err != nil {
		return summary, &tagerror.ResourceError{Op: "write", Err: err}
	}
	return summary, nil
}
