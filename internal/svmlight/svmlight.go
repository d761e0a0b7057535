// Package svmlight parses the svmlight ranking format (http://svmlight.joachims.org/) into the
// parsed-instance contract spec.md §4.2 assumes: an iterator of (label, qid, dense feature
// vector) triples, blank and "#"-comment lines filtered, same-qid instances left contiguous in
// file order (spec.md §4.2 requires instances be grouped by query, not globally reordered).
//
//	<line>    .=. <label> qid:<qid> <fid>:<value> ... [# <comment>]
//	<label>   .=. <float>
//	<fid>     .=. <positive integer>
//	<value>   .=. <float>
package svmlight

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/lambdamart/internal/dataset"
)

// Load reads every instance out of r. A malformed record (bad label, missing/malformed qid,
// unparsable feature pair) is logged and skipped (spec.md §7.1: "parse errors for an individual
// line inside the upstream iterator may be logged and skipped"); only an I/O error reading the
// underlying stream aborts the whole load.
func Load(r io.Reader) ([]dataset.Instance, error) {
	scanner := bufio.NewScanner(r)
	// Feature lines for large ranking corpora routinely exceed bufio.Scanner's 64KiB default.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var instances []dataset.Instance
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if cut, _, found := strings.Cut(line, "#"); found {
			line = cut
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		inst, err := parseLine(line)
		if err != nil {
			klog.Errorf("svmlight: skipping line %d: %v", lineNo, err)
			continue
		}
		instances = append(instances, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading svmlight input")
	}
	return instances, nil
}

func parseLine(line string) (dataset.Instance, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return dataset.Instance{}, errors.Errorf("expected at least a label and a qid field, got %q", line)
	}

	label, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return dataset.Instance{}, errors.Wrapf(err, "invalid label %q", fields[0])
	}

	qid, err := parseQID(fields[1])
	if err != nil {
		return dataset.Instance{}, err
	}

	values, err := parseFeatures(fields[2:])
	if err != nil {
		return dataset.Instance{}, err
	}

	return dataset.NewInstance(label, qid, values), nil
}

func parseQID(field string) (uint64, error) {
	name, value, found := strings.Cut(field, ":")
	if !found || name != "qid" {
		return 0, errors.Errorf("expected qid:<id>, got %q", field)
	}
	qid, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid qid %q", field)
	}
	return qid, nil
}

// parseFeatures turns ["1:3.5", "4:-2"] into a dense vector indexed from 1, with unmentioned
// positions defaulting to 0 (spec.md §9's "value(fid) = 0 for any fid not present"). Feature ids
// need not arrive in increasing order, but must be positive integers.
func parseFeatures(fields []string) ([]float64, error) {
	type pair struct {
		fid   int
		value float64
	}
	pairs := make([]pair, 0, len(fields))
	maxFID := 0
	for _, field := range fields {
		idStr, valStr, found := strings.Cut(field, ":")
		if !found {
			return nil, errors.Errorf("invalid feature pair %q", field)
		}
		fid, err := strconv.Atoi(idStr)
		if err != nil || fid < 1 {
			return nil, errors.Errorf("invalid feature id in %q", field)
		}
		value, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid feature value in %q", field)
		}
		pairs = append(pairs, pair{fid: fid, value: value})
		if fid > maxFID {
			maxFID = fid
		}
	}

	values := make([]float64, maxFID)
	for _, p := range pairs {
		values[p.fid-1] = p.value
	}
	return values, nil
}
