// Package fixation reads fixation lists: a header line followed by one
// "x,y" integer pair per line.
package fixation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"salmap/internal/heatmap"
)

var ErrOpen = errors.New("cannot open fixation list")

// Stats describes how the lines of a fixation list were consumed.
type Stats struct {
	Lines   int // data lines, header excluded
	Parsed  int
	Skipped int
}

// Read parses r. The first line is always discarded. Lines that are not
// exactly two comma separated integers are skipped and counted. Lines have
// no length limit.
func Read(r io.Reader) ([]heatmap.Point, Stats, error) {
	var (
		points []heatmap.Point
		stats  Stats
	)

	br := bufio.NewReader(r)
	first := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, stats, fmt.Errorf("failed to read fixation list: %w", err)
		}
		if line == "" && err != nil {
			break
		}

		if first {
			first = false
		} else {
			stats.Lines++
			if p, ok := parseLine(line); ok {
				points = append(points, p)
				stats.Parsed++
			} else {
				stats.Skipped++
			}
		}

		if err != nil {
			break
		}
	}

	return points, stats, nil
}

// ReadFile opens, reads and closes the fixation list at path.
func ReadFile(path string) ([]heatmap.Point, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
	}
	defer f.Close()

	return Read(f)
}

func parseLine(line string) (heatmap.Point, bool) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 2 {
		return heatmap.Point{}, false
	}

	x, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return heatmap.Point{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return heatmap.Point{}, false
	}

	return heatmap.Point{X: x, Y: y}, true
}
