package counter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

const headerField = "URI"

// Table reads counts from a local file of "identity,count" lines.
//
// A line whose first field is "URI" is a header and skipped. Fields are
// split on commas with no quoting. Malformed lines are logged with their
// line number and skipped; only an unreadable file is an error.
type Table struct {
	path   string
	logger *log.Logger
}

// NewTable returns a Table reading path.
func NewTable(path string, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.Default()
	}
	return &Table{path: path, logger: logger}
}

func (t *Table) Backing() string   { return "csv" }
func (t *Table) Qualifier() string { return t.path }

// LookupCounts opens and parses the file.
func (t *Table) LookupCounts(ctx context.Context) (map[string]int, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTable(ctx, f, t.logger)
}

// ParseTable parses "identity,count" lines from r. For a repeated identity
// the last valid line wins.
func ParseTable(ctx context.Context, r io.Reader, logger *log.Logger) (map[string]int, error) {
	if logger == nil {
		logger = log.Default()
	}
	counts := make(map[string]int)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if strings.TrimSpace(fields[0]) == headerField {
			continue
		}
		uri, n, err := parseRow(fields)
		if err != nil {
			logger.Error("skipping count line", "line", line, "err", err)
			continue
		}
		counts[uri] = n
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read counts at line %d: %w", line+1, err)
	}
	return counts, nil
}

func parseRow(fields []string) (string, int, error) {
	uri := strings.TrimSpace(fields[0])
	if err := checkIdentity(uri); err != nil {
		return "", 0, err
	}
	if len(fields) < 2 {
		return "", 0, fmt.Errorf("no count for %s", uri)
	}
	raw := strings.TrimSpace(fields[1])
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "", 0, fmt.Errorf("count %q for %s is not an integer", raw, uri)
	}
	if n < 0 {
		return "", 0, fmt.Errorf("count %d for %s is negative", n, uri)
	}
	return uri, n, nil
}

func checkIdentity(uri string) error {
	if uri == "" {
		return fmt.Errorf("empty identity")
	}
	if strings.IndexFunc(uri, unicode.IsSpace) >= 0 {
		return fmt.Errorf("identity %q contains whitespace", uri)
	}
	u, err := url.Parse(uri)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("identity %q is not an absolute URI", uri)
	}
	return nil
}

var _ Source = (*Table)(nil)
