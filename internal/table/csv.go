package table

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// CSVOptions configures CSV loading. Zero values mean "detect".
type CSVOptions struct {
	Delimiter rune   // 0 = sniff from a sample, default ';'
	Encoding  string // "", "utf-8", "utf-8-sig", "latin1", "cp1252"
}

const sniffSample = 4096

var sniffDelimiters = []rune{';', '\t', ',', '|'}

// ReadCSV loads a CSV file into a Table, detecting delimiter and encoding
// when not forced, and skipping preamble lines that precede the header row.
func ReadCSV(path string, opts CSVOptions) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: read %s", path)
	}

	enc := detectEncoding(data, opts.Encoding)
	text, err := decode(data, enc)
	if err != nil {
		// Last resort for files that are neither UTF-8 nor clean cp1252.
		zap.L().Warn("table: encoding fallback to latin1",
			zap.String("path", path),
			zap.String("tried", enc),
		)
		enc = "latin1"
		text, err = decode(data, enc)
		if err != nil {
			return nil, eris.Wrapf(err, "table: decode %s", path)
		}
	}

	sep := opts.Delimiter
	if sep == 0 {
		sep = sniffDelimiter(text)
	}

	text = skipPreamble(text, sep)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sep
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // ragged rows tolerated

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "table: parse %s", path)
	}
	if len(records) == 0 {
		return nil, eris.Errorf("table: %s has no rows", path)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	zap.L().Info("table: csv loaded",
		zap.String("path", path),
		zap.String("sep", string(sep)),
		zap.String("encoding", enc),
		zap.Int("rows", len(records)-1),
	)
	return New(header, records[1:]), nil
}

// detectEncoding picks the charset for raw bytes. UTF-8 (with or without a
// BOM) wins whenever the bytes decode cleanly, even against a caller
// preference for latin1: Brazilian government datasets are frequently UTF-8
// mislabeled as latin1, and honoring the wrong label produces mojibake.
func detectEncoding(data []byte, preferred string) string {
	sample := data
	if len(sample) > 10000 {
		sample = sample[:10000]
	}

	utfClean := utf8.Valid(sample)
	hasBOM := bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	switch normalizeEncodingName(preferred) {
	case "utf8":
		return "utf-8"
	case "utf8sig":
		return "utf-8-sig"
	case "":
		// no preference
	default:
		if utfClean {
			if hasBOM {
				return "utf-8-sig"
			}
			return "utf-8"
		}
		return normalizeEncodingName(preferred)
	}

	if utfClean {
		if hasBOM {
			return "utf-8-sig"
		}
		return "utf-8"
	}
	return "cp1252"
}

func normalizeEncodingName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func decode(data []byte, enc string) (string, error) {
	switch enc {
	case "utf-8":
		return string(data), nil
	case "utf-8-sig":
		return string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})), nil
	case "latin1", "iso88591":
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		return string(out), err
	case "cp1252", "windows1252":
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		return string(out), err
	default:
		return "", eris.Errorf("table: unsupported encoding %q", enc)
	}
}

// sniffDelimiter picks the candidate delimiter with the most consistent
// per-line field count over a sample; ';' is the fallback, matching the
// predominant convention in the source files.
func sniffDelimiter(text string) rune {
	if len(text) > sniffSample {
		text = text[:sniffSample]
	}
	lines := nonEmptyLines(text, 10)
	if len(lines) == 0 {
		return ';'
	}

	best := ';'
	bestScore := 0
	for _, cand := range sniffDelimiters {
		counts := make(map[int]int)
		for _, line := range lines {
			counts[strings.Count(line, string(cand))]++
		}
		// Most lines agreeing on a nonzero count wins.
		for n, freq := range counts {
			if n > 0 && freq > bestScore {
				bestScore = freq
				best = cand
			}
		}
	}
	return best
}

func nonEmptyLines(text string, limit int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}

// skipPreamble drops banner lines before the header. ANAC exports lead with
// an "atualizado em" timestamp line that carries no delimiter.
func skipPreamble(text string, sep rune) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		lower := strings.ToLower(stripped)
		if strings.Contains(lower, "atualizado em") && !strings.ContainsRune(line, sep) {
			continue
		}
		if strings.ContainsRune(line, sep) {
			return strings.Join(lines[i:], "\n")
		}
	}
	return text
}
