/*
Package exprfile reads batches of letter expressions.

A batch file holds one expression per line. Blank lines and lines starting
with '#' are skipped:

    # the default expression
    A + B || 8 & 0 || G - K
    (G - H) || (J ^ H)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package exprfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/lettermath/core"
)

// Line is an expression together with its line number, starting at 1.
type Line struct {
	No   int
	Text string
}

// MaxLineLength is the maximum length of a line in bytes.
const MaxLineLength = 64 * 1024

// Read reads the expressions of a batch.
func Read(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), MaxLineLength)
	no := 0
	for scanner.Scan() {
		no++
		text := scanner.Text()
		if no == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, Line{No: no, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return lines, core.WrapError(err, core.EINVALID, "cannot read expressions, line %d", no+1)
	}
	return lines, nil
}

// ReadFile reads the expressions of a batch file.
func ReadFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open batch file %s", path)
	}
	defer f.Close()
	return Read(f)
}
