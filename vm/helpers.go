package vm

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnpairedDigit = errors.New("odd number of digits, last opcode has no parameter")

// LoadFile reads a program listing. Every ASCII decimal digit is
// significant; letters, punctuation and whitespace are commentary.
func LoadFile(name string, r io.Reader) (*Program, error) {
	br := bufio.NewReader(r)
	var digits []Digit
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if c >= '0' && c <= '9' {
			digits = append(digits, Digit(c-'0'))
		}
	}
	return NewProgram(name, digits)
}

func CompilePath(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFile(filepath.Base(path), f)
}

func CompileLiteral(src string) (*Program, error) {
	return LoadFile("literal", strings.NewReader(src))
}
