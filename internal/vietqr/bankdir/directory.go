// Package bankdir maps bank codes and names to the six digit BIN assigned by
// the NAPAS interbank switch.
package bankdir

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrBINNotFound    = errors.New("bank BIN not found")
	ErrInvalidBIN     = errors.New("BIN must be six digits")
	ErrMissingCode    = errors.New("bank code is required")
	ErrConflictKey    = errors.New("key maps to more than one BIN")
	ErrEmptyDirectory = errors.New("bank directory is empty")
)

//go:embed banks.yaml
var embedded []byte

var defaultDirectory = mustParse(embedded)

type Bank struct {
	Code      string   `yaml:"code" json:"code"`
	BIN       string   `yaml:"bin" json:"bin"`
	ShortName string   `yaml:"short_name" json:"short_name"`
	Name      string   `yaml:"name" json:"name"`
	Aliases   []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

type file struct {
	Banks []Bank `yaml:"banks"`
}

// Directory is read-only after construction and safe for concurrent use.
type Directory struct {
	banks []Bank
	index map[string]int
}

// Default returns the directory compiled into the binary.
func Default() *Directory {
	return defaultDirectory
}

func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank directory: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Directory, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bank directory: %w", err)
	}
	if len(f.Banks) == 0 {
		return nil, ErrEmptyDirectory
	}

	d := &Directory{
		banks: make([]Bank, 0, len(f.Banks)),
		index: make(map[string]int, len(f.Banks)*4),
	}
	for _, b := range f.Banks {
		if err := d.add(b); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func mustParse(data []byte) *Directory {
	d, err := Parse(data)
	if err != nil {
		panic("bankdir: embedded table: " + err.Error())
	}
	return d
}

func (d *Directory) add(b Bank) error {
	b.Code = strings.TrimSpace(b.Code)
	b.BIN = strings.TrimSpace(b.BIN)
	if b.Code == "" {
		return fmt.Errorf("%w (bin %q)", ErrMissingCode, b.BIN)
	}
	if !isBIN(b.BIN) {
		return fmt.Errorf("%w: bank %s has %q", ErrInvalidBIN, b.Code, b.BIN)
	}

	pos := len(d.banks)
	d.banks = append(d.banks, b)

	keys := append([]string{b.Code, b.BIN, b.ShortName, b.Name}, b.Aliases...)
	for _, k := range keys {
		k = key(k)
		if k == "" {
			continue
		}
		if prev, ok := d.index[k]; ok && d.banks[prev].BIN != b.BIN {
			return fmt.Errorf("%w: %q (%s, %s)", ErrConflictKey, k, d.banks[prev].BIN, b.BIN)
		}
		if _, ok := d.index[k]; !ok {
			d.index[k] = pos
		}
	}
	return nil
}

// Lookup resolves code first and falls back to name. Both are matched
// case-insensitively against codes, short names, full names, aliases and
// BINs.
func (d *Directory) Lookup(code, name string) (Bank, error) {
	for _, k := range []string{code, name} {
		k = key(k)
		if k == "" {
			continue
		}
		if i, ok := d.index[k]; ok {
			return d.banks[i], nil
		}
	}
	return Bank{}, fmt.Errorf("%w: code %q, name %q", ErrBINNotFound, code, name)
}

func (d *Directory) BIN(code, name string) (string, error) {
	b, err := d.Lookup(code, name)
	if err != nil {
		return "", err
	}
	return b.BIN, nil
}

// Banks returns a copy of all entries in declaration order.
func (d *Directory) Banks() []Bank {
	out := make([]Bank, len(d.banks))
	copy(out, d.banks)
	return out
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isBIN(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
