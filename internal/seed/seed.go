// Package seed loads the initial trade records from YAML.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/efreitasn/tradestore/internal/domain"
	"github.com/efreitasn/tradestore/internal/service"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

// Importer stores a single seed record.
type Importer interface {
	Import(in service.TradeInput) (*domain.Trade, error)
}

// Default returns a reader over the built-in seed document.
func Default() io.Reader {
	return bytes.NewReader(defaultSeed)
}

// Parse decodes a YAML list of trades. Unknown keys are rejected.
func Parse(r io.Reader) ([]service.TradeInput, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var inputs []service.TradeInput
	if err := dec.Decode(&inputs); err != nil {
		if errors.Is(err, io.EOF) {
			return []service.TradeInput{}, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return inputs, nil
}

// Load parses r and imports every record, in document order. It stops at
// the first record that fails validation or collides with an existing
// tradeId, and returns the number of records imported.
func Load(r io.Reader, imp Importer) (int, error) {
	inputs, err := Parse(r)
	if err != nil {
		return 0, err
	}

	for i, in := range inputs {
		if _, err := imp.Import(in); err != nil {
			return i, fmt.Errorf("seed record %d: %w", i, err)
		}
	}
	return len(inputs), nil
}

// LoadFile loads seed records from the YAML file at path.
func LoadFile(path string, imp Importer) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return Load(f, imp)
}
