// Package save encodes a whole simulation state as a printable string:
// base64 of gzipped msgpack.
package save

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/milk9111/flightsim/game"
)

var ErrEmpty = errors.New("save: empty data")

func Encode(s *game.State) (string, error) {
	var buf bytes.Buffer
	b64 := base64.NewEncoder(base64.StdEncoding, &buf)
	zw := gzip.NewWriter(b64)

	enc := msgpack.NewEncoder(zw)
	enc.UseCompactInts(true)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("save: encode: %w", err)
	}
	if err := multierr.Combine(zw.Close(), b64.Close()); err != nil {
		return "", fmt.Errorf("save: flush: %w", err)
	}
	return buf.String(), nil
}

// Decode parses data produced by Encode and initialises the result.
func Decode(data string) (*game.State, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, ErrEmpty
	}
	zr, err := gzip.NewReader(base64.NewDecoder(base64.StdEncoding, strings.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("save: decompress: %w", err)
	}
	defer zr.Close()

	s := new(game.State)
	if err := msgpack.NewDecoder(zr).Decode(s); err != nil {
		return nil, fmt.Errorf("save: decode: %w", err)
	}
	s.Init()
	return s, nil
}

// Restore decodes data, logging and falling back to fallback() on failure.
func Restore(data string, fallback func() *game.State, log *zap.Logger) *game.State {
	s, err := Decode(data)
	if err == nil {
		return s
	}
	if log != nil && !errors.Is(err, ErrEmpty) {
		log.Warn("restore failed, starting fresh", zap.Error(err))
	}
	return fallback()
}

func WriteFile(path string, s *game.State) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("save: write %s: %w", path, err)
	}
	return nil
}

// ReadFile returns the saved data at path. A missing file reads as empty.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("save: open %s: %w", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("save: read %s: %w", path, err)
	}
	return string(data), nil
}
