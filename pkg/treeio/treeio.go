package treeio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/syntree/pkg/forest"
)

// Marshal converts a forest to indented JSON bytes.
func Marshal(f *forest.Forest) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(f, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a new forest.
func Unmarshal(data []byte) (*forest.Forest, error) {
	return readFrom(bytes.NewReader(data))
}

// WriteFile writes a forest to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(f *forest.Forest, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return writeTo(f, file)
}

// Write writes a forest as JSON to an io.Writer.
func Write(f *forest.Forest, w io.Writer) error {
	return writeTo(f, w)
}

// ReadFile reads a JSON file and returns the decoded forest.
func ReadFile(path string) (*forest.Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return readFrom(file)
}

// Read decodes a JSON forest from an io.Reader.
func Read(r io.Reader) (*forest.Forest, error) {
	return readFrom(r)
}

func writeTo(f *forest.Forest, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromForest(f)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*forest.Forest, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToForest(doc)
}
