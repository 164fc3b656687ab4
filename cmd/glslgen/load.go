package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"glslgen/internal/ast"
)

// loadShader reads a descriptor from path, or from stdin for "-".
func loadShader(path string, stdin io.Reader) (*ast.Shader, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	sh, err := ast.Decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sh, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}
