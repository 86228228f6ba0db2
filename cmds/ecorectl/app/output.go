package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"
)

const (
	OUTPUT_TREE = "tree"
	OUTPUT_YAML = "yaml"
	OUTPUT_JSON = "json"
)

func NormalizeOutput(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func PrintStructured(w io.Writer, format string, elems any) error {
	var data []byte
	var err error

	switch format {
	case OUTPUT_JSON:
		data, err = json.Marshal(elems)
	case OUTPUT_YAML:
		data, err = yaml.Marshal(elems)
	default:
		return fmt.Errorf("invalid output format %q", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", strings.TrimRight(string(data), "\n"))
	return nil
}
