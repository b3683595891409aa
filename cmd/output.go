package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/s0up4200/testit/testit"
)

func validateOutput(format string) error {
	switch format {
	case "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be 'json' or 'yaml')", format)
	}
}

// writeValue renders a decoded JSON value. Raw bytes are written unchanged.
func writeValue(w io.Writer, format string, v any) error {
	if raw, ok := v.([]byte); ok {
		_, err := w.Write(raw)
		return err
	}

	var (
		out []byte
		err error
	)
	switch format {
	case "yaml":
		out, err = yaml.Marshal(v)
	default:
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	_, err = w.Write(out)
	return err
}

// writeResponse prints the body of a successful response and turns an
// error status into an error
func (a *app) writeResponse(w io.Writer, resp *testit.Response) error {
	if err := resp.Err(); err != nil {
		return err
	}
	if len(resp.Raw) == 0 {
		return nil
	}
	return writeValue(w, a.output, resp.Value())
}

// parseParams turns repeated key=value flags into query parameters.
// A key given more than once becomes a list.
func parseParams(pairs []string) (testit.Params, error) {
	params := testit.Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", pair)
		}
		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{existing, value}
		case []string:
			params[key] = append(existing, value)
		}
	}
	return params, nil
}
