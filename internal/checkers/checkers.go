// Package checkers provides quicktest checkers shared across package tests.
package checkers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

// JSONPathEquals returns a checker asserting that the JSON document given as
// the obtained value (string or []byte) holds want at path, e.g.
//
//	c.Assert(text, checkers.JSONPathEquals("$.total"), float64(1))
//
// Numbers decode as float64, objects as map[string]any and arrays as []any.
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

type jsonPathChecker struct {
	path string
}

// ArgNames implements qt.Checker.
func (*jsonPathChecker) ArgNames() []string {
	return []string{"got", "want"}
}

// Check implements qt.Checker.
func (c *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var data []byte
	switch v := got.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return qt.BadCheckf("got value must be a string or []byte, not %T", got)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}

	value, err := jsonpath.Read(doc, c.path)
	if err != nil {
		note("path", c.path)
		return fmt.Errorf("cannot read JSON path: %w", err)
	}

	if !reflect.DeepEqual(value, args[0]) {
		note("path", c.path)
		note("value at path", value)
		return errors.New("value at path does not match")
	}
	return nil
}
