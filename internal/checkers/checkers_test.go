package checkers_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/phonebook/internal/checkers"
)

func TestJSONPathEquals_HappyPath(t *testing.T) {
	c := qt.New(t)

	doc := `{"total": 2, "contacts": [{"name": "Ana", "email": null}, {"name": "Bob", "email": "bob@x.com"}]}`

	c.Assert(doc, checkers.JSONPathEquals("$.total"), float64(2))
	c.Assert(doc, checkers.JSONPathEquals("$.contacts[0].name"), "Ana")
	c.Assert([]byte(doc), checkers.JSONPathEquals("$.contacts[1].email"), "bob@x.com")
}

func TestJSONPathEquals_FailurePath(t *testing.T) {
	c := qt.New(t)

	checker := checkers.JSONPathEquals("$.total")
	noop := func(string, any) {}

	c.Run("mismatched value", func(c *qt.C) {
		err := checker.Check(`{"total": 1}`, []any{float64(2)}, noop)
		c.Assert(err, qt.IsNotNil)
	})

	c.Run("invalid JSON", func(c *qt.C) {
		err := checker.Check(`{not json`, []any{float64(1)}, noop)
		c.Assert(err, qt.IsNotNil)
	})

	c.Run("unsupported got type", func(c *qt.C) {
		err := checker.Check(42, []any{float64(1)}, noop)
		c.Assert(err, qt.IsNotNil)
	})
}
