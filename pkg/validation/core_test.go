package validation_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/recordkit/pkg/file"
	"github.com/ginjaninja78/recordkit/pkg/validation"
)

func TestErrorList(t *testing.T) {
	t.Run("preserves insertion order", func(t *testing.T) {
		var errs validation.ErrorList
		errs.Add("b")
		errs.Add("a")
		errs.Add("c")
		assert.Equal(t, []string{"b", "a", "c"}, errs.Messages())
		assert.Equal(t, "b|a|c", errs.Join("|"))
	})

	t.Run("messages is a copy", func(t *testing.T) {
		var errs validation.ErrorList
		errs.Add("x")
		msgs := errs.Messages()
		msgs[0] = "changed"
		assert.Equal(t, "x", errs.Messages()[0])
	})

	t.Run("err joins with newlines", func(t *testing.T) {
		var errs validation.ErrorList
		assert.NoError(t, errs.Err())

		errs.Add("Id is required.")
		errs.Add("Age must be an integer number.")
		err := errs.Err()
		require.Error(t, err)
		assert.Equal(t, "Id is required.\nAge must be an integer number.", err.Error())

		var friendly *validation.FriendlyError
		require.True(t, errors.As(err, &friendly))
		assert.Len(t, friendly.Messages, 2)
	})
}

func TestOutcomeErr(t *testing.T) {
	assert.NoError(t, validation.ValidateString("x", "X", true, validation.StringRules{}).Err())
	assert.EqualError(t, validation.ValidateString("", "X", true, validation.StringRules{}).Err(), "X is required.")
}

func TestRequireNotNil(t *testing.T) {
	var p *int
	var s []string
	assert.Panics(t, func() { validation.RequireNotNil(nil, "v") })
	assert.Panics(t, func() { validation.RequireNotNil(p, "p") })
	assert.Panics(t, func() { validation.RequireNotNil(s, "s") })
	assert.NotPanics(t, func() { validation.RequireNotNil([]string{}, "s") })
	assert.NotPanics(t, func() { validation.RequireNotNil(0, "n") })
}

type color int

const (
	red color = iota
	green
)

func (c color) String() string {
	switch c {
	case red:
		return "Red"
	case green:
		return "Green"
	}
	return "color(" + strconv.Itoa(int(c)) + ")"
}

type plain int

func TestValidateEnum(t *testing.T) {
	assert.True(t, validation.IsValidEnum(nil))
	assert.True(t, validation.IsValidEnum((*color)(nil)))
	assert.True(t, validation.IsValidEnum(green))
	assert.True(t, validation.IsValidEnum("Active"))

	assert.False(t, validation.IsValidEnum(color(9)), "undeclared stringer value")
	assert.False(t, validation.IsValidEnum(color(-1)))
	assert.False(t, validation.IsValidEnum(plain(2)))
	assert.False(t, validation.IsValidEnum("42"))
	assert.False(t, validation.IsValidEnum("Mode(12)"))
	assert.True(t, validation.IsValidEnum("Mode(auto)"))
	assert.True(t, validation.IsValidEnum("(3)"), "no type name before the parenthesis")

	o := validation.ValidateEnum(plain(3), "Status")
	assert.Equal(t, "Status is not a valid plain value.", o.Message)

	var errs validation.ErrorList
	assert.True(t, validation.CheckEnum(&errs, red, "Color"))
	assert.False(t, validation.CheckEnum(&errs, color(5), "Color"))
	assert.Equal(t, []string{"Color is not a valid color value."}, errs.Messages())
}

func TestValidateFile(t *testing.T) {
	csvOnly := validation.FileRules{Extensions: validation.ParseExtensions(".csv, .TXT")}

	t.Run("nil and empty files", func(t *testing.T) {
		o := validation.ValidateFile(nil, true, validation.FileRules{})
		assert.Equal(t, "File is required.", o.Message)

		o = validation.ValidateFile(file.New("in/data.csv", nil), true, validation.FileRules{})
		assert.Equal(t, "data.csv is required.", o.Message)

		o = validation.ValidateFile(file.New("data.csv", nil), true, validation.FileRules{Description: "Upload"})
		assert.Equal(t, "Upload is required.", o.Message)

		assert.True(t, validation.ValidateFile(nil, false, csvOnly).OK)
	})

	t.Run("extension allow-list is case insensitive", func(t *testing.T) {
		assert.True(t, validation.ValidateFile(file.New("DATA.CSV", []byte("x")), true, csvOnly).OK)
		assert.True(t, validation.ValidateFile(file.New("notes.txt", []byte("x")), true, csvOnly).OK)

		o := validation.ValidateFile(file.New("report.pdf", []byte("x")), true, csvOnly)
		assert.Equal(t, "report.pdf has an invalid file extension. Valid extensions: .csv, .TXT.", o.Message)
	})

	t.Run("no allow-list skips the extension check", func(t *testing.T) {
		assert.True(t, validation.ValidateFile(file.New("a.exe", []byte("x")), true, validation.FileRules{}).OK)
	})

	t.Run("extension helpers", func(t *testing.T) {
		assert.Equal(t, []string{".csv", ".txt"}, validation.ParseExtensions(".csv,,.txt, "))
		assert.True(t, validation.HasValidExtension("a.Csv", []string{"csv"}))
		assert.False(t, validation.HasValidExtension("noext", []string{".csv"}))
		assert.Panics(t, func() { validation.HasValidExtension("a.csv", nil) })
	})

	t.Run("check wrapper", func(t *testing.T) {
		var errs validation.ErrorList
		assert.False(t, validation.CheckFile(&errs, file.New("a.doc", []byte("x")), true, csvOnly))
		assert.Equal(t, 1, errs.Len())
	})
}
