package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/recordkit/pkg/validation"
)

func TestValidateString(t *testing.T) {
	t.Run("blank value not required passes regardless of rules", func(t *testing.T) {
		rules := validation.StringRules{MinLength: 5, ExactLength: 3, Pattern: `^\d+$`}
		for _, v := range []string{"", "   ", "\t"} {
			o := validation.ValidateString(v, "Code", false, rules)
			assert.True(t, o.OK)
			assert.Empty(t, o.Message)
		}
	})

	t.Run("blank value required fails with required only", func(t *testing.T) {
		o := validation.ValidateString("  ", "Code", true, validation.StringRules{MinLength: 5})
		assert.False(t, o.OK)
		assert.Equal(t, "Code is required.", o.Message)
	})

	t.Run("max length boundary", func(t *testing.T) {
		for n := 1; n <= 8; n++ {
			o := validation.ValidateString(strings.Repeat("a", n), "Name", true, validation.StringRules{MaxLength: 5})
			if n > 5 {
				assert.False(t, o.OK, "length %d", n)
				assert.Equal(t, "Name must be 5 characters long at most.", o.Message)
			} else {
				assert.True(t, o.OK, "length %d", n)
			}
		}
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		o := validation.ValidateString("ñandú", "Name", true, validation.StringRules{MaxLength: 5})
		assert.True(t, o.OK)
	})

	t.Run("exact length wins over min and max", func(t *testing.T) {
		rules := validation.StringRules{MinLength: 1, MaxLength: 10, ExactLength: 4}
		o := validation.ValidateString("abc", "Pin", true, rules)
		assert.Equal(t, "Pin must be exactly 4 characters long.", o.Message)

		o = validation.ValidateString("abcd", "Pin", true, rules)
		assert.True(t, o.OK)
	})

	t.Run("min and max form a range", func(t *testing.T) {
		rules := validation.StringRules{MinLength: 2, MaxLength: 4}
		assert.Equal(t, "Code must be between 2 and 4 characters long.",
			validation.ValidateString("a", "Code", true, rules).Message)
		assert.Equal(t, "Code must be between 2 and 4 characters long.",
			validation.ValidateString("abcde", "Code", true, rules).Message)
		assert.True(t, validation.ValidateString("abc", "Code", true, rules).OK)
	})

	t.Run("min alone", func(t *testing.T) {
		o := validation.ValidateString("a", "Code", true, validation.StringRules{MinLength: 2})
		assert.Equal(t, "Code must be 2 characters long at least.", o.Message)
	})

	t.Run("pattern checked last", func(t *testing.T) {
		rules := validation.StringRules{MaxLength: 3, Pattern: `^\d+$`}
		assert.Equal(t, "Zip must be 3 characters long at most.",
			validation.ValidateString("abcd", "Zip", true, rules).Message)
		assert.Equal(t, "Zip is not in the valid format.",
			validation.ValidateString("ab", "Zip", true, rules).Message)
		assert.True(t, validation.ValidateString("12", "Zip", true, rules).OK)
	})

	t.Run("malformed pattern panics", func(t *testing.T) {
		assert.Panics(t, func() {
			validation.ValidateString("x", "X", true, validation.StringRules{Pattern: `(`})
		})
	})
}

func TestCheckString(t *testing.T) {
	t.Run("appends on failure", func(t *testing.T) {
		var errs validation.ErrorList
		ok := validation.CheckString(&errs, "", "Name", true, validation.StringRules{})
		assert.False(t, ok)
		assert.Equal(t, []string{"Name is required."}, errs.Messages())
	})

	t.Run("leaves list untouched on success", func(t *testing.T) {
		var errs validation.ErrorList
		ok := validation.CheckString(&errs, "John", "Name", true, validation.StringRules{})
		assert.True(t, ok)
		assert.True(t, errs.IsEmpty())
	})

	t.Run("nil list panics", func(t *testing.T) {
		assert.Panics(t, func() {
			validation.CheckString(nil, "", "Name", true, validation.StringRules{})
		})
	})
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		required bool
		ok       bool
		message  string
	}{
		{"valid address", "john@example.com", true, true, ""},
		{"blank optional", "", false, true, ""},
		{"blank required", " ", true, false, "Email is required."},
		{"missing at sign", "john.example.com", true, false, "Email is not a valid email address."},
		{"display name rejected", "John <john@example.com>", true, false, "Email is not a valid email address."},
		{"bad optional still checked", "bad", false, false, "Email is not a valid email address."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validation.ValidateEmail(tt.value, "Email", tt.required)
			assert.Equal(t, tt.ok, o.OK)
			assert.Equal(t, tt.message, o.Message)
		})
	}
}

func TestValidateIPAddress(t *testing.T) {
	valid := []string{"192.168.1.1", "10.0.0.255", "::1", "2001:db8::1", "2001:DB8::1"}
	for _, v := range valid {
		assert.True(t, validation.ValidateIPAddress(v, "IP").OK, v)
	}

	invalid := []string{"", "192.168.001.1", "256.1.1.1", "1.2.3", "2001:0db8::1", "host"}
	for _, v := range invalid {
		o := validation.ValidateIPAddress(v, "IP")
		assert.False(t, o.OK, v)
		assert.Equal(t, "IP is not a valid IP address.", o.Message)
	}

	var errs validation.ErrorList
	assert.False(t, validation.CheckIPAddress(&errs, "x", "Server"))
	assert.Equal(t, 1, errs.Len())
}
