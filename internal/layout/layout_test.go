package layout_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/recordkit/internal/config"
	"github.com/ginjaninja78/recordkit/internal/layout"
)

func customersConfig() *config.LayoutConfig {
	return &config.LayoutConfig{
		Name:                 "customers",
		FileMatchingPatterns: []string{"customers_*.csv"},
		TextSettings: config.TextSettings{
			Delimiter:    ",",
			BooleanTrue:  "Yes",
			BooleanFalse: "No",
		},
		Fields: []config.FieldConfig{
			{Name: "Id", Type: "int"},
			{Name: "Name", MaxLength: 50},
			{Name: "Email", Type: "email", Optional: true},
			{Name: "Age", Type: "int", Min: "18"},
		},
	}
}

func TestBuild(t *testing.T) {
	l, err := layout.Build(customersConfig(), "")
	require.NoError(t, err)

	assert.Equal(t, "customers", l.Name)
	assert.Equal(t, ',', l.Delimiter)
	require.Len(t, l.Fields, 4)
	for i, f := range l.Fields {
		assert.Equal(t, i+1, f.Position)
	}
	assert.Equal(t, layout.TypeString, l.Fields[1].Type)
	assert.Equal(t, 50, l.Fields[1].Rules.MaxLength)
	assert.True(t, l.Matches("CUSTOMERS_01.csv"))
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields []config.FieldConfig
		want   string
	}{
		{"no fields", nil, "Fields must contain at least one valid element."},
		{"unknown type", []config.FieldConfig{{Name: "X", Type: "blob"}}, "unknown field type"},
		{"missing name", []config.FieldConfig{{Type: "int"}}, "Name is required."},
		{"bad pattern", []config.FieldConfig{{Name: "X", Pattern: "("}}, "bad pattern"},
		{"bad bound", []config.FieldConfig{{Name: "X", Type: "int", Min: "ten"}}, `bad min "ten"`},
		{"range on string", []config.FieldConfig{{Name: "X", Max: "3"}}, "string fields have no range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := layout.Build(&config.LayoutConfig{Name: "bad", Fields: tt.fields}, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("sentinels", func(t *testing.T) {
		_, err := layout.Build(&config.LayoutConfig{Name: "bad"}, "")
		assert.ErrorIs(t, err, layout.ErrNoFields)

		_, err = layout.Build(&config.LayoutConfig{Name: "bad", Fields: []config.FieldConfig{{Name: "X", Type: "blob"}}}, "")
		assert.ErrorIs(t, err, layout.ErrUnknownFieldType)
	})

	t.Run("unknown encoding", func(t *testing.T) {
		cfg := customersConfig()
		cfg.TextSettings.Encoding = "no-such-charset"
		_, err := layout.Build(cfg, "")
		assert.Error(t, err)
	})
}

func TestCheck(t *testing.T) {
	l, err := layout.Build(customersConfig(), "")
	require.NoError(t, err)

	t.Run("valid line", func(t *testing.T) {
		rec, values := l.Check(1, "1,John,,25")

		assert.True(t, rec.IsValid(), rec.Errors())
		assert.Equal(t, map[string]any{"Id": 1, "Name": "John", "Age": 25}, values)
	})

	t.Run("required and integer failures", func(t *testing.T) {
		rec, values := l.Check(2, ",John,bad,abc")

		assert.False(t, rec.IsValid())
		assert.Equal(t, []string{
			"Id is required.",
			"Email is not a valid email address.",
			"Age must be an integer number.",
		}, rec.Errors())
		assert.Equal(t, map[string]any{"Name": "John"}, values)
	})

	t.Run("minimum age", func(t *testing.T) {
		rec, values := l.Check(3, "2,Ann,ann@example.com,17")

		require.Len(t, rec.Errors(), 1)
		assert.Contains(t, rec.Errors()[0], "Age must be a number greater than 18")
		assert.NotContains(t, values, "Age")
	})

	t.Run("missing field", func(t *testing.T) {
		rec, _ := l.Check(4, "3,Bob")

		assert.Equal(t, []string{
			"Invalid position (position: 3, max. position: 2).",
			"Invalid position (position: 4, max. position: 2).",
		}, rec.Errors())
	})
}

func TestCheckTypes(t *testing.T) {
	cfg := &config.LayoutConfig{
		Name: "orders",
		TextSettings: config.TextSettings{
			Delimiter:       "|",
			IncludePosition: true,
			DateFormat:      "ymd",
		},
		Fields: []config.FieldConfig{
			{Name: "Order", Type: "long"},
			{Name: "Total", Type: "decimal", Min: "0", Max: "1000"},
			{Name: "Placed", Type: "date", Min: "2024-01-01"},
			{Name: "Paid", Type: "boolean"},
			{Name: "Window", Type: "timespan", Max: "08:00"},
			{Name: "Host", Type: "ip", Optional: true},
		},
	}
	l, err := layout.Build(cfg, "")
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		rec, values := l.Check(1, "9000000000|12.50|2024-02-01|yes|02:30|10.0.0.1")

		require.True(t, rec.IsValid(), rec.Errors())
		assert.Equal(t, int64(9000000000), values["Order"])
		assert.True(t, decimal.RequireFromString("12.5").Equal(values["Total"].(decimal.Decimal)))
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), values["Placed"])
		assert.Equal(t, true, values["Paid"])
		assert.Equal(t, 150*time.Minute, values["Window"])
		assert.Equal(t, "10.0.0.1", values["Host"])
	})

	t.Run("out of range", func(t *testing.T) {
		rec, _ := l.Check(2, "1|-1|2023-12-31|no|09:00|")

		assert.Equal(t, []string{
			"[Position 2] Total must be a number between 0.00 and 1,000.00.",
			"[Position 3] Placed must be a date greater than 2024-01-01.",
			"[Position 5] Window must be a time range of 08:00 at most.",
		}, rec.Errors())
	})
}

func TestTemplate(t *testing.T) {
	dir := t.TempDir()
	fields := []config.FieldConfig{
		{Name: "Id", Type: "int", Min: "1"},
		{Name: "Name", MaxLength: 50},
		{Name: "Email", Type: "email", Optional: true},
		{Name: "Joined", Position: 5, Type: "date", Layout: "02.01.2006"},
	}
	require.NoError(t, layout.WriteTemplate(filepath.Join(dir, "customers.xlsx"), fields))

	parsed, err := layout.ParseTemplate(filepath.Join(dir, "customers.xlsx"))
	require.NoError(t, err)
	require.Len(t, parsed, 4)
	assert.Equal(t, "Id", parsed[0].Name)
	assert.Equal(t, "1", parsed[0].Min)
	assert.Equal(t, 50, parsed[1].MaxLength)
	assert.True(t, parsed[2].Optional)
	assert.Equal(t, 5, parsed[3].Position)
	assert.Equal(t, "02.01.2006", parsed[3].Layout)

	t.Run("every column round trips", func(t *testing.T) {
		full := []config.FieldConfig{
			{Name: "Code", Position: 2, Type: "string", MinLength: 3, MaxLength: 8, Pattern: "^[A-Z]+$"},
			{Name: "Zip", Type: "string", Optional: true, ExactLength: 5},
			{Name: "Rate", Type: "decimal", Min: "0", Max: "99.999", Digits: 3},
			{Name: "Window", Type: "timespan", Max: "08:00", Layout: "15:04"},
		}
		path := filepath.Join(dir, "full.xlsx")
		require.NoError(t, layout.WriteTemplate(path, full))

		got, err := layout.ParseTemplate(path)
		require.NoError(t, err)
		assert.Equal(t, full, got)
	})

	t.Run("template fields come before inline fields", func(t *testing.T) {
		cfg := &config.LayoutConfig{
			Name:     "customers",
			Template: "customers.xlsx",
			Fields:   []config.FieldConfig{{Name: "Note", Optional: true}},
		}
		l, err := layout.Build(cfg, dir)
		require.NoError(t, err)
		require.Len(t, l.Fields, 5)
		assert.Equal(t, "Note", l.Fields[4].Name)
		assert.Equal(t, 6, l.Fields[4].Position)

		rec, values := l.Check(1, "7,Eve,,x,15.03.2024,")
		require.True(t, rec.IsValid(), rec.Errors())
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), values["Joined"])
	})

	t.Run("missing template", func(t *testing.T) {
		_, err := layout.ParseTemplate(filepath.Join(dir, "absent.xlsx"))
		assert.ErrorContains(t, err, "failed to open template file")
	})
}
