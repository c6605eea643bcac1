package layout

import (
	"github.com/ginjaninja78/recordkit/pkg/textfile"
	"github.com/ginjaninja78/recordkit/pkg/validation"
)

// NewRecord splits line with the layout's delimiter and record options.
func (l *Layout) NewRecord(lineNumber int, line string) *textfile.Record {
	return textfile.SplitRecord(lineNumber, line, l.Delimiter, l.RecordOptions()...)
}

// Check splits line and applies the layout to it.
func (l *Layout) Check(lineNumber int, line string) (*textfile.Record, map[string]any) {
	rec := l.NewRecord(lineNumber, line)
	return rec, l.Apply(rec)
}

// Apply reads every field of the layout from rec, recording failures on
// rec, and returns the parsed values by field name. Blank optional fields
// and fields that failed are absent from the result.
func (l *Layout) Apply(rec *textfile.Record) map[string]any {
	values := make(map[string]any, len(l.Fields))
	for _, f := range l.Fields {
		if v, ok := l.applyField(rec, f); ok {
			values[f.Name] = v
		}
	}
	return values
}

func (l *Layout) applyField(rec *textfile.Record, f Field) (any, bool) {
	opts := f.options()
	p := f.Position

	switch f.Type {
	case TypeInt:
		v := rec.GetInt(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		n := int64(*v)
		return *v, rec.Check(p, validation.ValidateInteger(&n, f.Name, !f.Optional, f.bounds.ints))
	case TypeShort:
		v := rec.GetShort(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		n := int64(*v)
		return *v, rec.Check(p, validation.ValidateInteger(&n, f.Name, !f.Optional, f.bounds.ints))
	case TypeLong:
		v := rec.GetLong(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		return *v, rec.Check(p, validation.ValidateInteger(v, f.Name, !f.Optional, f.bounds.ints))
	case TypeDouble:
		v := rec.GetDouble(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		return *v, rec.Check(p, validation.ValidateFloat(v, f.Name, !f.Optional, f.bounds.floats, f.Digits))
	case TypeDecimal:
		v := rec.GetDecimal(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		return *v, rec.Check(p, validation.ValidateDecimal(v, f.Name, !f.Optional, f.bounds.decimals, f.Digits))
	case TypeDateTime, TypeDate:
		v := rec.GetDateTime(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		return *v, rec.Check(p, validation.ValidateDate(v, f.Name, !f.Optional, f.bounds.dates, l.DateOptions(f.Type)))
	case TypeTimeSpan:
		v := rec.GetTimeSpan(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		r := f.bounds.spans
		if r.Min == nil && r.Max == nil {
			return *v, true
		}
		return *v, rec.Check(p, validation.ValidateTimeRange(0, *v, f.Name, r, nil))
	case TypeBoolean:
		v := rec.GetBoolean(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		return *v, true
	case TypeEmail:
		v := rec.GetString(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		return *v, rec.Check(p, validation.ValidateEmail(*v, f.Name, !f.Optional))
	case TypeIP:
		v := rec.GetString(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		return *v, rec.Check(p, validation.ValidateIPAddress(*v, f.Name))
	default:
		v := rec.GetString(p, f.Name, opts...)
		if v == nil {
			return nil, false
		}
		return *v, true
	}
}

// options converts the field settings to getter options.
func (f Field) options() []textfile.FieldOption {
	var opts []textfile.FieldOption
	if f.Optional {
		opts = append(opts, textfile.Optional())
	}
	if f.Rules.MinLength > 0 {
		opts = append(opts, textfile.MinLength(f.Rules.MinLength))
	}
	if f.Rules.MaxLength > 0 {
		opts = append(opts, textfile.MaxLength(f.Rules.MaxLength))
	}
	if f.Rules.ExactLength > 0 {
		opts = append(opts, textfile.ExactLength(f.Rules.ExactLength))
	}
	if f.Rules.Pattern != "" {
		opts = append(opts, textfile.Pattern(f.Rules.Pattern))
	}
	if f.Layout != "" {
		opts = append(opts, textfile.Layout(f.Layout))
	}
	return opts
}
