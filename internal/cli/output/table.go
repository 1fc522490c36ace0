package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
	"time"
)

// Table is tabular data ready to render.
type Table struct {
	Headers []string
	Rows    [][]string
}

// SetHeaders sets the column headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the table with aligned columns.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// TableFormatter renders results as aligned text tables. Slices of
// structs become one row per element; single structs and maps become
// FIELD/VALUE listings.
type TableFormatter struct {
	Wide bool
}

func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}
	if t, ok := data.(*Table); ok {
		return t.Render(w)
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	var (
		t   *Table
		err error
	)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		t, err = f.sliceTable(v)
	case reflect.Struct:
		t, err = f.structTable(v)
	case reflect.Map:
		t, err = mapTable(v)
	default:
		err = fmt.Errorf("output: cannot tabulate %s", v.Kind())
	}
	if err != nil {
		return err
	}
	return t.Render(w)
}

// columns picks the visible fields of a struct type under the current
// width mode.
func (f *TableFormatter) columns(t reflect.Type) (headers []string, indices []int) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		switch field.Tag.Get("table") {
		case "-":
			continue
		case "wide":
			if !f.Wide {
				continue
			}
		}
		headers = append(headers, strings.ToUpper(field.Name))
		indices = append(indices, i)
	}
	return headers, indices
}

func (f *TableFormatter) sliceTable(v reflect.Value) (*Table, error) {
	t := &Table{}
	if v.Len() == 0 {
		return t, nil
	}

	first := v.Index(0)
	if first.Kind() == reflect.Pointer {
		first = first.Elem()
	}
	if first.Kind() != reflect.Struct {
		t.SetHeaders("VALUE")
		for i := 0; i < v.Len(); i++ {
			t.AddRow(cell(v.Index(i)))
		}
		return t, nil
	}

	headers, indices := f.columns(first.Type())
	t.SetHeaders(headers...)
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		row := make([]string, 0, len(indices))
		for _, idx := range indices {
			row = append(row, cell(elem.Field(idx)))
		}
		t.AddRow(row...)
	}
	return t, nil
}

func (f *TableFormatter) structTable(v reflect.Value) (*Table, error) {
	t := &Table{}
	t.SetHeaders("FIELD", "VALUE")
	headers, indices := f.columns(v.Type())
	for i, idx := range indices {
		t.AddRow(headers[i], cell(v.Field(idx)))
	}
	return t, nil
}

func mapTable(v reflect.Value) (*Table, error) {
	t := &Table{}
	t.SetHeaders("KEY", "VALUE")
	for _, key := range v.MapKeys() {
		t.AddRow(cell(key), cell(v.MapIndex(key)))
	}
	return t, nil
}

// cell renders one value for a table cell. Durations are shown as
// m:ss play time, zero values as a dash.
func cell(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "-"
		}
		v = v.Elem()
	}

	switch v.Type() {
	case reflect.TypeOf(time.Duration(0)):
		return playTime(time.Duration(v.Int()))
	case reflect.TypeOf(time.Time{}):
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	}

	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return "-"
		}
		return v.String()
	case reflect.Bool:
		if v.Bool() {
			return "on"
		}
		return "off"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// playTime renders a duration as minutes and seconds, the way music
// players do.
func playTime(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
