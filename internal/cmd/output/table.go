package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/snipdeck/internal/cmd/table"
)

// TableFormatter renders Data, structs and struct slices with tablewriter.
// Other values fall back to JSON.
type TableFormatter struct {
	Wide bool
}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	rows, ok := toData(data)
	if !ok {
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}

	var cfg tablewriter.Config
	if len(rows.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(rows.ColumnAlignment))
		for i, a := range rows.ColumnAlignment {
			align[i] = twAlign(a)
		}
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: align}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(rows.Headers) > 0 {
		t.Header(toAny(rows.Headers)...)
	}
	for _, row := range rows.Rows {
		if err := t.Append(toAny(row)...); err != nil {
			return err
		}
	}
	return t.Render()
}

func twAlign(a table.Align) tw.Align {
	switch a {
	case table.AlignLeft:
		return tw.AlignLeft
	case table.AlignCenter:
		return tw.AlignCenter
	case table.AlignRight:
		return tw.AlignRight
	default:
		return tw.Skip
	}
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// toData converts Data, a struct or a non-empty struct slice to rows.
// A struct becomes Property/Value pairs; a slice gets one row per element.
func toData(data any) (Data, bool) {
	if d, ok := data.(Data); ok {
		return d, true
	}

	v := reflect.ValueOf(data)
	switch {
	case v.Kind() == reflect.Struct:
		d := Data{Headers: []string{"Property", "Value"}}
		for i := range v.NumField() {
			d.Rows = append(d.Rows, []string{columnName(v.Type().Field(i)), fmt.Sprint(v.Field(i).Interface())})
		}
		return d, true

	case v.Kind() == reflect.Slice && v.Len() > 0 && v.Index(0).Kind() == reflect.Struct:
		elem := v.Index(0).Type()
		d := Data{Headers: make([]string, elem.NumField())}
		for i := range elem.NumField() {
			d.Headers[i] = columnName(elem.Field(i))
		}
		for i := range v.Len() {
			item := v.Index(i)
			row := make([]string, item.NumField())
			for j := range item.NumField() {
				row[j] = fmt.Sprint(item.Field(j).Interface())
			}
			d.Rows = append(d.Rows, row)
		}
		return d, true
	}
	return Data{}, false
}

// columnName titles the json name of field ("snippet_id" -> "Snippet Id").
func columnName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
