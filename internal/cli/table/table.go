package table

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Column описывает колонку таблицы: ключ в строке и заголовок.
type Column struct {
	Key   string
	Label string
}

// Row — строка таблицы, значения по ключам колонок.
type Row map[string]string

// Action — действие над строкой.
type Action struct {
	Label      string
	ColorClass string
	Callback   func(Row)
}

// Invoke runs the callback on row; actions without a callback do nothing.
func (a Action) Invoke(row Row) {
	if a.Callback != nil {
		a.Callback(row)
	}
}

// Render writes rows as an aligned text table. Missing values render as "-".
func Render(w io.Writer, cols []Column, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = strings.ToUpper(c.Label)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(labels, "\t")); err != nil {
		return err
	}
	for _, r := range rows {
		vals := make([]string, len(cols))
		for i, c := range cols {
			v, ok := r[c.Key]
			if !ok || v == "" {
				v = "-"
			}
			vals[i] = v
		}
		if _, err := fmt.Fprintln(tw, strings.Join(vals, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
