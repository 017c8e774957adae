package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteText prints the objective, a numbered stop list with leg costs and the
// route total:
//
//	Objective: 26 m
//	Route (exact, optimal):
//	  0. depot (0.000000, 0.000000)
//	  1. a (0.000000, 1.000000) +10 m
//	  ...
//	Route distance: 26 m
func WriteText(w io.Writer, r Route) error {
	steps, err := r.Steps()
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Objective: %s\n", r.amount(r.Result.Cost))
	fmt.Fprintf(&sb, "Route (%s):\n", r.status())
	width := len(fmt.Sprint(len(steps) - 1))
	for _, s := range steps {
		fmt.Fprintf(&sb, "  %*d. %s", width, s.Position, s.Name)
		if r.Locations != nil {
			fmt.Fprintf(&sb, " (%.6f, %.6f)", s.Lat, s.Lng)
		}
		if s.Position > 0 {
			fmt.Fprintf(&sb, " +%s", r.amount(s.Leg))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Route distance: %s\n", r.amount(steps[len(steps)-1].Cumulative))

	_, err = io.WriteString(w, sb.String())

	return err
}

// amount formats v with the route's unit, if any.
func (r Route) amount(v int64) string {
	if r.Unit == "" {
		return strconv.FormatInt(v, 10)
	}

	return strconv.FormatInt(v, 10) + " " + r.Unit
}
