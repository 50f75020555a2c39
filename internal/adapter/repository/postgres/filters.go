package postgres

import (
	"fmt"
	"strings"

	"github.com/iho/armory/internal/domain"
)

// condBuilder accumulates WHERE conditions with positional arguments.
type condBuilder struct {
	conds []string
	args  []any
}

func (b *condBuilder) add(column, op string, value any) {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s %s $%d", column, op, len(b.args)))
}

func (b *condBuilder) addPeriod(column string, period domain.Period) {
	if period.Start != nil {
		b.add(column, ">=", *period.Start)
	}
	if period.End != nil {
		b.add(column, "<=", *period.End)
	}
}

func (b *condBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}
