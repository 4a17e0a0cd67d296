package postgres

import (
	"fmt"

	"github.com/estoqueops/estqop/internal/domain"
)

// buildRunFilterClause constructs SQL filter clauses for run-history queries.
// The returned clause starts with " AND " so it can be appended to an
// existing WHERE.
func buildRunFilterClause(filter *domain.RunFilter, alias string, startIndex int) (string, []interface{}) {
	if filter == nil {
		return "", nil
	}

	var (
		clause string
		args   []interface{}
	)
	idx := startIndex

	if filter.Status != "" {
		clause += fmt.Sprintf(" AND %sstatus = $%d", alias, idx)
		args = append(args, filter.Status)
		idx++
	}

	if filter.From != nil {
		clause += fmt.Sprintf(" AND %sstarted_at >= $%d", alias, idx)
		args = append(args, *filter.From)
		idx++
	}

	if filter.To != nil {
		clause += fmt.Sprintf(" AND %sstarted_at < $%d", alias, idx)
		args = append(args, *filter.To)
		idx++
	}

	return clause, args
}
