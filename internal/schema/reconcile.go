package schema

import (
	"fmt"

	"gorm.io/gorm"
)

// ColumnSpec names one column that must exist on a table, together with the
// DDL fragment used to add it when absent. Only additive nullable columns
// are supported; removals, renames and type changes are out of scope.
type ColumnSpec struct {
	Table      string
	Column     string
	Definition string
}

// Required lists the columns that were introduced after the first released
// schema and therefore may be missing from an existing database file.
func Required() []ColumnSpec {
	return []ColumnSpec{
		{Table: "product", Column: "description", Definition: "description TEXT"},
		{Table: "feedback", Column: "product_id", Definition: "product_id INTEGER"},
	}
}

// Reconcile makes the live schema forward-compatible with the given column
// specs. Each spec is checked against the table's live columns and an
// additive ALTER TABLE is issued only when the column is missing, so running
// it again is a no-op. The whole routine is best-effort: a failure (for
// example a table that does not exist yet) rolls back that spec's change and
// moves on. Returns the number of ALTER statements issued.
func Reconcile(db *gorm.DB, specs []ColumnSpec) int {
	altered := 0
	for _, spec := range specs {
		added := false
		err := db.Transaction(func(tx *gorm.DB) error {
			has, err := hasColumn(tx, spec.Table, spec.Column)
			if err != nil {
				return err
			}
			if has {
				return nil
			}
			if err := tx.Exec(fmt.Sprintf("ALTER TABLE `%s` ADD COLUMN %s", spec.Table, spec.Definition)).Error; err != nil {
				return err
			}
			added = true
			return nil
		})
		if err != nil {
			// non-fatal: the table may not exist yet
			continue
		}
		if added {
			altered++
		}
	}
	return altered
}

func hasColumn(tx *gorm.DB, table, column string) (bool, error) {
	var cols []struct {
		Name string
	}
	if err := tx.Raw(fmt.Sprintf("PRAGMA table_info(`%s`)", table)).Scan(&cols).Error; err != nil {
		return false, err
	}
	// PRAGMA table_info returns no rows for a missing table instead of
	// failing, so treat that as an error to keep the spec untouched
	if len(cols) == 0 {
		return false, fmt.Errorf("table %s does not exist", table)
	}
	for _, c := range cols {
		if c.Name == column {
			return true, nil
		}
	}
	return false, nil
}
