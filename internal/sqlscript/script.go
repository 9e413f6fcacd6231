package sqlscript

import (
	"fmt"
	"strings"

	"github.com/Rios1999/TrakingGym/internal/domain"
)

// Default destination of the seed script.
const (
	DefaultNamespace = "public"
	DefaultTable     = "Ejercicios"
)

type column struct {
	name    string
	sqlType string
	pk      bool
}

// Schema describes the destination table of the generated script.
type Schema struct {
	Namespace string
	Table     string
	// Bodyweight adds the peso_corporal BOOLEAN column.
	Bodyweight bool
}

// DefaultSchema returns the public."Ejercicios" layout including peso_corporal.
func DefaultSchema() Schema {
	return Schema{Namespace: DefaultNamespace, Table: DefaultTable, Bodyweight: true}
}

// QualifiedName returns the table reference used in every statement.
func (s Schema) QualifiedName() string {
	return qualify(s.Namespace, s.Table)
}

func (s Schema) columns() []column {
	cols := []column{
		{name: domain.FieldName, sqlType: "TEXT", pk: true},
		{name: domain.FieldCategory, sqlType: "TEXT"},
	}
	if s.Bodyweight {
		cols = append(cols, column{name: domain.FieldBodyweight, sqlType: "BOOLEAN"})
	}
	return append(cols,
		column{name: domain.FieldSynonyms, sqlType: "TEXT[]"},
		column{name: domain.FieldLoadFactor, sqlType: "FLOAT8"},
		column{name: domain.FieldAnatomicalMapping, sqlType: "JSONB"},
	)
}

// Render produces the complete script: table creation, truncation and one
// bulk INSERT holding a value tuple per record in input order. With no
// records the INSERT is omitted.
func (s Schema) Render(records []domain.ExerciseRecord) (string, error) {
	if strings.TrimSpace(strings.Trim(s.Table, `"`)) == "" {
		return "", fmt.Errorf("table name is required")
	}

	var b strings.Builder
	b.WriteString(s.createTable())
	b.WriteString(fmt.Sprintf("TRUNCATE TABLE %s;\n", s.QualifiedName()))

	if len(records) == 0 {
		return b.String(), nil
	}

	cols := s.columns()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.name
	}
	b.WriteString(fmt.Sprintf("INSERT INTO %s (%s)\nVALUES\n", s.QualifiedName(), strings.Join(names, ", ")))

	for i, record := range records {
		tuple, err := s.Tuple(record)
		if err != nil {
			return "", fmt.Errorf("record %d (%q): %w", i, record.Name, err)
		}
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(tuple)
	}
	b.WriteString(";\n")

	return b.String(), nil
}

// Tuple renders one record as a parenthesised list of SQL literals.
func (s Schema) Tuple(record domain.ExerciseRecord) (string, error) {
	loadFactor, err := NumericLiteral(record.LoadFactor)
	if err != nil {
		return "", err
	}
	mapping, err := JSONLiteral(record.AnatomicalMapping)
	if err != nil {
		return "", err
	}

	values := []string{QuoteString(record.Name), QuoteString(record.Category)}
	if s.Bodyweight {
		values = append(values, BoolLiteral(record.Bodyweight))
	}
	values = append(values, ArrayLiteral(record.Synonyms), loadFactor, mapping)

	return "(" + strings.Join(values, ", ") + ")", nil
}

func (s Schema) createTable() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n", s.QualifiedName()))

	cols := s.columns()
	for i, col := range cols {
		b.WriteString("    ")
		b.WriteString(col.name)
		b.WriteString(" ")
		b.WriteString(col.sqlType)
		if col.pk {
			b.WriteString(" PRIMARY KEY")
		}
		if i < len(cols)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	b.WriteString(");\n")
	return b.String()
}
