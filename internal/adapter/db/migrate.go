package db

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/dialect/sql/schema"

	entschema "github.com/eslsoft/learnhub/internal/adapter/db/ent/schema"
)

// Migrate creates or updates every table on drv.
func Migrate(ctx context.Context, drv dialect.Driver) error {
	tables, err := Tables()
	if err != nil {
		return err
	}
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("ent migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("ent migrate: %w", err)
	}
	return nil
}

// Tables builds the migration tables from the Ent schema definitions.
func Tables() ([]*schema.Table, error) {
	type foreignKey struct {
		table  *schema.Table
		column *schema.Column
		edge   string
		ref    string
	}

	defs := entschema.All()
	tables := make([]*schema.Table, 0, len(defs))
	byType := make(map[string]*schema.Table, len(defs))
	var fks []foreignKey

	for _, def := range defs {
		name, err := tableName(def)
		if err != nil {
			return nil, err
		}
		t := &schema.Table{Name: name}
		columns := make(map[string]*schema.Column)

		for _, f := range def.Fields() {
			d := f.Descriptor()
			if d.Err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
			}
			col := &schema.Column{
				Name:     d.Name,
				Type:     d.Info.Type,
				Nullable: d.Optional,
				Size:     int64(d.Size),
			}
			if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
				col.Default = d.Default
			}
			if d.Name == "id" {
				t.PrimaryKey = []*schema.Column{col}
			}
			t.Columns = append(t.Columns, col)
			columns[d.Name] = col
		}
		if len(t.PrimaryKey) == 0 {
			return nil, fmt.Errorf("%s: missing id field", name)
		}

		for _, e := range def.Edges() {
			d := e.Descriptor()
			if !d.Inverse || d.Field == "" {
				continue
			}
			col, ok := columns[d.Field]
			if !ok {
				return nil, fmt.Errorf("%s: edge %q references unknown field %q", name, d.Name, d.Field)
			}
			fks = append(fks, foreignKey{table: t, column: col, edge: d.Name, ref: d.Type})
		}

		for _, idx := range def.Indexes() {
			d := idx.Descriptor()
			index := &schema.Index{
				Name:   name + "_" + strings.Join(d.Fields, "_"),
				Unique: d.Unique,
			}
			for _, f := range d.Fields {
				col, ok := columns[f]
				if !ok {
					return nil, fmt.Errorf("%s: index references unknown field %q", name, f)
				}
				index.Columns = append(index.Columns, col)
			}
			for _, a := range d.Annotations {
				if ia, ok := a.(*entsql.IndexAnnotation); ok {
					index.Annotation = ia
				}
			}
			t.Indexes = append(t.Indexes, index)
		}

		tables = append(tables, t)
		byType[reflect.TypeOf(def).Name()] = t
	}

	for _, fk := range fks {
		ref, ok := byType[fk.ref]
		if !ok {
			return nil, fmt.Errorf("%s: edge %q references unknown type %q", fk.table.Name, fk.edge, fk.ref)
		}
		fk.table.ForeignKeys = append(fk.table.ForeignKeys, &schema.ForeignKey{
			Symbol:     fk.table.Name + "_" + ref.Name + "_" + fk.edge,
			Columns:    []*schema.Column{fk.column},
			RefTable:   ref,
			RefColumns: ref.PrimaryKey,
			OnDelete:   schema.NoAction,
		})
	}
	return tables, nil
}

func tableName(def ent.Interface) (string, error) {
	for _, a := range def.Annotations() {
		switch ant := a.(type) {
		case entsql.Annotation:
			if ant.Table != "" {
				return ant.Table, nil
			}
		case *entsql.Annotation:
			if ant != nil && ant.Table != "" {
				return ant.Table, nil
			}
		}
	}
	return "", fmt.Errorf("schema %T has no table annotation", def)
}
