package analysis

import (
	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
)

var allColumns = []string{
	epc.ColumnRating,
	epc.ColumnEfficiency,
	epc.ColumnAgeBand,
	epc.ColumnPropertyType,
	epc.ColumnBuiltForm,
}

// cert describes one certificate row; empty fields are missing cells.
type cert struct {
	rating     string
	efficiency string
	ageBand    string
	propType   string
	builtForm  string
}

func (c cert) row() dataset.Row {
	return dataset.Row{
		epc.ColumnRating:       c.rating,
		epc.ColumnEfficiency:   c.efficiency,
		epc.ColumnAgeBand:      c.ageBand,
		epc.ColumnPropertyType: c.propType,
		epc.ColumnBuiltForm:    c.builtForm,
	}
}

func repeat(n int, c cert) []cert {
	out := make([]cert, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func newDataset(groups ...[]cert) *dataset.Dataset {
	ds := &dataset.Dataset{Columns: allColumns}
	for _, g := range groups {
		for _, c := range g {
			ds.Rows = append(ds.Rows, c.row())
		}
	}
	return ds
}

// withoutColumn drops column from the header and every row.
func withoutColumn(ds *dataset.Dataset, column string) *dataset.Dataset {
	out := &dataset.Dataset{}
	for _, c := range ds.Columns {
		if c != column {
			out.Columns = append(out.Columns, c)
		}
	}
	for _, r := range ds.Rows {
		row := dataset.Row{}
		for k, v := range r {
			if k != column {
				row[k] = v
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
