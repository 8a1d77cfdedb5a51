package allocation

import "github.com/ciphernaut/acma-bandplan-db/model"

// DefaultHeaderRows is the number of column header rows at the top of each
// allocation table.
const DefaultHeaderRows = 2

// Classifier turns raw tables into allocation records
type Classifier struct {
	// HeaderRows leading rows of every table are skipped.
	HeaderRows int
}

// NewClassifier returns a classifier skipping DefaultHeaderRows rows
func NewClassifier() *Classifier {
	return &Classifier{HeaderRows: DefaultHeaderRows}
}

// TableResult holds the records parsed from one table
type TableResult struct {
	Records []model.AllocationRecord
	// Skipped counts data rows (past the header) that produced no record.
	Skipped int
}

// ProcessTable classifies every row of t after the header rows, in order.
func (c *Classifier) ProcessTable(t *model.Table, unit model.Unit) TableResult {
	var res TableResult
	if t == nil {
		return res
	}
	skip := c.HeaderRows
	if skip < 0 {
		skip = 0
	}
	for i := skip; i < len(t.Rows); i++ {
		rec, ok := ParseRow(t.RowTexts(i), unit)
		if !ok {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// PageResult holds the records parsed from one page
type PageResult struct {
	Unit    model.Unit
	Records []model.AllocationRecord
	Skipped int
}

// ProcessPage detects the page unit and classifies every table on the
// page. ok is false when the page carries no unit and was skipped whole.
func (c *Classifier) ProcessPage(p *model.Page) (res PageResult, ok bool) {
	unit, ok := DetectUnit(p.Lines)
	if !ok {
		return res, false
	}
	res.Unit = unit
	for _, t := range p.Tables {
		tr := c.ProcessTable(t, unit)
		res.Records = append(res.Records, tr.Records...)
		res.Skipped += tr.Skipped
	}
	return res, true
}
