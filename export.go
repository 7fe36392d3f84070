package dropdeck

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	SheetProjects     = "Projects"
	SheetTasks        = "Tasks"
	SheetTransactions = "Transactions"
)

// Export writes the state as an Excel workbook to w.
func (s *State) Export(w io.Writer) error {
	return WriteWorkbook(w, s.Snapshot())
}

// WriteWorkbook writes the projects, tasks and transactions of snap as three
// sheets of an Excel workbook.
func WriteWorkbook(w io.Writer, snap Snapshot) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	projects := [][]any{{"ID", "Name", "Type", "Funding", "Reward", "TGE", "Tags", "Joined", "Favorite"}}
	for _, p := range snap.Projects {
		projects = append(projects, []any{p.ID, p.Name, p.Type, p.Funding, p.Reward, p.TGE, strings.Join(p.Tags, ", "), p.Joined, p.Favorite})
	}
	tasks := [][]any{{"ID", "Project", "Name", "Completed", "Created"}}
	for _, t := range snap.Tasks {
		tasks = append(tasks, []any{t.ID, t.ProjectID, t.Name, t.Completed, t.CreatedAt.Format(time.RFC3339)})
	}
	txs := [][]any{{"ID", "Type", "Amount", "Description", "Date"}}
	for _, tx := range snap.Transactions {
		txs = append(txs, []any{tx.ID, string(tx.Kind), tx.Amount.InexactFloat64(), tx.Description, tx.Date.Format(time.RFC3339)})
	}

	// The default sheet is renamed rather than deleted, a workbook needs one.
	if err := f.SetSheetName("Sheet1", SheetProjects); err != nil {
		return err
	}
	if err := writeSheet(f, SheetProjects, projects); err != nil {
		return err
	}
	for _, sh := range []struct {
		name string
		rows [][]any
	}{{SheetTasks, tasks}, {SheetTransactions, txs}} {
		if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("cannot create sheet %q: %w", sh.name, err)
		}
		if err := writeSheet(f, sh.name, sh.rows); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

// writeSheet writes rows starting at A1, the first row is the header.
func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write row %d of %q: %w", i+1, sheet, err)
		}
	}
	return nil
}
