// Package export renders exam lists as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

const examSheet = "Examens"

var examHeader = []any{"ID", "Matière", "Filière", "Salle", "Enseignant", "Date", "Heure"}

// ExamWorkbook writes one row per exam to w as an XLSX workbook. Teacher
// names are resolved from teachers; unknown ids are written as numbers.
func ExamWorkbook(w io.Writer, exams []domain.Exam, teachers []domain.User) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", examSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(examSheet, "A1", &examHeader); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	names := make(map[int64]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.FullName
	}

	for i, e := range exams {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", i, err)
		}
		row := []any{
			e.ID,
			labelOr(e.SubjectName(), e.SubjectID),
			labelOr(e.StreamName(), e.StreamID),
			labelOr(e.RoomName(), e.RoomID),
			labelOr(names[e.TeacherID], e.TeacherID),
			e.Date,
			e.Time,
		}
		if err := f.SetSheetRow(examSheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(examSheet, "B", "E", 24); err != nil {
		return fmt.Errorf("export: column width: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

func labelOr(label string, id int64) any {
	if label != "" {
		return label
	}
	if id == 0 {
		return "-"
	}
	return id
}
