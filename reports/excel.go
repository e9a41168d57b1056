package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sheetWriter menyimpan error pertama dari excelize agar pemanggil cukup
// memeriksa satu kali di akhir.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error

	title  int
	header int
	text   int
	number int
	total  int
}

func newSheetWriter(sheet string) (*sheetWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, sheet: sheet}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	w.title = w.style(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: center,
	})
	w.header = w.style(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Border:    border,
		Alignment: center,
	})
	w.text = w.style(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	w.number = w.style(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "top"},
		NumFmt:    3,
	})
	w.total = w.style(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFF2CC"}, Pattern: 1},
		Border: border,
		NumFmt: 3,
	})
	if w.err != nil {
		return nil, w.err
	}
	return w, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func (w *sheetWriter) style(s *excelize.Style) int {
	if w.err != nil {
		return 0
	}
	id, err := w.f.NewStyle(s)
	if err != nil {
		w.err = err
	}
	return id
}

func (w *sheetWriter) set(col string, row int, v interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell(col, row), v)
}

func (w *sheetWriter) merge(fromCol string, fromRow int, toCol string, toRow int) {
	if w.err != nil || (fromCol == toCol && fromRow == toRow) {
		return
	}
	w.err = w.f.MergeCell(w.sheet, cell(fromCol, fromRow), cell(toCol, toRow))
}

func (w *sheetWriter) paint(fromCol string, fromRow int, toCol string, toRow int, style int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, cell(fromCol, fromRow), cell(toCol, toRow), style)
}

func (w *sheetWriter) width(col string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetColWidth(w.sheet, col, col, width)
}

// titles menulis judul di baris 1..n, masing-masing digabung sampai lastCol.
func (w *sheetWriter) titles(lastCol string, lines ...string) {
	for i, line := range lines {
		row := i + 1
		w.set("A", row, line)
		w.merge("A", row, lastCol, row)
		w.paint("A", row, lastCol, row, w.title)
	}
}

func (w *sheetWriter) finish() (*excelize.File, error) {
	if w.err != nil {
		_ = w.f.Close()
		return nil, w.err
	}
	return w.f, nil
}
