// Package report renders the loan report as an A4 PDF.
//
// Positions are in points with the origin at the top-left corner of the
// page. The table starts below the title; each page holds as many fixed
// height rows as fit above the bottom threshold, and rows that do not fit
// continue on a new page from the top offset.
package report

import (
	"strconv"

	"github.com/tbourn/go-game-loans/internal/domain"
)

// Geometry of the report, in points.
const (
	Margin     = 50.0
	HeaderY    = 150.0
	FirstRowY  = HeaderY + 25
	RowHeight  = 20.0
	BottomY    = 750.0 // a row whose top would pass this moves to the next page
	TopY       = 50.0  // first row position on continuation pages
	RuleRightX = 550.0
)

// ColumnX holds the left edge of each table column.
var ColumnX = [5]float64{50, 100, 220, 360, 460}

// Headers are the table column titles.
var Headers = [5]string{"ID", "Amigo", "Jogo", "Data Início", "Data Fim"}

// InProgressLabel fills the end-date column of loans that are still open.
const InProgressLabel = "Em andamento"

// Placement is one table row positioned on a page.
type Placement struct {
	Page  int // 1-based
	Y     float64
	Cells [5]string
}

// Layout is the computed position of every row.
type Layout struct {
	Pages int
	Rows  []Placement
}

// Plan positions rows top to bottom. A page break is taken only when
// another row needs drawing, so the last page is never empty.
func Plan(rows []domain.Emprestimo) Layout {
	l := Layout{Pages: 1, Rows: make([]Placement, 0, len(rows))}
	y := FirstRowY
	for _, e := range rows {
		if y > BottomY {
			l.Pages++
			y = TopY
		}
		l.Rows = append(l.Rows, Placement{Page: l.Pages, Y: y, Cells: cells(e)})
		y += RowHeight
	}
	return l
}

func cells(e domain.Emprestimo) [5]string {
	var amigo, jogo string
	if e.Amigo != nil {
		amigo = e.Amigo.Nome
	}
	if e.Jogo != nil {
		jogo = e.Jogo.Titulo
	}
	fim := InProgressLabel
	if !e.InProgress() {
		fim = *e.DataFim
	}
	return [5]string{strconv.FormatUint(uint64(e.ID), 10), amigo, jogo, e.DataInicio, fim}
}
