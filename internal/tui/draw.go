package tui

import (
	"strings"

	nchess "github.com/corentings/chess/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/park285/draft-chess/internal/draft"
	"github.com/park285/draft-chess/pkg/draftview"
)

var (
	defStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)

	tileLight     = tcell.NewRGBColor(0xeb, 0xec, 0xd3)
	tileDark      = tcell.NewRGBColor(0x7a, 0x94, 0x5a)
	bandLight     = tcell.NewRGBColor(0xf6, 0xf6, 0xe9)
	bandDark      = tcell.NewRGBColor(0x5c, 0x70, 0x44)
	tileSelected  = tcell.NewRGBColor(0x4a, 0xde, 0x80)
	tileCapture   = tcell.NewRGBColor(0xef, 0x88, 0x6e)
	pieceLight    = tcell.NewRGBColor(0xff, 0xff, 0xff)
	pieceDark     = tcell.NewRGBColor(0x10, 0x10, 0x14)
	budgetGreen   = tcell.NewRGBColor(0x4a, 0xde, 0x80)
	budgetGold    = tcell.NewRGBColor(0xfc, 0xd3, 0x4d)
	budgetRed     = tcell.NewRGBColor(0xef, 0x44, 0x44)
	labelColor    = tcell.NewRGBColor(0xb4, 0xba, 0xcc)
	menuBg        = tcell.NewRGBColor(0xff, 0xff, 0xff)
	menuFg        = tcell.NewRGBColor(0x15, 0x80, 0x3d)
	menuDisabled  = tcell.NewRGBColor(0x9a, 0x9a, 0x9a)
	readyLightBg  = tcell.NewRGBColor(0xff, 0xff, 0xff)
	readyDarkBg   = tcell.NewRGBColor(0x00, 0x00, 0x00)
	readyPendingF = tcell.NewRGBColor(0x80, 0x80, 0x80)
)

const (
	markerLegal = '●'
	markerHover = '○'
)

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// Draw repaints the whole frame from the game's current view.
func (a *App) Draw() {
	a.screen.Clear()
	view := a.game.View()

	drawText(a.screen, boardX, 0, defStyle.Bold(true), a.cat.Text("hud.title", nil))
	drawText(a.screen, boardX+16, 0, defStyle.Foreground(labelColor), a.phaseText(view))

	a.drawBoard(view)
	a.drawCoordinates()
	if view.Phase == draft.Drafting.String() {
		for _, s := range draft.Sides {
			sv := view.SideByName(s.String())
			a.drawSidePanel(s, *sv)
			if sv.MenuOpen {
				a.drawMenu(*sv)
			}
		}
	} else {
		a.drawMaterial(view)
	}

	help := "hud.help.playing"
	if view.Phase == draft.Drafting.String() {
		help = "hud.help.drafting"
	}
	drawText(a.screen, boardX, boardBottom()+1, defStyle.Foreground(labelColor), a.cat.Text(help, nil))
	if a.status != "" {
		drawText(a.screen, boardX, boardBottom()+2, defStyle.Foreground(budgetRed), a.status)
	}
	a.screen.Show()
}

func (a *App) drawBoard(view *draftview.View) {
	drafting := view.Phase == draft.Drafting.String()
	hoverSide, showHover := draft.Light, false
	if a.hovered {
		hoverSide, showHover = a.ctrl.HoverTarget(a.hover)
	}

	for r := 0; r < draft.BoardSize; r++ {
		for f := 0; f < draft.BoardSize; f++ {
			sq := draftview.Square{Rank: r, File: f}
			bg := tileBg(r, f)
			if drafting {
				bg = a.bandBg(view, r, bg)
			}
			piece, occupied := view.PieceAt(sq)
			if view.Selected != nil && *view.Selected == sq {
				bg = tileSelected
			} else if occupied && view.IsLegalTarget(sq) {
				bg = tileCapture
			}

			x, y := boardGeometry.Origin(draft.Sq(r, f))
			for dy := 0; dy < tileH; dy++ {
				for dx := 0; dx < tileW; dx++ {
					a.screen.SetContent(x+dx, y+dy, ' ', nil, defStyle.Background(bg))
				}
			}

			switch {
			case occupied:
				a.screen.SetContent(x+1, y, pieceGlyph(piece), nil, pieceStyle(piece, bg))
			case view.IsLegalTarget(sq):
				a.screen.SetContent(x+1, y, markerLegal, nil, markerStyle(view.Turn, bg))
			case showHover && a.hover == draft.Sq(r, f):
				a.screen.SetContent(x+1, y, markerHover, nil, markerStyle(hoverSide.String(), bg))
			}
		}
	}
}

// bandBg shades the ranks a not-ready side may still draft on.
func (a *App) bandBg(view *draftview.View, rank int, bg tcell.Color) tcell.Color {
	for _, sv := range []draftview.Side{view.Light, view.Dark} {
		if sv.Ready || rank < sv.BandFrom || rank > sv.BandTo {
			continue
		}
		if bg == tileLight {
			return bandLight
		}
		return bandDark
	}
	return bg
}

func tileBg(rank, file int) tcell.Color {
	if (rank+file)%2 == 0 {
		return tileLight
	}
	return tileDark
}

var glyphTypes = map[string]nchess.PieceType{
	"king":   nchess.King,
	"queen":  nchess.Queen,
	"rook":   nchess.Rook,
	"bishop": nchess.Bishop,
	"knight": nchess.Knight,
	"pawn":   nchess.Pawn,
}

// pieceGlyph uses the filled chess symbols for both sides; color comes from the style.
func pieceGlyph(p draftview.Piece) rune {
	pt, ok := glyphTypes[p.Kind]
	if !ok {
		return '?'
	}
	for _, r := range nchess.NewPiece(pt, nchess.Black).String() {
		return r
	}
	return '?'
}

func pieceStyle(p draftview.Piece, bg tcell.Color) tcell.Style {
	fg := pieceLight
	if p.Side == draft.Dark.String() {
		fg = pieceDark
	}
	return defStyle.Background(bg).Foreground(fg).Bold(true)
}

func markerStyle(side string, bg tcell.Color) tcell.Style {
	fg := pieceLight
	if side == draft.Dark.String() {
		fg = pieceDark
	}
	return defStyle.Background(bg).Foreground(fg)
}

func (a *App) drawCoordinates() {
	style := defStyle.Foreground(labelColor)
	for i := 0; i < draft.BoardSize; i++ {
		sq := draft.Sq(i, i)
		name := sq.String()
		x, y := boardGeometry.Origin(sq)
		drawText(a.screen, boardX-2, y, style, name[1:])
		drawText(a.screen, x+1, boardBottom(), style, name[:1])
	}
}

func (a *App) drawSidePanel(side draft.Side, sv draftview.Side) {
	px := panelX()

	drawText(a.screen, px, budgetRow(side), defStyle.Foreground(budgetFg(sv.Budget)).Bold(true), a.budgetText(sv))

	label := a.cat.Text("hud.ready", nil)
	if sv.Ready {
		label = a.cat.Text("hud.ready_done", nil)
	}
	bg, fg := readyLightBg, readyDarkBg
	if side == draft.Dark {
		bg, fg = readyDarkBg, readyLightBg
	}
	if sv.Budget < 0 && !sv.Ready {
		fg = readyPendingF
	}
	style := defStyle.Background(bg).Foreground(fg).Italic(sv.Ready)
	drawText(a.screen, px, readyRow(side), style, centerPad(label, readyWidth))
}

func (a *App) drawMenu(sv draftview.Side) {
	px := panelX()
	origin := draft.Sq(sv.MenuAt.Rank, sv.MenuAt.File)
	title := a.cat.Text("side."+sv.Name, nil) + " " + origin.String()
	drawText(a.screen, px, menuTop, defStyle.Foreground(labelColor), title)

	for i, item := range sv.MenuItems {
		var text string
		if item.Kind == draft.NoKind.String() {
			text = a.cat.Text("hud.menu.none", nil)
		} else {
			text = a.cat.Text("hud.menu.item", map[string]any{"Kind": item.Kind, "Cost": item.Cost})
		}
		fg := menuFg
		if !item.Affordable {
			fg = menuDisabled
		}
		line := string(rune('1'+i)) + " " + text
		drawText(a.screen, px, menuTop+1+i, defStyle.Background(menuBg).Foreground(fg), padRight(line, menuWidth))
	}
}

func (a *App) drawMaterial(view *draftview.View) {
	px := panelX()
	for _, side := range draft.Sides {
		sv := view.SideByName(side.String())
		text := a.cat.Text("hud.material", map[string]any{
			"Side":     a.cat.Text("side."+sv.Name, nil),
			"Material": sv.Material,
		})
		drawText(a.screen, px, budgetRow(side), defStyle.Foreground(labelColor), text)
	}
}

func (a *App) phaseText(view *draftview.View) string {
	if view.Phase == draft.Playing.String() {
		return a.cat.Text("hud.phase.playing", map[string]any{"Turn": a.cat.Text("side."+view.Turn, nil)})
	}
	return a.cat.Text("hud.phase.drafting", nil)
}

func (a *App) budgetText(sv draftview.Side) string {
	return a.cat.Text("hud.budget", map[string]any{
		"Side":   a.cat.Text("side."+sv.Name, nil),
		"Budget": sv.Budget,
	})
}

// budgetFg is green with points left, gold at exactly zero, red when overdrawn.
func budgetFg(budget int) tcell.Color {
	switch {
	case budget == 0:
		return budgetGold
	case budget < 0:
		return budgetRed
	default:
		return budgetGreen
	}
}

func centerPad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
