package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	nchess "github.com/corentings/chess/v2"
	"github.com/park285/draft-chess/pkg/draftview"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var ErrNilView = errors.New("view is nil")

// Options carries pre-rendered HUD strings. Empty fields fall back to plain
// labels derived from the view.
type Options struct {
	Title      string
	Status     string
	LightLabel string
	DarkLabel  string
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, view *draftview.View, opts Options) ([]byte, error)
}

type pngRenderer struct {
	face font.Face
}

func NewPNGRenderer() BoardRenderer {
	return &pngRenderer{face: basicfont.Face7x13}
}

const (
	squareSize   = 64
	boardSize    = squareSize * 8
	sideMargin   = 32
	topMargin    = 72
	bottomMargin = 72
	panelHeight  = 30
	panelRadius  = 10
	panelPadding = 16
)

// Layout reports where the board sits inside the rendered image.
func Layout() (origin image.Point, tile int, bounds image.Rectangle) {
	return image.Pt(sideMargin, topMargin), squareSize,
		image.Rect(0, 0, boardSize+sideMargin*2, boardSize+topMargin+bottomMargin)
}

func (r *pngRenderer) RenderPNG(ctx context.Context, view *draftview.View, opts Options) ([]byte, error) {
	if view == nil {
		return nil, ErrNilView
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	origin, _, bounds := Layout()
	boardRect := image.Rect(origin.X, origin.Y, origin.X+boardSize, origin.Y+boardSize)

	img := image.NewRGBA(bounds)
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	drawSquares(img, origin)
	if view.Phase == "drafting" {
		drawDraftBands(img, view, origin)
	}
	if err := drawPieces(img, view, origin); err != nil {
		return nil, err
	}
	drawSelection(img, view, origin)
	r.drawCoordinates(img, origin)
	r.drawHUD(img, view, opts, boardRect)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return pngBuf.Bytes(), nil
}

var (
	lightSquare       = color.RGBA{R: 0xeb, G: 0xec, B: 0xd3, A: 255}
	darkSquare        = color.RGBA{R: 0x7a, G: 0x94, B: 0x5a, A: 255}
	backgroundColor   = color.RGBA{R: 24, G: 26, B: 36, A: 255}
	lightBandTint     = color.NRGBA{R: 255, G: 255, B: 255, A: 48}
	darkBandTint      = color.NRGBA{R: 0, G: 0, B: 0, A: 40}
	lightMoveDot      = color.NRGBA{R: 255, G: 255, B: 255, A: 153}
	darkMoveDot       = color.NRGBA{R: 0, G: 0, B: 0, A: 77}
	selectionColor    = color.NRGBA{R: 0x4a, G: 0xde, B: 0x80, A: 255}
	hudPanelColor     = color.NRGBA{R: 28, G: 31, B: 46, A: 250}
	hudShadowColor    = color.NRGBA{R: 0, G: 0, B: 0, A: 50}
	hudTextPrimary    = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	budgetPositive    = color.NRGBA{R: 0x4a, G: 0xde, B: 0x80, A: 255}
	budgetZero        = color.NRGBA{R: 0xfc, G: 0xd3, B: 0x4d, A: 255}
	budgetNegative    = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 255}
	coordinateColor   = color.NRGBA{R: 180, G: 186, B: 204, A: 255}
	readyOutlineColor = color.NRGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 255}
)

// chessSquare maps a view square onto corentings/chess: rank 0 is rank 8.
func chessSquare(sq draftview.Square) nchess.Square {
	return nchess.NewSquare(nchess.File(sq.File), nchess.Rank(7-sq.Rank))
}

func squareRect(sq nchess.Square, origin image.Point) image.Rectangle {
	row := 7 - int(sq.Rank())
	col := int(sq.File())
	x := origin.X + col*squareSize
	y := origin.Y + row*squareSize
	return image.Rect(x, y, x+squareSize, y+squareSize)
}

func squareColor(sq nchess.Square) color.Color {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return darkSquare
	}
	return lightSquare
}

func drawSquares(dst imagedraw.Image, origin image.Point) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := chessSquare(draftview.Square{Rank: r, File: f})
			imagedraw.Draw(dst, squareRect(sq, origin), image.NewUniform(squareColor(sq)), image.Point{}, imagedraw.Src)
		}
	}
}

// drawDraftBands tints the ranks each not-ready side may still draft on.
func drawDraftBands(img *image.RGBA, view *draftview.View, origin image.Point) {
	for _, side := range []draftview.Side{view.Light, view.Dark} {
		if side.Ready {
			continue
		}
		tint := lightBandTint
		if side.Name == "dark" {
			tint = darkBandTint
		}
		top := squareRect(chessSquare(draftview.Square{Rank: side.BandFrom}), origin)
		bottom := squareRect(chessSquare(draftview.Square{Rank: side.BandTo, File: 7}), origin)
		imagedraw.Draw(img, top.Union(bottom), image.NewUniform(tint), image.Point{}, imagedraw.Over)
	}
}

// chessPiece maps a view piece onto the library's piece so assets and tints
// can be keyed by it.
func chessPiece(p draftview.Piece) (nchess.Piece, error) {
	pt, ok := pieceTypes[p.Kind]
	if !ok {
		return nchess.NoPiece, fmt.Errorf("unknown piece kind %q", p.Kind)
	}
	c := nchess.White
	if p.Side == "dark" {
		c = nchess.Black
	}
	return nchess.NewPiece(pt, c), nil
}

var pieceTypes = map[string]nchess.PieceType{
	"king":   nchess.King,
	"queen":  nchess.Queen,
	"rook":   nchess.Rook,
	"bishop": nchess.Bishop,
	"knight": nchess.Knight,
	"pawn":   nchess.Pawn,
}

func drawPieces(dst imagedraw.Image, view *draftview.View, origin image.Point) error {
	for _, p := range view.Pieces {
		piece, err := chessPiece(p)
		if err != nil {
			return err
		}
		img, err := renderPieceImage(piece, squareSize)
		if err != nil {
			return err
		}
		imagedraw.Draw(dst, squareRect(chessSquare(p.Square), origin), img, image.Point{}, imagedraw.Over)
	}
	return nil
}

func drawSelection(img *image.RGBA, view *draftview.View, origin image.Point) {
	if view.Selected == nil {
		return
	}
	drawOutline(img, squareRect(chessSquare(*view.Selected), origin), 4, selectionColor)

	dot := lightMoveDot
	if view.Turn == "dark" {
		dot = darkMoveDot
	}
	for _, m := range view.LegalMoves {
		rect := squareRect(chessSquare(m), origin)
		center := image.Pt(rect.Min.X+squareSize/2, rect.Min.Y+squareSize/2)
		drawDisc(img, center, squareSize/4, dot)
	}
}

func (r *pngRenderer) drawCoordinates(img *image.RGBA, origin image.Point) {
	drawer := &font.Drawer{Dst: img, Face: r.face, Src: image.NewUniform(coordinateColor)}
	ascent := r.face.Metrics().Ascent.Ceil()
	for i := 0; i < 8; i++ {
		sq := chessSquare(draftview.Square{Rank: i, File: i})
		rect := squareRect(sq, origin)
		drawLabel(drawer, sq.Rank().String(), nil, origin.X-sideMargin/2, rect.Min.Y+squareSize/2+ascent/2)
		drawLabel(drawer, sq.File().String(), nil, rect.Min.X+squareSize/2, origin.Y+boardSize+ascent+4)
	}
}

func (r *pngRenderer) drawHUD(img *image.RGBA, view *draftview.View, opts Options, boardRect image.Rectangle) {
	drawer := &font.Drawer{Dst: img, Face: r.face}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Draft Chess"
	}
	status := strings.TrimSpace(opts.Status)
	if status == "" {
		status = view.Phase
		if view.Phase == "playing" {
			status = view.Turn + " to move"
		}
	}

	topBottom := boardRect.Min.Y - 16
	titleRect := r.panelRect(drawer, title, boardRect.Min.X, topBottom, boardRect.Dx()/2-8)
	statusWidth := r.panelWidth(drawer, status, boardRect.Dx()/2-8)
	statusRect := image.Rect(boardRect.Max.X-statusWidth, topBottom-panelHeight, boardRect.Max.X, topBottom)

	drawPanelText(img, drawer, titleRect, title, hudTextPrimary)
	drawPanelText(img, drawer, statusRect, status, hudTextPrimary)

	bottomTop := boardRect.Max.Y + 28
	for i, side := range []draftview.Side{view.Light, view.Dark} {
		label := opts.LightLabel
		if i == 1 {
			label = opts.DarkLabel
		}
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("%s %d", side.Name, side.Budget)
		}
		width := r.panelWidth(drawer, label, boardRect.Dx()/2-8)
		x := boardRect.Min.X
		if i == 1 {
			x = boardRect.Max.X - width
		}
		rect := image.Rect(x, bottomTop, x+width, bottomTop+panelHeight)
		drawPanelText(img, drawer, rect, label, budgetColor(side.Budget))
		if side.Ready && view.Phase == "drafting" {
			drawOutline(img, rect, 2, readyOutlineColor)
		}
	}
}

func (r *pngRenderer) panelWidth(drawer *font.Drawer, text string, maxWidth int) int {
	w := drawer.MeasureString(text).Round() + panelPadding*2
	if w > maxWidth {
		w = maxWidth
	}
	return w
}

func (r *pngRenderer) panelRect(drawer *font.Drawer, text string, left, bottom, maxWidth int) image.Rectangle {
	w := r.panelWidth(drawer, text, maxWidth)
	return image.Rect(left, bottom-panelHeight, left+w, bottom)
}

func drawPanelText(img *image.RGBA, drawer *font.Drawer, rect image.Rectangle, text string, clr color.Color) {
	drawRoundedPanel(img, rect.Add(image.Pt(0, 4)), panelRadius, hudShadowColor)
	drawRoundedPanel(img, rect, panelRadius, hudPanelColor)
	text = fitText(drawer.Face, text, rect.Dx()-panelPadding*2)
	drawLabel(drawer, text, clr, rect.Min.X+rect.Dx()/2, panelBaseline(drawer.Face, rect))
}

// budgetColor is green while points remain, gold at exactly zero, red when overdrawn.
func budgetColor(budget int) color.Color {
	switch {
	case budget == 0:
		return budgetZero
	case budget < 0:
		return budgetNegative
	default:
		return budgetPositive
	}
}
