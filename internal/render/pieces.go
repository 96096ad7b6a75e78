package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	nchess "github.com/corentings/chess/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/pieces/*.svg
var pieceFiles embed.FS

type pieceCacheKey struct {
	piece nchess.Piece
	size  int
}

var (
	pieceCache   = map[pieceCacheKey]image.Image{}
	pieceCacheMu sync.RWMutex
)

type pieceInk struct {
	fill   string
	stroke string
}

var (
	lightInk = pieceInk{fill: "#faf8f0", stroke: "#1f1f24"}
	darkInk  = pieceInk{fill: "#2b2b33", stroke: "#e6e6e6"}
)

func renderPieceImage(piece nchess.Piece, size int) (image.Image, error) {
	key := pieceCacheKey{piece: piece, size: size}

	pieceCacheMu.RLock()
	if img, ok := pieceCache[key]; ok {
		pieceCacheMu.RUnlock()
		return img, nil
	}
	pieceCacheMu.RUnlock()

	name, err := pieceAssetName(piece)
	if err != nil {
		return nil, err
	}
	data, err := pieceFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read piece asset %s: %w", name, err)
	}

	ink := lightInk
	if piece.Color() == nchess.Black {
		ink = darkInk
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(tintSVG(data, ink)))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg %s: %w", name, err)
	}
	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(size)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(size)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	pieceCacheMu.Lock()
	pieceCache[key] = img
	pieceCacheMu.Unlock()

	return img, nil
}

func pieceAssetName(piece nchess.Piece) (string, error) {
	var name string
	switch piece.Type() {
	case nchess.King:
		name = "king"
	case nchess.Queen:
		name = "queen"
	case nchess.Rook:
		name = "rook"
	case nchess.Bishop:
		name = "bishop"
	case nchess.Knight:
		name = "knight"
	case nchess.Pawn:
		name = "pawn"
	default:
		return "", fmt.Errorf("no asset for piece %v", piece)
	}
	return "assets/pieces/" + name + ".svg", nil
}

// tintSVG fills the FILL/STROKE placeholders and normalizes the spaced style
// forms oksvg fails to parse.
func tintSVG(svg []byte, ink pieceInk) []byte {
	out := bytes.ReplaceAll(svg, []byte("STROKE"), []byte(ink.stroke))
	out = bytes.ReplaceAll(out, []byte("FILL"), []byte(ink.fill))
	out = bytes.ReplaceAll(out, []byte("fill: #"), []byte("fill:#"))
	out = bytes.ReplaceAll(out, []byte("stroke: #"), []byte("stroke:#"))
	return out
}
