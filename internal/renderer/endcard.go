package renderer

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// EndCardOptions is the call to action shown after the tour.
type EndCardOptions struct {
	Headline string
	Action   string
	URL      string // encoded as a QR code when set
}

// DefaultEndCard is the site's footer call to action.
var DefaultEndCard = EndCardOptions{
	Headline: "Ready to eliminate shipping delays?",
	Action:   "Book a Demo",
	URL:      "https://voxarel.com/demo",
}

// EndCard draws the closing card: headline, action and an optional QR code
// of the URL on the right.
func (r *Renderer) EndCard(dst *image.RGBA, opts EndCardOptions) error {
	if dst.Bounds() != r.Bounds() {
		return ErrSizeMismatch
	}
	c := newCanvas(dst)
	c.fill(r.Background)

	textX := r.Width / 10
	if opts.URL != "" {
		side := r.Height / 2
		if side > r.Width/3 {
			side = r.Width / 3
		}
		code, err := qrcode.New(opts.URL, qrcode.Medium)
		if err != nil {
			return fmt.Errorf("qr code: %w", err)
		}
		qr := code.Image(256)
		x := r.Width - side - r.Width/10
		y := (r.Height - side) / 2
		dr := image.Rect(x, y, x+side, y+side)
		// Nearest neighbour keeps module edges sharp.
		draw.NearestNeighbor.Scale(dst, dr, qr, qr.Bounds(), draw.Src, nil)
		c.text(opts.URL, x, dr.Max.Y+lineHeight+4, subText)
	}

	midY := r.Height / 2
	c.text(opts.Headline, textX, midY-lineHeight, titleText)
	if opts.Action != "" {
		w, h := cardSize(opts.Action, "")
		btn := image.Rect(textX, midY+8, textX+w, midY+8+h)
		c.fillRect(btn, r.Accent)
		c.text(opts.Action, textX+cardPad, btn.Min.Y+cardPad+lineHeight-3, r.Background)
	}
	return nil
}
