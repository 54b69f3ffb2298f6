/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"notepadino/internal/document"
	"notepadino/internal/textlayout"
)

// RenderPage rasterises one page at scale pixels per point (1 = 72 dpi).
func RenderPage(pg textlayout.Page, setup textlayout.PageSetup, fonts *textlayout.FontLibrary, scale float64) (*image.RGBA, error) {
	if fonts == nil {
		return nil, fmt.Errorf("font library is nil")
	}
	if scale <= 0 {
		scale = 1
	}
	pixW := int(math.Round(setup.Width * scale))
	pixH := int(math.Round(setup.Height * scale))
	if pixW <= 0 || pixH <= 0 {
		return nil, fmt.Errorf("invalid page size %gx%g", setup.Width, setup.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	px := func(v float64) int { return int(math.Round(v * scale)) }
	for _, ln := range pg.Lines {
		for _, fr := range ln.Fragments {
			if bg := fr.Format.Background; bg.IsSet() {
				fillRect(img, px(fr.X), px(ln.Top), px(fr.X+fr.Width)-1, px(ln.Top+ln.Height)-1, toRGBA(bg))
			}
			face, err := fonts.Face(textlayout.SpecFor(fr.Format), 72*scale)
			if err != nil {
				return nil, err
			}
			fg := foreground(fr.Format)
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(toRGBA(fg)),
				Face: face,
				Dot:  fixed.Point26_6{X: fixed.Int26_6(fr.X * scale * 64), Y: fixed.Int26_6(ln.Baseline * scale * 64)},
			}
			d.DrawString(fr.Text)
			size := sizeOf(fr.Format)
			thick := int(math.Max(1, math.Round(size/15*scale)))
			if fr.Format.Underline {
				y := px(ln.Baseline + size*underlineOffset)
				fillRect(img, px(fr.X), y, px(fr.X+fr.Width)-1, y+thick-1, toRGBA(fg))
			}
			if fr.Format.Strike {
				y := px(ln.Baseline - size*strikeOffset)
				fillRect(img, px(fr.X), y, px(fr.X+fr.Width)-1, y+thick-1, toRGBA(fg))
			}
		}
	}
	return img, nil
}

// RenderPages rasterises every page.
func RenderPages(pages []textlayout.Page, setup textlayout.PageSetup, fonts *textlayout.FontLibrary, scale float64) ([]image.Image, error) {
	out := make([]image.Image, 0, len(pages))
	for _, pg := range pages {
		img, err := RenderPage(pg, setup, fonts, scale)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", pg.Number, err)
		}
		out = append(out, img)
	}
	return out, nil
}

func toRGBA(c document.Color) color.RGBA {
	n := color.RGBAModel.Convert(c).(color.RGBA)
	return n
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(img.Bounds())
	draw.Draw(img, r, &image.Uniform{C: col}, image.Point{}, draw.Over)
}
