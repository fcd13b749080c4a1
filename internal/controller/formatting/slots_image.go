package formatting

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Размеры картинки дня
const (
	slotsImageWidth   = 420
	slotsHeaderHeight = 44
	slotRowHeight     = 30
	slotsFooterHeight = 36
	slotsPaddingX     = 16
	slotBorderRadius  = 6.0
	slotLabelMaxLen   = 32
)

var (
	imageBgColor      = color.RGBA{245, 246, 248, 255}
	imageTextColor    = color.RGBA{80, 85, 90, 255}
	slotFreeColor     = color.RGBA{133, 193, 85, 220}
	slotBookedColor   = color.RGBA{255, 182, 193, 255}
	slotTextColor     = color.RGBA{20, 24, 28, 230}
	slotBookedTextClr = color.RGBA{120, 40, 50, 255}
)

// RenderSlotsImage рисует слоты дня в PNG.
// basicfont содержит только ASCII, остальные символы заменяются на '?'.
func RenderSlotsImage(date time.Time, slots []model.TimeSlot, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}

	rows := len(slots)
	if rows == 0 {
		rows = 1
	}
	height := slotsHeaderHeight + rows*slotRowHeight + slotsFooterHeight

	dc := gg.NewContext(slotsImageWidth, height)
	dc.SetColor(imageBgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(imageTextColor)
	dc.DrawStringAnchored(date.Format("2006-01-02 Monday"), slotsImageWidth/2, slotsHeaderHeight/2, 0.5, 0.5)

	if len(slots) == 0 {
		dc.DrawStringAnchored("no slots", slotsImageWidth/2, slotsHeaderHeight+slotRowHeight/2, 0.5, 0.5)
	}

	free := 0
	for i, slot := range slots {
		drawSlotRow(dc, slot, loc, float64(slotsHeaderHeight+i*slotRowHeight))
		if slot.Available {
			free++
		}
	}

	dc.SetColor(imageTextColor)
	footer := fmt.Sprintf("free: %d of %d", free, len(slots))
	dc.DrawStringAnchored(footer, slotsPaddingX, float64(height-slotsFooterHeight/2), 0, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode slots image: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSlotRow(dc *gg.Context, slot model.TimeSlot, loc *time.Location, y float64) {
	fill, text := slotFreeColor, slotTextColor
	if !slot.Available {
		fill, text = slotBookedColor, slotBookedTextClr
	}

	w := float64(slotsImageWidth - 2*slotsPaddingX)
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(slotsPaddingX, y+2, w, slotRowHeight-4, slotBorderRadius)
	dc.Fill()

	label := FormatTimeRange(slot.StartTime.In(loc), slot.EndTime.In(loc)) + "  " + asciiLabel(slot.Title, slotLabelMaxLen)
	dc.SetColor(text)
	dc.DrawStringAnchored(label, slotsPaddingX+8, y+slotRowHeight/2, 0, 0.5)
}

// asciiLabel обрезает строку до max рун и заменяет не-ASCII на '?'
func asciiLabel(s string, max int) string {
	var sb strings.Builder
	n := 0
	for _, r := range s {
		if n == max {
			sb.WriteString("...")
			break
		}
		if r > 0x7e || r < 0x20 {
			r = '?'
		}
		sb.WriteRune(r)
		n++
	}
	return sb.String()
}
