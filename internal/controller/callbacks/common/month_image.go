package common

import (
	"bytes"
	"image/color"
	"strconv"
	"sync"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle selects the embedded Go font variant
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

const (
	imageWidth   = 1120
	headerHeight = 110
	weekdayRow   = 50
	cellHeight   = 130
	legendHeight = 70
	gridPadding  = 20
	cellGap      = 6.0
	cellRadius   = 10.0
	badgeRadius  = 18.0
)

const (
	titleFontSize   = 40.0
	weekdayFontSize = 22.0
	dayFontSize     = 26.0
	badgeFontSize   = 18.0
	legendFontSize  = 18.0
)

var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{40, 44, 52, 255}
	mutedTextColor   = color.RGBA{120, 125, 130, 255}
	cellColor        = color.RGBA{255, 255, 255, 255}
	availableColor   = color.RGBA{220, 242, 222, 255}
	unavailableColor = color.RGBA{232, 232, 232, 255}
	overrideColor    = color.RGBA{253, 230, 138, 255}
	todayBorderColor = color.RGBA{255, 99, 71, 255}
	selectedColor    = color.RGBA{59, 130, 246, 255}
	badgeColor       = color.RGBA{79, 70, 229, 255}
	badgeTextColor   = color.RGBA{255, 255, 255, 255}
)

var (
	fontsOnce   sync.Once
	parsedFonts map[FontStyle]*opentype.Font
)

func parseFonts() {
	parsedFonts = make(map[FontStyle]*opentype.Font)
	for style, data := range map[FontStyle][]byte{
		FontStyleDefault: goregular.TTF,
		FontStyleBold:    gobold.TTF,
	} {
		if f, err := opentype.Parse(data); err == nil {
			parsedFonts[style] = f
		}
	}
}

// loadFont sets a Go font face of the given size, falling back to basicfont
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsOnce.Do(parseFonts)

	if f, ok := parsedFonts[style]; ok {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// GenerateMonthImage renders the month grid of a calendar view as PNG.
// Days carry their appointment count; with availability shown the cell
// background tells open, closed and overridden days apart.
func GenerateMonthImage(view calendar.View) ([]byte, error) {
	rows := len(view.Weeks)
	height := headerHeight + weekdayRow + rows*cellHeight + legendHeight
	cellWidth := float64(imageWidth-2*gridPadding) / calendar.DaysInWeek

	dc := gg.NewContext(imageWidth, height)
	dc.SetColor(bgColor)
	dc.Clear()

	drawTitle(dc, view)
	drawWeekdays(dc, cellWidth)

	withAvailability := false
	for r, week := range view.Weeks {
		for c, day := range week {
			x := gridPadding + float64(c)*cellWidth
			y := float64(headerHeight + weekdayRow + r*cellHeight)
			if day.Availability != nil {
				withAvailability = true
			}
			drawDay(dc, day, x, y, cellWidth)
		}
	}

	drawLegend(dc, float64(height-legendHeight), withAvailability)

	return encodeImage(dc)
}

func drawTitle(dc *gg.Context, view calendar.View) {
	title := view.State.Month.String() + " " + strconv.Itoa(view.State.Year)
	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/2, 0.5, 0.5)
}

func drawWeekdays(dc *gg.Context, cellWidth float64) {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	loadFont(dc, weekdayFontSize, FontStyleBold)
	dc.SetColor(mutedTextColor)
	y := float64(headerHeight) + weekdayRow/2
	for i, name := range names {
		x := gridPadding + float64(i)*cellWidth + cellWidth/2
		dc.DrawStringAnchored(name, x, y, 0.5, 0.5)
	}
}

func drawDay(dc *gg.Context, day calendar.DayView, x, y, cellWidth float64) {
	if day.IsBlank() {
		return
	}

	w := cellWidth - cellGap
	h := float64(cellHeight) - cellGap

	dc.SetColor(dayColor(day))
	dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
	dc.Fill()

	switch {
	case day.IsSelected:
		dc.SetColor(selectedColor)
		dc.SetLineWidth(4)
		dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
		dc.Stroke()
	case day.IsToday:
		dc.SetColor(todayBorderColor)
		dc.SetLineWidth(3)
		dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
		dc.Stroke()
	}

	style := FontStyleDefault
	if day.IsToday {
		style = FontStyleBold
	}
	loadFont(dc, dayFontSize, style)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(strconv.Itoa(day.Date.Day()), x+14, y+14, 0, 1)

	if day.Appointments > 0 {
		cx := x + w - badgeRadius - 10
		cy := y + h - badgeRadius - 10
		dc.SetColor(badgeColor)
		dc.DrawCircle(cx, cy, badgeRadius)
		dc.Fill()
		loadFont(dc, badgeFontSize, FontStyleBold)
		dc.SetColor(badgeTextColor)
		dc.DrawStringAnchored(strconv.Itoa(day.Appointments), cx, cy, 0.5, 0.35)
	}
}

func dayColor(day calendar.DayView) color.Color {
	res := day.Availability
	switch {
	case res == nil:
		return cellColor
	case res.IsOverride:
		return overrideColor
	case res.IsAvailable:
		return availableColor
	default:
		return unavailableColor
	}
}

func drawLegend(dc *gg.Context, top float64, withAvailability bool) {
	type item struct {
		color color.Color
		label string
	}
	items := []item{{badgeColor, "Appointments"}, {todayBorderColor, "Today"}, {selectedColor, "Selected"}}
	if withAvailability {
		items = append(items,
			item{availableColor, "Available"},
			item{unavailableColor, "Unavailable"},
			item{overrideColor, "Date override"},
		)
	}

	loadFont(dc, legendFontSize, FontStyleDefault)
	x := float64(gridPadding)
	y := top + legendHeight/2
	for _, it := range items {
		dc.SetColor(it.color)
		dc.DrawRoundedRectangle(x, y-10, 20, 20, 4)
		dc.Fill()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(it.label, x+28, y, 0, 0.35)
		w, _ := dc.MeasureString(it.label)
		x += 28 + w + 24
	}
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
