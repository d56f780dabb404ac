package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/limbo/waypoint/pkg/entity"
)

// Logical canvas of the trend chart. The dashboard and the goal-detail
// chart share these, so changing them changes both.
const (
	PlotWidth  = 320.0
	PlotHeight = 120.0
	PlotPadX   = 16.0
	PlotPadY   = 12.0
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TrendModel is a polyline over the fixed canvas plus an optional
// horizontal target line. Points align one-to-one with the ascending
// numeric series that produced them. MinVal and MaxVal are the raw data
// extremes for the range labels; they ignore the target even though the
// plotting scale includes it.
type TrendModel struct {
	Points  []Point         `json:"points"`
	TargetY *float64        `json:"target_y,omitempty"`
	MinVal  decimal.Decimal `json:"min_val"`
	MaxVal  decimal.Decimal `json:"max_val"`
	Unit    string          `json:"unit,omitempty"`
}

// BuildTrend maps an ascending-by-date numeric series onto the canvas
// using one linear scale. A present target extends the scale so its line
// always lands inside the padded plot area. Returns nil for an empty
// series. Pass a nil target for the goal-detail variant, which omits the
// overlay but keeps the same transform.
func BuildTrend(series []entity.Entry, target *decimal.Decimal, unit string) *TrendModel {
	if len(series) == 0 {
		return nil
	}

	minVal := *series[0].Value
	maxVal := *series[0].Value
	for _, e := range series[1:] {
		if e.Value.LessThan(minVal) {
			minVal = *e.Value
		}
		if e.Value.GreaterThan(maxVal) {
			maxVal = *e.Value
		}
	}

	scaleMin := minVal.InexactFloat64()
	scaleMax := maxVal.InexactFloat64()
	if target != nil {
		t := target.InexactFloat64()
		if t < scaleMin {
			scaleMin = t
		}
		if t > scaleMax {
			scaleMax = t
		}
	}
	valueRange := scaleMax - scaleMin
	if valueRange == 0 {
		// All values identical (or a lone entry matching its target):
		// divide by one instead of zero, points sit on the bottom edge.
		valueRange = 1
	}

	usableH := PlotHeight - 2*PlotPadY
	y := func(v float64) float64 {
		return PlotHeight - PlotPadY - ((v-scaleMin)/valueRange)*usableH
	}

	stepX := 0.0
	if len(series) > 1 {
		stepX = (PlotWidth - 2*PlotPadX) / float64(len(series)-1)
	}
	points := make([]Point, len(series))
	for i, e := range series {
		points[i] = Point{
			X: PlotPadX + float64(i)*stepX,
			Y: y(e.Value.InexactFloat64()),
		}
	}

	model := &TrendModel{
		Points: points,
		MinVal: minVal,
		MaxVal: maxVal,
		Unit:   unit,
	}
	if target != nil {
		ty := y(target.InexactFloat64())
		// The scale extension keeps the target on-plot, but gate anyway
		// in case rounding pushes it past the padding.
		if ty >= PlotPadY && ty <= PlotHeight-PlotPadY {
			model.TargetY = &ty
		}
	}
	return model
}
