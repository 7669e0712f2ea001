// Package scroll keeps the timeline header, chart body and side list
// scrolled together.
package scroll

import "math"

// Region is a scrollable area measured the way a browser element is:
// offsets, scrollable extent, visible (client) extent and outer extent.
// A gap between outer and client width is a vertical scrollbar.
type Region interface {
	ScrollLeft() float64
	SetScrollLeft(v float64)
	ScrollTop() float64
	SetScrollTop(v float64)
	ScrollWidth() float64
	ScrollHeight() float64
	ClientWidth() float64
	ClientHeight() float64
	OffsetWidth() float64
	OffsetHeight() float64
}

// PaddedRegion accepts right padding, used to mirror another region's
// scrollbar gutter.
type PaddedRegion interface {
	Region
	PaddingRight() float64
	SetPaddingRight(px float64)
}

// MaxScrollLeft is the largest horizontal offset r accepts.
func MaxScrollLeft(r Region) float64 {
	return math.Max(0, r.ScrollWidth()-r.ClientWidth())
}

// MaxScrollTop is the largest vertical offset r accepts.
func MaxScrollTop(r Region) float64 {
	return math.Max(0, r.ScrollHeight()-r.ClientHeight())
}

// Gutter is r's vertical scrollbar width.
func Gutter(r Region) float64 {
	return math.Max(0, r.OffsetWidth()-r.ClientWidth())
}

func laidOut(r Region) bool {
	return r.ClientWidth() > 0 && r.ClientHeight() > 0
}

// Viewport is an in-memory Region. Offsets are clamped like a browser's and
// a change of offset dispatches the scroll callback asynchronously.
type Viewport struct {
	Name string

	left, top          float64
	contentW, contentH float64
	outerW, outerH     float64
	padRight           float64
	scrollbar          float64

	onScroll func()
	dispatch func(func())
}

// NewViewport creates a viewport whose scroll events are posted to loop.
// A nil loop delivers no events.
func NewViewport(name string, loop *Loop) *Viewport {
	v := &Viewport{Name: name}
	if loop != nil {
		v.dispatch = loop.Post
	}
	return v
}

// OnScroll sets the scroll event callback.
func (v *Viewport) OnScroll(fn func()) { v.onScroll = fn }

// SetScrollbar sets the width reserved for a vertical scrollbar whenever the
// content is taller than the viewport.
func (v *Viewport) SetScrollbar(width float64) {
	v.scrollbar = width
	v.clamp()
}

// SetContentSize sets the scrollable content extent.
func (v *Viewport) SetContentSize(w, h float64) {
	v.contentW, v.contentH = w, h
	v.clamp()
}

// SetOuterSize sets the outer box size.
func (v *Viewport) SetOuterSize(w, h float64) {
	v.outerW, v.outerH = w, h
	v.clamp()
}

func (v *Viewport) ScrollLeft() float64 { return v.left }
func (v *Viewport) ScrollTop() float64  { return v.top }

func (v *Viewport) SetScrollLeft(x float64) {
	x = math.Min(math.Max(0, x), MaxScrollLeft(v))
	if x != v.left {
		v.left = x
		v.fire()
	}
}

func (v *Viewport) SetScrollTop(y float64) {
	y = math.Min(math.Max(0, y), MaxScrollTop(v))
	if y != v.top {
		v.top = y
		v.fire()
	}
}

// ScrollBy moves both offsets, as user input would.
func (v *Viewport) ScrollBy(dx, dy float64) {
	if dx != 0 {
		v.SetScrollLeft(v.left + dx)
	}
	if dy != 0 {
		v.SetScrollTop(v.top + dy)
	}
}

func (v *Viewport) ScrollWidth() float64 {
	return math.Max(v.contentW, v.ClientWidth())
}

func (v *Viewport) ScrollHeight() float64 {
	return math.Max(v.contentH, v.ClientHeight())
}

func (v *Viewport) ClientWidth() float64 {
	return math.Max(0, v.outerW-v.padRight-v.activeScrollbar())
}

func (v *Viewport) ClientHeight() float64 { return v.outerH }
func (v *Viewport) OffsetWidth() float64  { return v.outerW }
func (v *Viewport) OffsetHeight() float64 { return v.outerH }

func (v *Viewport) PaddingRight() float64 { return v.padRight }

func (v *Viewport) SetPaddingRight(px float64) {
	v.padRight = math.Max(0, px)
	v.clamp()
}

func (v *Viewport) activeScrollbar() float64 {
	if v.scrollbar > 0 && v.contentH > v.outerH {
		return v.scrollbar
	}
	return 0
}

// clamp pulls offsets back inside the scrollable range after a geometry
// change, firing a scroll event if they moved.
func (v *Viewport) clamp() {
	left := math.Min(v.left, MaxScrollLeft(v))
	top := math.Min(v.top, MaxScrollTop(v))
	if left != v.left || top != v.top {
		v.left, v.top = left, top
		v.fire()
	}
}

func (v *Viewport) fire() {
	if v.onScroll != nil && v.dispatch != nil {
		v.dispatch(v.onScroll)
	}
}
