package tui

const (
	menuWidth     = 24
	minListHeight = 3
	panelBorder   = 2
	promptWidth   = 56
	promptHeight  = 12
)

// Layout keeps the screen geometry. The root view records where panels were drawn
// so mouse events can be mapped back to widgets.
type Layout struct {
	visibleWidth  int
	visibleHeight int
	reservedTop   int
	reservedBelow int
	menuOpen      bool

	carouselTop    int
	carouselHeight int
	listTop        int
	listHeight     int
}

func NewLayout() *Layout {
	return &Layout{}
}

func (l *Layout) SetWidth(width int) {
	l.visibleWidth = width
}

func (l *Layout) SetHeight(height int) {
	l.visibleHeight = height
}

func (l *Layout) SetReservedTop(lines int) {
	l.reservedTop = lines
}

func (l *Layout) SetReservedBelow(lines int) {
	l.reservedBelow = lines
}

func (l *Layout) SetMenuOpen(open bool) {
	l.menuOpen = open
}

func (l *Layout) AvailableWidth() int {
	return l.visibleWidth
}

func (l *Layout) AvailableHeight() int {
	return max(0, l.visibleHeight-l.reservedTop-l.reservedBelow)
}

func (l *Layout) MenuWidth() int {
	if !l.menuOpen {
		return 0
	}
	return menuWidth
}

// MainLeft is the first column of the carousel and list panels.
func (l *Layout) MainLeft() int {
	return l.MenuWidth()
}

// MainInnerWidth is the content width of the carousel and list panels.
func (l *Layout) MainInnerWidth() int {
	return max(0, l.visibleWidth-l.MenuWidth()-panelBorder)
}

func (l *Layout) ListInnerHeight(carouselInnerHeight int) int {
	return max(minListHeight, l.AvailableHeight()-carouselInnerHeight-2*panelBorder)
}

func (l *Layout) PromptWidth() int {
	return min(promptWidth, max(0, l.visibleWidth-panelBorder))
}

func (l *Layout) PromptHeight() int {
	return min(promptHeight, max(0, l.visibleHeight-panelBorder))
}

// RecordPanels stores the inner rows of the drawn panels.
func (l *Layout) RecordPanels(carouselTop, carouselHeight, listTop, listHeight int) {
	l.carouselTop = carouselTop
	l.carouselHeight = carouselHeight
	l.listTop = listTop
	l.listHeight = listHeight
}

// InCarousel maps a screen position onto carousel content coordinates.
func (l *Layout) InCarousel(x, y int) (int, int, bool) {
	lx, ly := x-l.MainLeft()-1, y-l.carouselTop
	return lx, ly, ly >= 0 && ly < l.carouselHeight && lx >= 0 && lx < l.MainInnerWidth()
}

// InList maps a screen position onto shortcut list content coordinates.
func (l *Layout) InList(x, y int) (int, int, bool) {
	lx, ly := x-l.MainLeft()-1, y-l.listTop
	return lx, ly, ly >= 0 && ly < l.listHeight && lx >= 0 && lx < l.MainInnerWidth()
}

// InMenu maps a screen position onto the side menu rows.
func (l *Layout) InMenu(x, y int) (int, bool) {
	if !l.menuOpen {
		return 0, false
	}
	ly := y - l.reservedTop - 1
	return ly, x >= 0 && x < menuWidth && ly >= 0
}
