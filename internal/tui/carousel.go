package tui

import (
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/store"
	"github.com/sirupsen/logrus"
)

const (
	cardGap          = 1
	cardInnerHeight  = 2
	arrowGutter      = 2
	releaseAnimation = 300 * time.Millisecond
	frameInterval    = 16 * time.Millisecond
)

type MapCard struct {
	ID        int
	Name      string
	ImagePath string
}

type carouselAnimation struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

type dragState struct {
	startX      int
	startOffset float64
	lastX       int
	lastTime    time.Time
	velocity    float64
	moved       bool
}

// Carousel is a horizontally scrolled row of map cards. The track is moved by a single
// offset in cells, 0 is fully left aligned and negative values scroll to the right.
type Carousel struct {
	cfg    *config.Config
	colors *ColorsManager

	cards  []MapCard
	active int
	width  int

	offset    float64
	drag      *dragState
	anim      *carouselAnimation
	animGen   int
	showLeft  bool
	showRight bool

	now func() time.Time
}

func NewCarousel(cfg *config.Config, colors *ColorsManager) *Carousel {
	return &Carousel{
		cfg:    cfg,
		colors: colors,
		active: -1,
		now:    time.Now,
	}
}

func (c *Carousel) settings() *config.CarouselSection {
	return c.cfg.Get().Carousel
}

func (c *Carousel) cardWidth() int {
	return *c.settings().CardWidth
}

// SetMaps replaces the cards, selects the first one and reports it.
func (c *Carousel) SetMaps(maps []store.Map) tea.Cmd {
	c.cards = make([]MapCard, 0, len(maps))
	for _, m := range maps {
		c.cards = append(c.cards, MapCard{ID: m.ID, Name: m.Name, ImagePath: m.ImagePath})
	}
	c.offset = 0
	c.anim = nil
	c.drag = nil
	c.animGen++
	c.active = -1
	c.updateArrows()

	if len(c.cards) == 0 {
		return nil
	}
	return c.Select(0)
}

func (c *Carousel) Cards() []MapCard {
	return c.cards
}

func (c *Carousel) ActiveIndex() int {
	return c.active
}

// ActiveMapID returns the id of the card carrying the active marker.
func (c *Carousel) ActiveMapID() (int, bool) {
	if c.active < 0 || c.active >= len(c.cards) {
		return 0, false
	}
	return c.cards[c.active].ID, true
}

func (c *Carousel) ActiveMapName() string {
	if c.active < 0 || c.active >= len(c.cards) {
		return ""
	}
	return c.cards[c.active].Name
}

// Select moves the active marker to index, scrolls it into view and reports the selection.
func (c *Carousel) Select(index int) tea.Cmd {
	if index < 0 || index >= len(c.cards) {
		return nil
	}
	logrus.Debugf("Selecting map %d at index %d", c.cards[index].ID, index)
	c.active = index
	return tea.Batch(c.scrollIntoView(index), mapSelectedCmd(c.cards[index].ID, index))
}

func (c *Carousel) Offset() float64 {
	return c.offset
}

func (c *Carousel) Arrows() (bool, bool) {
	return c.showLeft, c.showRight
}

func (c *Carousel) Dragging() bool {
	return c.drag != nil
}

func (c *Carousel) SetWidth(width int) {
	c.width = width
	c.offset = c.clamp(c.offset)
	c.updateArrows()
}

func (c *Carousel) Height() int {
	return cardInnerHeight + 2
}

func (c *Carousel) viewportWidth() int {
	return max(0, c.width-2*arrowGutter)
}

func (c *Carousel) trackWidth() int {
	if len(c.cards) == 0 {
		return 0
	}
	return len(c.cards)*(c.cardWidth()+cardGap) - cardGap
}

func (c *Carousel) minOffset() float64 {
	return math.Min(0, float64(c.viewportWidth()-c.trackWidth()))
}

func (c *Carousel) clamp(offset float64) float64 {
	return math.Max(c.minOffset(), math.Min(0, offset))
}

func (c *Carousel) updateArrows() {
	c.showLeft = c.offset < 0
	c.showRight = c.offset > c.minOffset()+*c.settings().ArrowTolerance
}

// Page scrolls by a fraction of the visible width, direction is -1 for left and 1 for right.
func (c *Carousel) Page(direction int) tea.Cmd {
	step := float64(c.viewportWidth()) * *c.settings().PageFraction
	target := c.clamp(c.offset - float64(direction)*step)
	return c.animateTo(target, time.Duration(*c.settings().PageAnimationMs)*time.Millisecond)
}

func (c *Carousel) scrollIntoView(index int) tea.Cmd {
	left := float64(index * (c.cardWidth() + cardGap))
	right := left + float64(c.cardWidth())
	viewport := float64(c.viewportWidth())

	target := c.offset
	switch {
	case left < -c.offset:
		target = -left
	case right > -c.offset+viewport:
		target = viewport - right
	}
	target = c.clamp(target)
	if target == c.offset {
		return nil
	}
	return c.animateTo(target, releaseAnimation)
}

func (c *Carousel) animateTo(target float64, duration time.Duration) tea.Cmd {
	c.animGen++
	if duration <= 0 || target == c.offset {
		c.offset = target
		c.anim = nil
		c.updateArrows()
		return nil
	}
	c.anim = &carouselAnimation{from: c.offset, to: target, start: c.now(), duration: duration}
	return c.tick()
}

func (c *Carousel) tick() tea.Cmd {
	gen := c.animGen
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return carouselTick{gen: gen}
	})
}

func (c *Carousel) step() tea.Cmd {
	if c.anim == nil {
		return nil
	}
	progress := float64(c.now().Sub(c.anim.start)) / float64(c.anim.duration)
	if progress >= 1 {
		c.offset = c.clamp(c.anim.to)
		c.anim = nil
		c.updateArrows()
		return nil
	}
	c.offset = c.clamp(c.anim.from + (c.anim.to-c.anim.from)*ease(progress))
	return c.tick()
}

// ease approximates the css "ease" timing curve.
func ease(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func (c *Carousel) cardAt(x int) int {
	if x < arrowGutter || x >= arrowGutter+c.viewportWidth() {
		return -1
	}
	trackX := float64(x-arrowGutter) - c.offset
	if trackX < 0 {
		return -1
	}
	pitch := c.cardWidth() + cardGap
	index := int(trackX) / pitch
	if index >= len(c.cards) || int(trackX)%pitch >= c.cardWidth() {
		return -1
	}
	return index
}

// HandleMouse takes events in carousel coordinates. Drag motion outside of the
// carousel is still expected while a drag is in progress.
func (c *Carousel) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return c.press(msg.X)
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			return c.animateTo(c.clamp(c.offset+float64(c.cardWidth())), releaseAnimation)
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			return c.animateTo(c.clamp(c.offset-float64(c.cardWidth())), releaseAnimation)
		}
	case tea.MouseActionMotion:
		c.move(msg.X)
	case tea.MouseActionRelease:
		return c.release(msg.X)
	}
	return nil
}

func (c *Carousel) press(x int) tea.Cmd {
	if x < arrowGutter && c.showLeft {
		return c.Page(-1)
	}
	if x >= arrowGutter+c.viewportWidth() && c.showRight {
		return c.Page(1)
	}

	c.anim = nil
	c.animGen++
	c.drag = &dragState{
		startX:      x,
		startOffset: c.offset,
		lastX:       x,
		lastTime:    c.now(),
	}
	return nil
}

func (c *Carousel) move(x int) {
	if c.drag == nil {
		return
	}
	now := c.now()
	if elapsed := now.Sub(c.drag.lastTime).Milliseconds(); elapsed > 0 {
		c.drag.velocity = float64(x-c.drag.lastX) / float64(elapsed)
	}
	c.drag.lastX = x
	c.drag.lastTime = now
	if x != c.drag.startX {
		c.drag.moved = true
	}

	c.offset = c.clamp(c.drag.startOffset + float64(x-c.drag.startX))
	c.updateArrows()
}

func (c *Carousel) release(x int) tea.Cmd {
	if c.drag == nil {
		return nil
	}
	drag := c.drag
	c.drag = nil

	if !drag.moved {
		if index := c.cardAt(x); index >= 0 {
			return c.Select(index)
		}
		return nil
	}

	target := c.offset
	if math.Abs(drag.velocity) > *c.settings().FlickThreshold {
		target = c.clamp(c.offset + drag.velocity*float64(*c.settings().MomentumMs))
		logrus.Debugf("Carousel flick with velocity %.2f to %.2f", drag.velocity, target)
	}
	return c.animateTo(target, releaseAnimation)
}

func (c *Carousel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case carouselTick:
		if msg.gen != c.animGen {
			return nil
		}
		return c.step()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, rootKeyMap.Left):
			return c.Select(c.active - 1)
		case key.Matches(msg, rootKeyMap.Right):
			return c.Select(c.active + 1)
		case key.Matches(msg, rootKeyMap.PageLeft):
			return c.Page(-1)
		case key.Matches(msg, rootKeyMap.PageRight):
			return c.Page(1)
		}
	}
	return nil
}

func (c *Carousel) renderCard(card MapCard, active bool) string {
	width := c.cardWidth() - 2
	name := ansi.Truncate(card.Name, width, "…")
	image := ansi.Truncate(filepath.Base(card.ImagePath), width, "…")
	if card.ImagePath == "" {
		image = ""
	}

	nameStyle := c.colors.ListItemUnselected()
	if active {
		nameStyle = c.colors.ListItemSelected()
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		nameStyle.Render(name), c.colors.MutedStyle().Render(image))
	return c.colors.CardStyle(active).Width(width).Height(cardInnerHeight).Render(content)
}

func (c *Carousel) View() string {
	height := c.Height()
	viewport := c.viewportWidth()

	if len(c.cards) == 0 {
		empty := c.colors.MutedStyle().Render("No maps available")
		return lipgloss.Place(c.width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	rendered := make([]string, 0, 2*len(c.cards))
	for i, card := range c.cards {
		if i > 0 {
			rendered = append(rendered, strings.Repeat(" ", cardGap))
		}
		rendered = append(rendered, c.renderCard(card, i == c.active))
	}
	track := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, rendered...), "\n")

	start := int(math.Round(-c.offset))
	left, right := strings.Repeat(" ", arrowGutter), strings.Repeat(" ", arrowGutter)
	lines := make([]string, 0, height)
	for i := 0; i < height; i++ {
		line := ""
		if i < len(track) {
			line = ansi.Cut(track[i], start, start+viewport)
		}
		line += strings.Repeat(" ", max(0, viewport-ansi.StringWidth(line)))

		l, r := left, right
		if i == height/2 {
			if c.showLeft {
				l = c.colors.TitleStyle().Render(leftArrow) + " "
			}
			if c.showRight {
				r = " " + c.colors.TitleStyle().Render(rightArrow)
			}
		}
		lines = append(lines, l+line+r)
	}
	return strings.Join(lines, "\n")
}
