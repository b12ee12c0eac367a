package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mynades/mynades/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func testMaps(n int) []store.Map {
	maps := make([]store.Map, 0, n)
	for i := 1; i <= n; i++ {
		maps = append(maps, store.Map{ID: i, Name: fmt.Sprintf("Map %d", i)})
	}
	return maps
}

// newTestCarousel has a 40 cell viewport, with five 16 cell cards the track is 84 cells
// wide so the offset lives in [-44, 0].
func newTestCarousel(t *testing.T, maps int) (*Carousel, *fakeClock) {
	t.Helper()
	cfg := fastConfig(t)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCarousel(cfg, NewColorsManager(cfg))
	c.now = clock.Now
	c.SetWidth(40 + 2*arrowGutter)
	c.SetMaps(testMaps(maps))
	return c, clock
}

func press(x int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

// settle finishes the running animation.
func settle(c *Carousel, clock *fakeClock) {
	clock.Advance(time.Second)
	c.Update(carouselTick{gen: c.animGen})
}

func TestCarousel_SetMaps(t *testing.T) {
	c, _ := newTestCarousel(t, 5)

	id, ok := c.ActiveMapID()
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, "Map 1", c.ActiveMapName())
	assert.InDelta(t, 0.0, c.Offset(), 0.001)

	left, right := c.Arrows()
	assert.False(t, left)
	assert.True(t, right)
}

func TestCarousel_EmptyMaps(t *testing.T) {
	c, _ := newTestCarousel(t, 0)

	_, ok := c.ActiveMapID()
	assert.False(t, ok)
	left, right := c.Arrows()
	assert.False(t, left)
	assert.False(t, right)
	assert.Contains(t, c.View(), "No maps available")
}

func TestCarousel_DragStaysWithinBounds(t *testing.T) {
	tests := []struct {
		name      string
		maps      int
		positions []int
		minOffset float64
	}{
		{
			name:      "long track",
			maps:      5,
			positions: []int{-100, 15, 200, -3, 30, -500},
			minOffset: -44,
		},
		{
			name:      "track shorter than the viewport",
			maps:      2,
			positions: []int{-100, 60, 5},
			minOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newTestCarousel(t, tt.maps)
			c.HandleMouse(press(20))
			require.True(t, c.Dragging())

			for _, x := range tt.positions {
				clock.Advance(50 * time.Millisecond)
				c.HandleMouse(motion(x))
				assert.GreaterOrEqual(t, c.Offset(), tt.minOffset)
				assert.LessOrEqual(t, c.Offset(), 0.0)
			}
			c.HandleMouse(release(tt.positions[len(tt.positions)-1]))
			settle(c, clock)

			assert.False(t, c.Dragging())
			assert.InDelta(t, tt.minOffset, c.Offset(), 0.001)
		})
	}
}

func TestCarousel_Flick(t *testing.T) {
	c, clock := newTestCarousel(t, 5)

	c.HandleMouse(press(30))
	clock.Advance(10 * time.Millisecond)
	c.HandleMouse(motion(20))
	assert.InDelta(t, -10.0, c.Offset(), 0.001)

	cmd := c.HandleMouse(release(20))
	require.NotNil(t, cmd, "a flick animates towards the momentum target")

	settle(c, clock)
	assert.InDelta(t, -44.0, c.Offset(), 0.001)
	left, right := c.Arrows()
	assert.True(t, left)
	assert.False(t, right)
}

func TestCarousel_SlowReleaseKeepsOffset(t *testing.T) {
	c, clock := newTestCarousel(t, 5)

	c.HandleMouse(press(30))
	clock.Advance(100 * time.Millisecond)
	c.HandleMouse(motion(20))
	c.HandleMouse(release(20))
	settle(c, clock)

	assert.InDelta(t, -10.0, c.Offset(), 0.001)
	left, right := c.Arrows()
	assert.True(t, left)
	assert.True(t, right)
}

func TestCarousel_ClickSelectsCard(t *testing.T) {
	c, _ := newTestCarousel(t, 5)

	c.HandleMouse(press(arrowGutter + 20))
	msgs := runCmd(c.HandleMouse(release(arrowGutter + 20)))

	assert.Equal(t, 1, c.ActiveIndex())
	selected, ok := findMsg[MapSelected](msgs)
	require.True(t, ok)
	assert.Equal(t, MapSelected{MapID: 2, Index: 1}, selected)
}

func TestCarousel_ClickOnGapSelectsNothing(t *testing.T) {
	c, _ := newTestCarousel(t, 5)

	c.HandleMouse(press(arrowGutter + 16))
	assert.Nil(t, c.HandleMouse(release(arrowGutter+16)))
	assert.Equal(t, 0, c.ActiveIndex())
}

func TestCarousel_Page(t *testing.T) {
	c, clock := newTestCarousel(t, 5)

	require.NotNil(t, c.Page(1))
	settle(c, clock)
	assert.InDelta(t, -28.0, c.Offset(), 0.001)
	left, right := c.Arrows()
	assert.True(t, left)
	assert.True(t, right)

	c.Page(1)
	settle(c, clock)
	assert.InDelta(t, -44.0, c.Offset(), 0.001)
	_, right = c.Arrows()
	assert.False(t, right)

	c.Update(keyRunes("["))
	settle(c, clock)
	assert.InDelta(t, -16.0, c.Offset(), 0.001)
}

func TestCarousel_ArrowGutterPages(t *testing.T) {
	c, clock := newTestCarousel(t, 5)

	require.NotNil(t, c.HandleMouse(press(arrowGutter+40)))
	assert.False(t, c.Dragging())
	settle(c, clock)
	assert.InDelta(t, -28.0, c.Offset(), 0.001)
}

func TestCarousel_AnimationMidway(t *testing.T) {
	c, clock := newTestCarousel(t, 5)

	c.Page(1)
	clock.Advance(200 * time.Millisecond)
	require.NotNil(t, c.Update(carouselTick{gen: c.animGen}))
	assert.InDelta(t, -14.0, c.Offset(), 0.001)

	assert.Nil(t, c.Update(carouselTick{gen: c.animGen - 1}), "stale frames are ignored")
}

func TestCarousel_KeyboardSelectionScrollsIntoView(t *testing.T) {
	c, clock := newTestCarousel(t, 5)

	for range 4 {
		c.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	settle(c, clock)
	assert.Equal(t, 4, c.ActiveIndex())
	assert.InDelta(t, -44.0, c.Offset(), 0.001)

	c.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 4, c.ActiveIndex(), "selection stops at the last card")

	c.Update(keyRunes("h"))
	assert.Equal(t, 3, c.ActiveIndex())
}

func TestCarousel_View(t *testing.T) {
	c, _ := newTestCarousel(t, 5)

	view := c.View()
	assert.Contains(t, view, "Map 1")
	assert.Contains(t, view, rightArrow)
	assert.NotContains(t, view, leftArrow)
}
