package portfolio

import "time"

// DefaultTitleInterval is how often the public preview rotates through
// multiple role taglines.
const DefaultTitleInterval = 3500 * time.Millisecond

// FallbackTitle is shown when a record has no titles.
const FallbackTitle = "Your Title"

// TitleCycler steps through a title sequence modulo its length. A
// cycler over zero or one titles is static.
type TitleCycler struct {
	titles []string
	index  int
}

func NewTitleCycler(titles []string) *TitleCycler {
	return &TitleCycler{titles: titles}
}

// Current returns the displayed title, or the fallback when the
// sequence is empty.
func (c *TitleCycler) Current() string {
	if len(c.titles) == 0 {
		return FallbackTitle
	}
	return c.titles[c.index]
}

// Advance moves to the next title and returns it. With fewer than two
// titles it is a no-op.
func (c *TitleCycler) Advance() string {
	if len(c.titles) > 1 {
		c.index = (c.index + 1) % len(c.titles)
	}
	return c.Current()
}

// Index reports the current position.
func (c *TitleCycler) Index() int {
	return c.index
}

// Static reports whether the cycler never advances.
func (c *TitleCycler) Static() bool {
	return len(c.titles) <= 1
}
