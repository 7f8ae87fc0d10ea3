package form

// Choices is a checkbox group. Checked values keep the order they were checked in.
type Choices struct {
	options []string
	checked []string
}

func NewChoices(options ...string) *Choices {
	return &Choices{options: options, checked: []string{}}
}

func (c *Choices) Options() []string {
	return append([]string(nil), c.options...)
}

// Set checks or unchecks `v`.
func (c *Choices) Set(v string, checked bool) {
	idx := c.index(v)
	switch {
	case checked && idx < 0:
		c.checked = append(c.checked, v)
	case !checked && idx >= 0:
		c.checked = append(c.checked[:idx], c.checked[idx+1:]...)
	}
}

func (c *Choices) IsChecked(v string) bool {
	return c.index(v) >= 0
}

// Load replaces the checked values, dropping duplicates.
func (c *Choices) Load(vals []string) {
	c.checked = make([]string, 0, len(vals))
	for _, v := range vals {
		c.Set(v, true)
	}
}

func (c *Choices) Values() []string {
	return append([]string{}, c.checked...)
}

func (c *Choices) index(v string) int {
	for i, ch := range c.checked {
		if ch == v {
			return i
		}
	}
	return -1
}

// YesNo is the value of a Yes/No radio group.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

func YesNoOf(b bool) YesNo {
	if b {
		return Yes
	}
	return No
}

func (yn YesNo) Bool() bool {
	return yn == Yes
}

// YesNoOptions are the radio choices, in display order.
func YesNoOptions() []string {
	return []string{string(Yes), string(No)}
}
