package form

// Toggle is a selector over preset values plus a sentinel entry that switches
// to a free-text value (eg. organizer: "AIM" or "External" + name).
// Only one of the preset value and the free text is ever active.
type Toggle struct {
	sentinel string
	presets  []string
	free     bool
	value    string
}

func NewToggle(sentinel string, presets ...string) *Toggle {
	return &Toggle{sentinel: sentinel, presets: presets}
}

// Choices returns the presets followed by the sentinel.
func (t *Toggle) Choices() []string {
	return append(append([]string(nil), t.presets...), t.sentinel)
}

// SelectPreset applies a selector change. Choosing the sentinel enters
// free-text mode with an empty value; anything else is taken as the value.
func (t *Toggle) SelectPreset(v string) {
	if v == t.sentinel {
		t.free = true
		t.value = ""
		return
	}
	t.free = false
	t.value = v
}

// SetFreeText sets the free-text value. It is ignored outside free-text mode.
func (t *Toggle) SetFreeText(v string) bool {
	if !t.free {
		return false
	}
	t.value = v
	return true
}

// Load seeds the toggle from a stored value: a preset (or empty) value
// selects preset mode, any other value enters free-text mode.
func (t *Toggle) Load(v string) {
	if v == "" || t.isPreset(v) {
		t.free = false
		t.value = v
		return
	}
	t.free = true
	t.value = v
}

// IsFreeText reports whether the free-text input is active.
func (t *Toggle) IsFreeText() bool {
	return t.free
}

// Selection is what the selector shows: the sentinel in free-text mode.
func (t *Toggle) Selection() string {
	if t.free {
		return t.sentinel
	}
	return t.value
}

// FreeText is what the free-text input shows ("" in preset mode).
func (t *Toggle) FreeText() string {
	if t.free {
		return t.value
	}
	return ""
}

// Value is the effective value submitted.
func (t *Toggle) Value() string {
	return t.value
}

func (t *Toggle) isPreset(v string) bool {
	for _, p := range t.presets {
		if p == v {
			return true
		}
	}
	return false
}
