package form

// Values holds the raw scalar inputs of a form, keyed by input name.
type Values map[string]string

func (v Values) Get(name string) string {
	return v[name]
}

func (v Values) Set(name, value string) {
	v[name] = value
}
