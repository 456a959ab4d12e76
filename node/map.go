package node

// Map is an in-memory node.
type Map struct {
	Values   map[string]string
	Children map[string]*Map
}

// NewMap returns an empty in-memory node.
func NewMap() *Map {
	return &Map{
		Values:   map[string]string{},
		Children: map[string]*Map{},
	}
}

// Value implements Reader.
func (m *Map) Value(name string) (string, bool) {
	v, ok := m.Values[name]
	return v, ok
}

// Child implements Reader.
func (m *Map) Child(name string) (Reader, bool) {
	c, ok := m.Children[name]
	if !ok {
		return nil, false
	}
	return c, true
}

// SetValue implements Writer.
func (m *Map) SetValue(name, value string) {
	if m.Values == nil {
		m.Values = map[string]string{}
	}
	m.Values[name] = value
}

// AddChild implements Writer.
func (m *Map) AddChild(name string) Writer {
	if m.Children == nil {
		m.Children = map[string]*Map{}
	}
	c, ok := m.Children[name]
	if !ok {
		c = NewMap()
		m.Children[name] = c
	}
	return c
}
