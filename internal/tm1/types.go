// Package tm1 provides service facades for TM1 dimensions, hierarchies,
// subsets, processes, and cells. All facades share one REST transport.
package tm1

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Element attribute types understood by TM1
const (
	AttributeNumeric = "Numeric"
	AttributeString  = "String"
	AttributeAlias   = "Alias"
)

// LeavesHierarchy is the server-maintained hierarchy present on every
// dimension. It must never be created, updated, or deleted by a client.
const LeavesHierarchy = "Leaves"

// ElementAttribute is a typed property attached to dimension elements
type ElementAttribute struct {
	Name string `json:"Name"`
	Type string `json:"Type"`
}

// Element is a member of a hierarchy
type Element struct {
	Name string `json:"Name"`
	Type string `json:"Type"` // "Numeric", "String", "Consolidated"
}

// Edge is a parent/child rollup within a hierarchy
type Edge struct {
	Parent    string  `json:"ParentName"`
	Component string  `json:"ComponentName"`
	Weight    float64 `json:"Weight"`
}

// Hierarchy is a named arrangement of elements within a dimension
type Hierarchy struct {
	Name              string             `json:"Name"`
	DimensionName     string             `json:"-"`
	Elements          []Element          `json:"Elements,omitempty"`
	Edges             []Edge             `json:"Edges,omitempty"`
	ElementAttributes []ElementAttribute `json:"ElementAttributes,omitempty"`
}

// IsLeaves reports whether this is the server-maintained Leaves hierarchy
func (h *Hierarchy) IsLeaves() bool {
	return NamesEqual(h.Name, LeavesHierarchy)
}

// Body builds the TM1 create/update payload for the hierarchy.
// Element attributes are reconciled separately, never sent inline.
func (h *Hierarchy) Body() ([]byte, error) {
	payload := struct {
		Name     string    `json:"Name"`
		Elements []Element `json:"Elements,omitempty"`
		Edges    []Edge    `json:"Edges,omitempty"`
	}{
		Name:     h.Name,
		Elements: h.Elements,
		Edges:    h.Edges,
	}
	return json.Marshal(payload)
}

// Dimension is an ordered collection of hierarchies
type Dimension struct {
	Name        string      `json:"Name"`
	Hierarchies []Hierarchy `json:"Hierarchies"`
}

// NewDimension creates an empty dimension with the given name
func NewDimension(name string) *Dimension {
	return &Dimension{Name: name}
}

// AddHierarchy appends a hierarchy and stamps its owning dimension name
func (d *Dimension) AddHierarchy(h Hierarchy) {
	h.DimensionName = d.Name
	d.Hierarchies = append(d.Hierarchies, h)
}

// HierarchyNames returns the hierarchy names in dimension order
func (d *Dimension) HierarchyNames() []string {
	names := make([]string, 0, len(d.Hierarchies))
	for i := range d.Hierarchies {
		names = append(names, d.Hierarchies[i].Name)
	}
	return names
}

// HasHierarchy reports whether the dimension contains a hierarchy with the
// given name, compared case-and-space-insensitively
func (d *Dimension) HasHierarchy(name string) bool {
	for i := range d.Hierarchies {
		if NamesEqual(d.Hierarchies[i].Name, name) {
			return true
		}
	}
	return false
}

// Body builds the TM1 create payload for the dimension. The Leaves
// hierarchy is excluded; the server maintains it implicitly.
func (d *Dimension) Body() ([]byte, error) {
	hierarchies := make([]json.RawMessage, 0, len(d.Hierarchies))
	for i := range d.Hierarchies {
		h := &d.Hierarchies[i]
		if h.IsLeaves() {
			continue
		}
		hb, err := h.Body()
		if err != nil {
			return nil, err
		}
		hierarchies = append(hierarchies, hb)
	}

	payload := struct {
		Name        string            `json:"Name"`
		UniqueName  string            `json:"UniqueName"`
		Hierarchies []json.RawMessage `json:"Hierarchies"`
	}{
		Name:        d.Name,
		UniqueName:  "[" + d.Name + "]",
		Hierarchies: hierarchies,
	}
	return json.Marshal(payload)
}

// Subset is a named selection of hierarchy elements, either static
// (explicit element list) or dynamic (MDX expression)
type Subset struct {
	Name          string
	DimensionName string
	HierarchyName string
	Expression    string   // dynamic subset MDX; empty for static subsets
	Elements      []string // static subset element names
}

// IsDynamic reports whether the subset is expression-driven
func (s *Subset) IsDynamic() bool {
	return s.Expression != ""
}

// Body builds the TM1 create/update payload. Static subsets bind their
// elements by OData reference.
func (s *Subset) Body() ([]byte, error) {
	hierarchy := s.HierarchyName
	if hierarchy == "" {
		hierarchy = s.DimensionName
	}

	if s.IsDynamic() {
		return json.Marshal(struct {
			Name       string `json:"Name"`
			Expression string `json:"Expression"`
		}{Name: s.Name, Expression: s.Expression})
	}

	binds := make([]string, 0, len(s.Elements))
	for _, el := range s.Elements {
		binds = append(binds, "Dimensions('"+s.DimensionName+"')/Hierarchies('"+hierarchy+"')/Elements('"+el+"')")
	}
	return json.Marshal(struct {
		Name     string   `json:"Name"`
		Elements []string `json:"Elements@odata.bind"`
	}{Name: s.Name, Elements: binds})
}

// NormalizeName applies TM1's name equality rule: names compare equal
// ignoring case and spaces
func NormalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// NamesEqual compares two TM1 object names case-and-space-insensitively
func NamesEqual(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// escapeName prepares an object name for use inside a ('...') path
// segment: OData doubles embedded single quotes, the rest is URL-escaped
func escapeName(name string) string {
	return url.PathEscape(strings.ReplaceAll(name, "'", "''"))
}

// tiQuote prepares a string for use inside a TI string literal
func tiQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// namesResponse is the shape of any ?$select=Name collection query
type namesResponse struct {
	Value []struct {
		Name string `json:"Name"`
	} `json:"value"`
}

func (r *namesResponse) names() []string {
	names := make([]string, 0, len(r.Value))
	for _, v := range r.Value {
		names = append(names, v.Name)
	}
	return names
}
