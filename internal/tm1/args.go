package tm1

// Argument and result types for the MCP tool surface. Input structs mirror
// the dimension model with plain JSON shapes so schemas stay readable in
// tool listings.

// ElementInput describes one hierarchy element
type ElementInput struct {
	Name string `json:"name" jsonschema:"element name"`
	Type string `json:"type,omitempty" jsonschema:"element type: Numeric, String, or Consolidated (default Numeric)"`
}

// EdgeInput describes one parent/child rollup
type EdgeInput struct {
	Parent    string  `json:"parent" jsonschema:"parent element name"`
	Component string  `json:"component" jsonschema:"child element name"`
	Weight    float64 `json:"weight,omitempty" jsonschema:"rollup weight (default 1)"`
}

// AttributeInput describes one element attribute
type AttributeInput struct {
	Name string `json:"name" jsonschema:"attribute name"`
	Type string `json:"type" jsonschema:"attribute type: Numeric, String, or Alias"`
}

// HierarchyInput describes one hierarchy of a dimension
type HierarchyInput struct {
	Name       string           `json:"name" jsonschema:"hierarchy name"`
	Elements   []ElementInput   `json:"elements,omitempty" jsonschema:"elements of the hierarchy"`
	Edges      []EdgeInput      `json:"edges,omitempty" jsonschema:"parent/child rollups"`
	Attributes []AttributeInput `json:"attributes,omitempty" jsonschema:"element attributes"`
}

// DimensionInput is the full dimension definition accepted by the create
// and update tools
type DimensionInput struct {
	Name        string           `json:"name" jsonschema:"dimension name"`
	Hierarchies []HierarchyInput `json:"hierarchies,omitempty" jsonschema:"hierarchies of the dimension"`
}

// ListDimensionsArgs has no parameters
type ListDimensionsArgs struct{}

// ListDimensionsResult contains all dimension names
type ListDimensionsResult struct {
	Names []string `json:"names" jsonschema:"dimension names in server order"`
	Count int      `json:"count" jsonschema:"number of dimensions"`
}

// GetDimensionArgs identifies a dimension by name
type GetDimensionArgs struct {
	Name string `json:"name" jsonschema:"dimension name"`
}

// HierarchySummary is the readable form of a hierarchy
type HierarchySummary struct {
	Name         string   `json:"name"`
	ElementCount int      `json:"element_count"`
	EdgeCount    int      `json:"edge_count"`
	Attributes   []string `json:"attributes,omitempty"`
}

// GetDimensionResult contains the dimension with hierarchy summaries
type GetDimensionResult struct {
	Name        string             `json:"name"`
	Hierarchies []HierarchySummary `json:"hierarchies"`
}

// CreateDimensionArgs carries the full dimension definition
type CreateDimensionArgs struct {
	Dimension DimensionInput `json:"dimension" jsonschema:"the dimension to create"`
}

// CreateDimensionResult reports the outcome of a create
type CreateDimensionResult struct {
	Created bool   `json:"created"`
	Name    string `json:"name"`
}

// UpdateDimensionArgs carries the new dimension definition
type UpdateDimensionArgs struct {
	Dimension DimensionInput `json:"dimension" jsonschema:"the new dimension definition; hierarchies missing from it are deleted"`
}

// UpdateDimensionResult reports the outcome of an update
type UpdateDimensionResult struct {
	Updated bool   `json:"updated"`
	Name    string `json:"name"`
}

// DeleteDimensionArgs identifies the dimension to delete
type DeleteDimensionArgs struct {
	Name string `json:"name" jsonschema:"dimension name"`
}

// DeleteDimensionResult reports the outcome of a delete
type DeleteDimensionResult struct {
	Deleted bool   `json:"deleted"`
	Name    string `json:"name"`
}

// DimensionExistsArgs identifies the dimension to check
type DimensionExistsArgs struct {
	Name string `json:"name" jsonschema:"dimension name"`
}

// DimensionExistsResult reports the live existence check
type DimensionExistsResult struct {
	Exists bool   `json:"exists"`
	Name   string `json:"name"`
}

// ExecuteDimensionMDXArgs carries a row-axis MDX fragment scoped to one
// dimension
type ExecuteDimensionMDXArgs struct {
	Dimension string `json:"dimension" jsonschema:"dimension whose elements the MDX selects"`
	MDX       string `json:"mdx" jsonschema:"row-axis MDX fragment, e.g. {[Region].Members}"`
}

// ExecuteDimensionMDXResult contains the selected element names in axis order
type ExecuteDimensionMDXResult struct {
	Elements []string `json:"elements"`
	Count    int      `json:"count"`
}

// CreateElementAttributesArgs carries the dimension whose attributes should
// be registered through TurboIntegrator
type CreateElementAttributesArgs struct {
	Dimension DimensionInput `json:"dimension" jsonschema:"dimension definition whose hierarchy attributes to register"`
}

// CreateElementAttributesResult reports how many attributes were registered
type CreateElementAttributesResult struct {
	Created int    `json:"created"`
	Name    string `json:"name"`
}

// ListHierarchiesArgs identifies the dimension whose hierarchies to list
type ListHierarchiesArgs struct {
	Dimension string `json:"dimension" jsonschema:"dimension name"`
}

// ListHierarchiesResult contains the hierarchy names
type ListHierarchiesResult struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

// GetSubsetArgs identifies a subset on a hierarchy
type GetSubsetArgs struct {
	Dimension string `json:"dimension" jsonschema:"dimension name"`
	Hierarchy string `json:"hierarchy,omitempty" jsonschema:"hierarchy name (defaults to the dimension name)"`
	Name      string `json:"name" jsonschema:"subset name"`
}

// GetSubsetResult contains the subset definition
type GetSubsetResult struct {
	Name       string   `json:"name"`
	Expression string   `json:"expression,omitempty"`
	Elements   []string `json:"elements,omitempty"`
	Dynamic    bool     `json:"dynamic"`
}

// CreateSubsetArgs carries a static or dynamic subset definition
type CreateSubsetArgs struct {
	Dimension  string   `json:"dimension" jsonschema:"dimension name"`
	Hierarchy  string   `json:"hierarchy,omitempty" jsonschema:"hierarchy name (defaults to the dimension name)"`
	Name       string   `json:"name" jsonschema:"subset name"`
	Expression string   `json:"expression,omitempty" jsonschema:"MDX expression for a dynamic subset"`
	Elements   []string `json:"elements,omitempty" jsonschema:"element names for a static subset"`
}

// CreateSubsetResult reports the outcome of a subset create
type CreateSubsetResult struct {
	Created bool   `json:"created"`
	Name    string `json:"name"`
}

// DeleteSubsetArgs identifies the subset to delete
type DeleteSubsetArgs struct {
	Dimension string `json:"dimension" jsonschema:"dimension name"`
	Hierarchy string `json:"hierarchy,omitempty" jsonschema:"hierarchy name (defaults to the dimension name)"`
	Name      string `json:"name" jsonschema:"subset name"`
}

// DeleteSubsetResult reports the outcome of a subset delete
type DeleteSubsetResult struct {
	Deleted bool   `json:"deleted"`
	Name    string `json:"name"`
}

// ExecuteTIArgs carries ad-hoc TurboIntegrator statements
type ExecuteTIArgs struct {
	Prolog []string `json:"prolog" jsonschema:"TI statements for the prolog procedure, one per line"`
	Epilog []string `json:"epilog,omitempty" jsonschema:"TI statements for the epilog procedure, one per line"`
}

// ExecuteTIResult reports the outcome of the TI run
type ExecuteTIResult struct {
	Executed bool `json:"executed"`
}

// ExecuteMDXValuesArgs carries a complete MDX query
type ExecuteMDXValuesArgs struct {
	MDX string `json:"mdx" jsonschema:"complete MDX SELECT statement"`
}

// ExecuteMDXValuesResult contains the raw cell values in cellset order
type ExecuteMDXValuesResult struct {
	Values []any `json:"values"`
	Count  int   `json:"count"`
}

// WriteCellValueArgs identifies one cell and the value to write
type WriteCellValueArgs struct {
	Cube       string   `json:"cube" jsonschema:"cube name"`
	Dimensions []string `json:"dimensions" jsonschema:"dimension names in cube order"`
	Elements   []string `json:"elements" jsonschema:"element names matching the dimensions position by position"`
	Value      any      `json:"value" jsonschema:"numeric or string value to write"`
}

// WriteCellValueResult reports the outcome of the write
type WriteCellValueResult struct {
	Written bool `json:"written"`
}
