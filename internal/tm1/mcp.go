package tm1

import (
	"context"
	"fmt"
)

// MCP wrapper methods. Each converts the plain tool arguments into domain
// types, delegates to the matching service, and shapes the result for the
// tool response.

// toDimension converts a tool-level definition into the domain model.
// Element types default to Numeric, edge weights to 1.
func toDimension(in DimensionInput) (*Dimension, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("dimension name is required")
	}

	dim := NewDimension(in.Name)
	for _, hi := range in.Hierarchies {
		if hi.Name == "" {
			return nil, fmt.Errorf("hierarchy name is required")
		}
		h := Hierarchy{Name: hi.Name}
		for _, el := range hi.Elements {
			elementType := el.Type
			if elementType == "" {
				elementType = "Numeric"
			}
			h.Elements = append(h.Elements, Element{Name: el.Name, Type: elementType})
		}
		for _, edge := range hi.Edges {
			weight := edge.Weight
			if weight == 0 {
				weight = 1
			}
			h.Edges = append(h.Edges, Edge{Parent: edge.Parent, Component: edge.Component, Weight: weight})
		}
		for _, attr := range hi.Attributes {
			h.ElementAttributes = append(h.ElementAttributes, ElementAttribute{Name: attr.Name, Type: attr.Type})
		}
		dim.AddHierarchy(h)
	}
	return dim, nil
}

// ListDimensionsMCP returns all dimension names
func (c *Client) ListDimensionsMCP(ctx context.Context, args ListDimensionsArgs) (ListDimensionsResult, error) {
	names, err := c.Dimensions.GetAllNames(ctx)
	if err != nil {
		return ListDimensionsResult{}, err
	}
	return ListDimensionsResult{Names: names, Count: len(names)}, nil
}

// GetDimensionMCP returns the dimension with hierarchy summaries
func (c *Client) GetDimensionMCP(ctx context.Context, args GetDimensionArgs) (GetDimensionResult, error) {
	dim, err := c.Dimensions.Get(ctx, args.Name)
	if err != nil {
		return GetDimensionResult{}, err
	}

	result := GetDimensionResult{Name: dim.Name}
	for i := range dim.Hierarchies {
		h := &dim.Hierarchies[i]
		summary := HierarchySummary{
			Name:         h.Name,
			ElementCount: len(h.Elements),
			EdgeCount:    len(h.Edges),
		}
		for _, attr := range h.ElementAttributes {
			summary.Attributes = append(summary.Attributes, attr.Name)
		}
		result.Hierarchies = append(result.Hierarchies, summary)
	}
	return result, nil
}

// CreateDimensionMCP creates a dimension from the given definition
func (c *Client) CreateDimensionMCP(ctx context.Context, args CreateDimensionArgs) (CreateDimensionResult, error) {
	dim, err := toDimension(args.Dimension)
	if err != nil {
		return CreateDimensionResult{}, err
	}
	if err := c.Dimensions.Create(ctx, dim); err != nil {
		return CreateDimensionResult{}, err
	}
	return CreateDimensionResult{Created: true, Name: dim.Name}, nil
}

// UpdateDimensionMCP reconciles a dimension with the given definition
func (c *Client) UpdateDimensionMCP(ctx context.Context, args UpdateDimensionArgs) (UpdateDimensionResult, error) {
	dim, err := toDimension(args.Dimension)
	if err != nil {
		return UpdateDimensionResult{}, err
	}
	if err := c.Dimensions.Update(ctx, dim); err != nil {
		return UpdateDimensionResult{}, err
	}
	return UpdateDimensionResult{Updated: true, Name: dim.Name}, nil
}

// DeleteDimensionMCP deletes a dimension
func (c *Client) DeleteDimensionMCP(ctx context.Context, args DeleteDimensionArgs) (DeleteDimensionResult, error) {
	if err := c.Dimensions.Delete(ctx, args.Name); err != nil {
		return DeleteDimensionResult{}, err
	}
	return DeleteDimensionResult{Deleted: true, Name: args.Name}, nil
}

// DimensionExistsMCP checks dimension existence with a live server query
func (c *Client) DimensionExistsMCP(ctx context.Context, args DimensionExistsArgs) (DimensionExistsResult, error) {
	exists, err := c.Dimensions.Exists(ctx, args.Name)
	if err != nil {
		return DimensionExistsResult{}, err
	}
	return DimensionExistsResult{Exists: exists, Name: args.Name}, nil
}

// ExecuteDimensionMDXMCP evaluates a row-axis MDX fragment against one
// dimension
func (c *Client) ExecuteDimensionMDXMCP(ctx context.Context, args ExecuteDimensionMDXArgs) (ExecuteDimensionMDXResult, error) {
	elements, err := c.Dimensions.ExecuteMDX(ctx, args.Dimension, args.MDX)
	if err != nil {
		return ExecuteDimensionMDXResult{}, err
	}
	return ExecuteDimensionMDXResult{Elements: elements, Count: len(elements)}, nil
}

// CreateElementAttributesMCP registers element attributes through TI
func (c *Client) CreateElementAttributesMCP(ctx context.Context, args CreateElementAttributesArgs) (CreateElementAttributesResult, error) {
	dim, err := toDimension(args.Dimension)
	if err != nil {
		return CreateElementAttributesResult{}, err
	}
	if err := c.Dimensions.CreateElementAttributesThroughTI(ctx, dim); err != nil {
		return CreateElementAttributesResult{}, err
	}

	created := 0
	for i := range dim.Hierarchies {
		created += len(dim.Hierarchies[i].ElementAttributes)
	}
	return CreateElementAttributesResult{Created: created, Name: dim.Name}, nil
}

// ListHierarchiesMCP returns the hierarchy names of a dimension
func (c *Client) ListHierarchiesMCP(ctx context.Context, args ListHierarchiesArgs) (ListHierarchiesResult, error) {
	names, err := c.Dimensions.Hierarchies.GetAllNames(ctx, args.Dimension)
	if err != nil {
		return ListHierarchiesResult{}, err
	}
	return ListHierarchiesResult{Names: names, Count: len(names)}, nil
}

// GetSubsetMCP returns a subset definition
func (c *Client) GetSubsetMCP(ctx context.Context, args GetSubsetArgs) (GetSubsetResult, error) {
	subset, err := c.Dimensions.Subsets.Get(ctx, args.Dimension, args.Hierarchy, args.Name)
	if err != nil {
		return GetSubsetResult{}, err
	}
	return GetSubsetResult{
		Name:       subset.Name,
		Expression: subset.Expression,
		Elements:   subset.Elements,
		Dynamic:    subset.IsDynamic(),
	}, nil
}

// CreateSubsetMCP creates a static or dynamic subset
func (c *Client) CreateSubsetMCP(ctx context.Context, args CreateSubsetArgs) (CreateSubsetResult, error) {
	if args.Expression != "" && len(args.Elements) > 0 {
		return CreateSubsetResult{}, fmt.Errorf("a subset is either dynamic (expression) or static (elements), not both")
	}

	subset := &Subset{
		Name:          args.Name,
		DimensionName: args.Dimension,
		HierarchyName: args.Hierarchy,
		Expression:    args.Expression,
		Elements:      args.Elements,
	}
	if err := c.Dimensions.Subsets.Create(ctx, subset); err != nil {
		return CreateSubsetResult{}, err
	}
	return CreateSubsetResult{Created: true, Name: args.Name}, nil
}

// DeleteSubsetMCP deletes a subset
func (c *Client) DeleteSubsetMCP(ctx context.Context, args DeleteSubsetArgs) (DeleteSubsetResult, error) {
	if err := c.Dimensions.Subsets.Delete(ctx, args.Dimension, args.Hierarchy, args.Name); err != nil {
		return DeleteSubsetResult{}, err
	}
	return DeleteSubsetResult{Deleted: true, Name: args.Name}, nil
}

// ExecuteTIMCP runs ad-hoc TurboIntegrator statements
func (c *Client) ExecuteTIMCP(ctx context.Context, args ExecuteTIArgs) (ExecuteTIResult, error) {
	if len(args.Prolog) == 0 && len(args.Epilog) == 0 {
		return ExecuteTIResult{}, fmt.Errorf("at least one TI statement is required")
	}
	if err := c.Dimensions.Processes.ExecuteTICode(ctx, args.Prolog, args.Epilog); err != nil {
		return ExecuteTIResult{}, err
	}
	return ExecuteTIResult{Executed: true}, nil
}

// ExecuteMDXValuesMCP evaluates a complete MDX query and returns cell values
func (c *Client) ExecuteMDXValuesMCP(ctx context.Context, args ExecuteMDXValuesArgs) (ExecuteMDXValuesResult, error) {
	values, err := c.Cells.ExecuteMDXValues(ctx, args.MDX)
	if err != nil {
		return ExecuteMDXValuesResult{}, err
	}
	return ExecuteMDXValuesResult{Values: values, Count: len(values)}, nil
}

// WriteCellValueMCP writes a single cube cell
func (c *Client) WriteCellValueMCP(ctx context.Context, args WriteCellValueArgs) (WriteCellValueResult, error) {
	if err := c.Cells.WriteValue(ctx, args.Cube, args.Dimensions, args.Elements, args.Value); err != nil {
		return WriteCellValueResult{}, err
	}
	return WriteCellValueResult{Written: true}, nil
}
