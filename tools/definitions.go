package tools

// AllTools contains all tool specifications for the TM1 MCP server.
// Tools are organized by category for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// DIMENSION TOOLS
	// ==========================================================================
	{
		Name:     "tm1_list_dimensions",
		Method:   "ListDimensions",
		Title:    "List Dimensions",
		Category: "dimension",
		Description: `List ALL dimensions on the TM1 server.

USE WHEN: User asks "what dimensions exist", "show me the model", or needs a dimension name they don't know exactly.

NOT FOR: Checking whether one specific dimension exists (use tm1_dimension_exists instead).

RETURNS: Dimension names in server order, including control dimensions (} prefix).`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "tm1_get_dimension",
		Method:   "GetDimension",
		Title:    "Get Dimension",
		Category: "dimension",
		Description: `Retrieve one dimension with all its hierarchies fully expanded.

USE WHEN: User asks "show me dimension X", "what hierarchies does X have", "what attributes are on X".

NOT FOR: Listing all dimension names (use tm1_list_dimensions instead).

PARAMETERS:
- name: Dimension name (required)

RETURNS: Per-hierarchy element counts, edge counts, and attribute names.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "tm1_create_dimension",
		Method:   "CreateDimension",
		Title:    "Create Dimension",
		Category: "dimension",
		Description: `Create a new dimension with hierarchies, elements, edges, and element attributes.

USE WHEN: User says "create a dimension", "add a new dimension with these elements".

NOT FOR: Changing an existing dimension (use tm1_update_dimension instead).

PARAMETERS:
- dimension: Full definition with name and hierarchies (required)

RETURNS: Confirmation. Fails if the dimension already exists; a partially created dimension is rolled back automatically.`,
		Idempotent: false,
		OpenWorld:  true,
	},
	{
		Name:     "tm1_update_dimension",
		Method:   "UpdateDimension",
		Title:    "Update Dimension",
		Category: "dimension",
		Description: `Reconcile an existing dimension with a new definition. Hierarchies missing from the definition are DELETED; the rest are created or updated. The Leaves hierarchy is never touched.

USE WHEN: User says "update dimension X", "add a hierarchy to X", "restructure X".

NOT FOR: Creating a dimension that doesn't exist yet (use tm1_create_dimension instead).

PARAMETERS:
- dimension: The new full definition (required)

RETURNS: Confirmation of the reconciliation.`,
		Destructive: true,
		OpenWorld:   true,
	},
	{
		Name:     "tm1_delete_dimension",
		Method:   "DeleteDimension",
		Title:    "Delete Dimension",
		Category: "dimension",
		Description: `Delete a dimension and everything it contains.

USE WHEN: User explicitly asks to remove a dimension.

PARAMETERS:
- name: Dimension name (required)

RETURNS: Confirmation. Fails if the dimension does not exist or is still used by a cube.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:     "tm1_dimension_exists",
		Method:   "DimensionExists",
		Title:    "Dimension Exists",
		Category: "dimension",
		Description: `Check whether a dimension exists, with a live server query.

USE WHEN: User asks "is there a dimension called X", or before a create/delete decision.

PARAMETERS:
- name: Dimension name (required; comparison ignores case and spaces)

RETURNS: true or false.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "tm1_execute_dimension_mdx",
		Method:   "ExecuteDimensionMDX",
		Title:    "Query Dimension Elements (MDX)",
		Category: "dimension",
		Description: `Evaluate a row-axis MDX fragment against one dimension and return the matching element names.

USE WHEN: User asks "which elements of X match ...", "give me the leaf elements of X", or needs a filtered element list.

NOT FOR: Full cube queries returning cell values (use tm1_execute_mdx instead).

PARAMETERS:
- dimension: Dimension name (required)
- mdx: Row-axis fragment, e.g. "{ Tm1SubsetAll([Region]) }" (required)

RETURNS: Element names in axis order.`,
		ReadOnly:  true,
		OpenWorld: true,
	},
	{
		Name:     "tm1_create_element_attributes",
		Method:   "CreateElementAttributes",
		Title:    "Create Element Attributes (TI)",
		Category: "dimension",
		Description: `Register element attributes through TurboIntegrator AttrInsert statements, one batch per hierarchy. Unlike a plain REST create, this also initializes the backing attribute cube.

USE WHEN: User wants attributes usable immediately for existing elements.

PARAMETERS:
- dimension: Definition carrying hierarchies and their attributes (required)

RETURNS: Number of attributes registered.`,
		OpenWorld: true,
	},

	// ==========================================================================
	// HIERARCHY TOOLS
	// ==========================================================================
	{
		Name:     "tm1_list_hierarchies",
		Method:   "ListHierarchies",
		Title:    "List Hierarchies",
		Category: "hierarchy",
		Description: `List the hierarchy names of one dimension.

USE WHEN: User asks "what hierarchies does X have" and doesn't need elements or attributes.

NOT FOR: Full hierarchy contents (use tm1_get_dimension instead).

PARAMETERS:
- dimension: Dimension name (required)

RETURNS: Hierarchy names in server order, including Leaves where present.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// SUBSET TOOLS
	// ==========================================================================
	{
		Name:     "tm1_get_subset",
		Method:   "GetSubset",
		Title:    "Get Subset",
		Category: "subset",
		Description: `Retrieve a public subset with its expression or element list.

USE WHEN: User asks "what is in subset X", "show the definition of subset X".

PARAMETERS:
- dimension: Dimension name (required)
- hierarchy: Hierarchy name (defaults to the dimension name)
- name: Subset name (required)

RETURNS: The MDX expression for dynamic subsets, the element names for static ones.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "tm1_create_subset",
		Method:   "CreateSubset",
		Title:    "Create Subset",
		Category: "subset",
		Description: `Create a public subset, either static (element list) or dynamic (MDX expression).

USE WHEN: User says "create a subset", "save this selection of elements".

PARAMETERS:
- dimension: Dimension name (required)
- hierarchy: Hierarchy name (defaults to the dimension name)
- name: Subset name (required)
- expression: MDX for a dynamic subset (mutually exclusive with elements)
- elements: Element names for a static subset

RETURNS: Confirmation.`,
		OpenWorld: true,
	},
	{
		Name:     "tm1_delete_subset",
		Method:   "DeleteSubset",
		Title:    "Delete Subset",
		Category: "subset",
		Description: `Delete a public subset.

USE WHEN: User explicitly asks to remove a subset.

PARAMETERS:
- dimension: Dimension name (required)
- hierarchy: Hierarchy name (defaults to the dimension name)
- name: Subset name (required)

RETURNS: Confirmation. Fails if the subset does not exist.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},

	// ==========================================================================
	// PROCESS TOOLS
	// ==========================================================================
	{
		Name:     "tm1_execute_ti",
		Method:   "ExecuteTI",
		Title:    "Execute TI Code",
		Category: "process",
		Description: `Run ad-hoc TurboIntegrator statements through a temporary process. The process is created, executed, and deleted in one call.

USE WHEN: User needs server-side scripting: AttrInsert, CubeSetLogChanges, SaveDataAll, and similar TI functions.

NOT FOR: Reading data (use tm1_execute_mdx) or structural changes covered by dedicated tools.

PARAMETERS:
- prolog: TI statements for the prolog procedure (required)
- epilog: TI statements for the epilog procedure (optional)

RETURNS: Confirmation. Fails with the process status code when execution does not complete successfully.`,
		Destructive: true,
		OpenWorld:   true,
	},

	// ==========================================================================
	// CELL TOOLS
	// ==========================================================================
	{
		Name:     "tm1_execute_mdx",
		Method:   "ExecuteMDXValues",
		Title:    "Execute MDX",
		Category: "cell",
		Description: `Evaluate a complete MDX SELECT statement and return the raw cell values.

USE WHEN: User asks for numbers out of a cube: "what are the sales for ...", "query cube X".

NOT FOR: Listing dimension elements (use tm1_execute_dimension_mdx instead).

PARAMETERS:
- mdx: Complete MDX SELECT statement (required)

RETURNS: Cell values in cellset order; numeric cells as numbers, string cells as text, empty cells as null.`,
		ReadOnly:  true,
		OpenWorld: true,
	},
	{
		Name:     "tm1_write_cell_value",
		Method:   "WriteCellValue",
		Title:    "Write Cell Value",
		Category: "cell",
		Description: `Write a single value into a cube cell.

USE WHEN: User says "set the value of ... to ...", "write X into cube Y".

PARAMETERS:
- cube: Cube name (required)
- dimensions: Dimension names in cube order (required)
- elements: Element names matching the dimensions position by position (required)
- value: Numeric or string value (required)

RETURNS: Confirmation. The target element on each dimension must exist.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
}
