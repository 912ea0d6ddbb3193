package accessible

// Attributes is an order-irrelevant string-to-string mapping with
// unique keys.
type Attributes map[string]string

// Rect is an axis-aligned rectangle over any ordered numeric type.
type Rect[T int32 | float64] struct {
	X, Y, Width, Height T
}

// Intersects reports whether r and other overlap.
func (r Rect[T]) Intersects(other Rect[T]) bool {
	return r.X < other.X+other.Width &&
		other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height &&
		other.Y < r.Y+r.Height
}

// Contains reports whether the point (x, y) lies within r.
func (r Rect[T]) Contains(x, y T) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Range is a (start, end) character offset pair over a content string.
type Range struct {
	Start, End int
	Content    string
}

// Relation links an accessible to a set of targets under a named
// relation type (e.g. "labelled-by", "flows-to").
type Relation struct {
	Type    string
	Targets []Address
}

// ReadingMaterial is the 25-field batch snapshot returned by a single
// proxy call and consumed by the reading composer.
type ReadingMaterial struct {
	Attributes             Attributes
	Name                    string
	LabeledByName           string
	TextInterfaceName       string
	Role                    Role
	States                  States
	LocalizedName           string
	ChildCount              int
	CurrentValue            float64
	FormattedValue          string
	MinimumIncrement        float64
	Maximum                 float64
	Minimum                 float64
	Description             string
	IndexInParent           int
	IsSelectedInParent      bool
	HasCheckBoxChild        bool
	ListChildrenCount       int
	FirstSelectedChildIndex int
	Parent                  Address
	ParentStates            States
	ParentChildCount        int
	ParentRole              Role
	SelectedChildCount      int
	DescribedByAddress      Address
}

// NodeInfo is the lighter batch snapshot used outside of speech
// composition (e.g. by the diagnostic inspector).
type NodeInfo struct {
	RoleName         string
	Name             string
	ToolkitName      string
	Attributes       Attributes
	States           States
	ScreenExtents    Rect[int32]
	WindowExtents    Rect[int32]
	CurrentValue     float64
	MinimumIncrement float64
	Maximum          float64
	Minimum          float64
	FormattedValue   string
}
