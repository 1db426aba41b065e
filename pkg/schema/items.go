package schema

// Path is an ordered sequence of module segments, canonical and stable
// within one graph snapshot (§3.4).
type Path struct {
	Segments []string
}

func (p *Path) String() string {
	if p == nil {
		return ""
	}
	out := ""
	for i, s := range p.Segments {
		if i > 0 {
			out += "::"
		}
		out += s
	}
	return out
}

// ImportablePath is one way an item is reachable from the crate root.
type ImportablePath struct {
	Path      *Path
	PublicAPI bool
}

// Span is an optional source location.
type Span struct {
	Filename  string
	BeginLine int
	EndLine   int
}

// Attribute is a raw attribute plus its parsed meta-item tree.
type Attribute struct {
	RawAttribute string
	Content      *AttributeMetaItem
}

// AttributeMetaItem is a recursive meta-item: a base key plus 0+ argument
// children.
type AttributeMetaItem struct {
	Base      string
	Arguments []*AttributeMetaItem
}

// Discriminant is an enum variant's explicit value. Equality is numeric:
// "1" and "0x1" compare equal once normalized (§3.4, §9).
type Discriminant struct {
	Value string
}

// RequiresFeature marks that a function/method needs a target feature
// enabled to be callable.
type RequiresFeature struct {
	FeatureName             string
	Explicit                bool
	GloballyEnabled         bool
	ValidForCurrentTarget   bool
}

func (r *RequiresFeature) Name() string { return r.FeatureName }

// GenericTypeParameter is a type-position generic parameter.
type GenericTypeParameter struct {
	ParamName  string
	HasDefault bool
}

func (g *GenericTypeParameter) Name() string { return g.ParamName }

// GenericConstParameter is a const-position generic parameter.
type GenericConstParameter struct {
	ParamName  string
	HasDefault bool
}

func (g *GenericConstParameter) Name() string { return g.ParamName }

// GenericParameter is the sum of the two generic parameter sub-variants.
// Exactly one of Type/Const is non-nil.
type GenericParameter struct {
	Type  *GenericTypeParameter
	Const *GenericConstParameter
}

// Field is a struct or tuple-variant field.
type Field struct {
	FieldName         string
	VisibilityLimitV  string
	PublicAPIEligible bool
	RawTypes          []string
	SpanV             *Span
}

func (f *Field) Name() string            { return f.FieldName }
func (f *Field) VisibilityLimit() string { return f.VisibilityLimitV }
func (f *Field) Span() *Span             { return f.SpanV }

// Variant sub-kinds.

type TupleVariant struct {
	VariantName       string
	PublicAPIEligible bool
	Fields            []*Field
	Discriminant      *Discriminant
	AttrsV            []string
	AttributesV       []*Attribute
}

type StructVariant struct {
	VariantName       string
	PublicAPIEligible bool
	Fields            []*Field
	Discriminant      *Discriminant
	AttrsV            []string
	AttributesV       []*Attribute
}

type PlainVariant struct {
	VariantName       string
	PublicAPIEligible bool
	Discriminant      *Discriminant
	AttrsV            []string
	AttributesV       []*Attribute
}

// Variant is the sum type over the three variant sub-kinds. Exactly one
// of Tuple/Struct/Plain is non-nil.
type Variant struct {
	Tuple  *TupleVariant
	Struct *StructVariant
	Plain  *PlainVariant
}

func (v *Variant) Name() string {
	switch {
	case v.Tuple != nil:
		return v.Tuple.VariantName
	case v.Struct != nil:
		return v.Struct.VariantName
	case v.Plain != nil:
		return v.Plain.VariantName
	}
	return ""
}

func (v *Variant) Attrs() []string {
	switch {
	case v.Tuple != nil:
		return v.Tuple.AttrsV
	case v.Struct != nil:
		return v.Struct.AttrsV
	case v.Plain != nil:
		return v.Plain.AttrsV
	}
	return nil
}

func (v *Variant) Attributes() []*Attribute {
	switch {
	case v.Tuple != nil:
		return v.Tuple.AttributesV
	case v.Struct != nil:
		return v.Struct.AttributesV
	case v.Plain != nil:
		return v.Plain.AttributesV
	}
	return nil
}

func (v *Variant) Discriminant() *Discriminant {
	switch {
	case v.Tuple != nil:
		return v.Tuple.Discriminant
	case v.Struct != nil:
		return v.Struct.Discriminant
	case v.Plain != nil:
		return v.Plain.Discriminant
	}
	return nil
}

// AssociatedType is a trait's associated type declaration.
type AssociatedType struct {
	TypeName          string
	HasDefault        bool
	Deprecated        bool
	PublicAPIEligible bool
}

func (a *AssociatedType) Name() string { return a.TypeName }

// AssociatedConstant is a trait's associated constant declaration.
type AssociatedConstant struct {
	ConstName         string
	PublicAPIEligible bool
}

func (a *AssociatedConstant) Name() string { return a.ConstName }

// Function is a free function (Method shares the same shape, modeled as
// a distinct struct per §3.3's table distinguishing Function/Method).
type Function struct {
	FuncName          string
	Unsafe            bool
	Deprecated        bool
	PublicAPIEligible bool
	VisibilityLimitV  string
	RequiresFeatures  []*RequiresFeature
	GenericParams     []*GenericParameter
	ImportablePathsV  []*ImportablePath
	AttrsV            []string
	AttributesV       []*Attribute
	SpanV             *Span
}

func (f *Function) Name() string                      { return f.FuncName }
func (f *Function) VisibilityLimit() string            { return f.VisibilityLimitV }
func (f *Function) ImportablePaths() []*ImportablePath { return f.ImportablePathsV }
func (f *Function) Attrs() []string                    { return f.AttrsV }
func (f *Function) Attributes() []*Attribute           { return f.AttributesV }
func (f *Function) Span() *Span                        { return f.SpanV }

// Method is a trait or impl method.
type Method struct {
	MethodName        string
	Unsafe            bool
	Deprecated        bool
	PublicAPIEligible bool
	HasDefaultImpl    bool
	RequiresFeatures  []*RequiresFeature
	GenericParams     []*GenericParameter
	AttrsV            []string
	AttributesV       []*Attribute
	SpanV             *Span
}

func (m *Method) Name() string            { return m.MethodName }
func (m *Method) Attrs() []string         { return m.AttrsV }
func (m *Method) Attributes() []*Attribute { return m.AttributesV }
func (m *Method) Span() *Span             { return m.SpanV }

// Static is a `static` item.
type Static struct {
	StaticName       string
	VisibilityLimitV string
	TypeV            string
	Mutable          bool
	ImportablePathsV []*ImportablePath
	AttrsV           []string
	AttributesV      []*Attribute
	SpanV            *Span
}

func (s *Static) Name() string                      { return s.StaticName }
func (s *Static) VisibilityLimit() string            { return s.VisibilityLimitV }
func (s *Static) ValueType() string                  { return s.TypeV }
func (s *Static) ImportablePaths() []*ImportablePath { return s.ImportablePathsV }
func (s *Static) Attrs() []string                    { return s.AttrsV }
func (s *Static) Attributes() []*Attribute           { return s.AttributesV }
func (s *Static) Span() *Span                        { return s.SpanV }

// Constant is a `const` item.
type Constant struct {
	ConstName        string
	VisibilityLimitV string
	TypeV            string
	ImportablePathsV []*ImportablePath
	AttrsV           []string
	AttributesV      []*Attribute
	SpanV            *Span
}

func (c *Constant) Name() string                      { return c.ConstName }
func (c *Constant) VisibilityLimit() string            { return c.VisibilityLimitV }
func (c *Constant) ValueType() string                  { return c.TypeV }
func (c *Constant) ImportablePaths() []*ImportablePath { return c.ImportablePathsV }
func (c *Constant) Attrs() []string                    { return c.AttrsV }
func (c *Constant) Attributes() []*Attribute           { return c.AttributesV }
func (c *Constant) Span() *Span                        { return c.SpanV }

// Impl is an inherent or trait impl block owned by a Struct/Enum/Union.
type Impl struct {
	Negative          bool
	ImplementedTrait  *Trait
	TraitPath         *Path
	Methods           []*Method
	AssociatedTypes   []*AssociatedType
	AssociatedConsts  []*AssociatedConstant
	SpanV             *Span
}

func (i *Impl) Span() *Span { return i.SpanV }

// Trait is a trait declaration.
type Trait struct {
	TraitName              string
	Unsafe                 bool
	PublicAPISealed        bool
	UnconditionallySealed  bool
	Deprecated             bool
	VisibilityLimitV       string
	Methods                []*Method
	AssociatedTypes        []*AssociatedType
	AssociatedConstants    []*AssociatedConstant
	ImportablePathsV       []*ImportablePath
	AttrsV                 []string
	AttributesV            []*Attribute
	SpanV                  *Span
}

func (t *Trait) Name() string                      { return t.TraitName }
func (t *Trait) VisibilityLimit() string            { return t.VisibilityLimitV }
func (t *Trait) ImportablePaths() []*ImportablePath { return t.ImportablePathsV }
func (t *Trait) Attrs() []string                    { return t.AttrsV }
func (t *Trait) Attributes() []*Attribute           { return t.AttributesV }
func (t *Trait) Span() *Span                        { return t.SpanV }

// Enum is an enum declaration.
type Enum struct {
	EnumName         string
	VisibilityLimitV string
	Variants         []*Variant
	ImportablePathsV []*ImportablePath
	AttrsV           []string
	AttributesV      []*Attribute
	InherentImplsV   []*Impl
	ImplsV           []*Impl
	SpanV            *Span
}

func (e *Enum) Name() string                      { return e.EnumName }
func (e *Enum) VisibilityLimit() string            { return e.VisibilityLimitV }
func (e *Enum) ImportablePaths() []*ImportablePath { return e.ImportablePathsV }
func (e *Enum) Attrs() []string                    { return e.AttrsV }
func (e *Enum) Attributes() []*Attribute           { return e.AttributesV }
func (e *Enum) InherentImpls() []*Impl             { return e.InherentImplsV }
func (e *Enum) Impls() []*Impl                     { return e.ImplsV }
func (e *Enum) Span() *Span                        { return e.SpanV }

// Struct is a struct declaration.
type Struct struct {
	StructName       string
	VisibilityLimitV string
	StructType       string // "plain", "tuple", "unit"
	Fields           []*Field
	ImportablePathsV []*ImportablePath
	AttrsV           []string
	AttributesV      []*Attribute
	InherentImplsV   []*Impl
	ImplsV           []*Impl
	SpanV            *Span
}

func (s *Struct) Name() string                      { return s.StructName }
func (s *Struct) VisibilityLimit() string            { return s.VisibilityLimitV }
func (s *Struct) ImportablePaths() []*ImportablePath { return s.ImportablePathsV }
func (s *Struct) Attrs() []string                    { return s.AttrsV }
func (s *Struct) Attributes() []*Attribute           { return s.AttributesV }
func (s *Struct) InherentImpls() []*Impl             { return s.InherentImplsV }
func (s *Struct) Impls() []*Impl                     { return s.ImplsV }
func (s *Struct) Span() *Span                        { return s.SpanV }

// Union is a union declaration.
type Union struct {
	UnionName        string
	VisibilityLimitV string
	Fields           []*Field
	ImportablePathsV []*ImportablePath
	AttrsV           []string
	AttributesV      []*Attribute
	InherentImplsV   []*Impl
	ImplsV           []*Impl
	SpanV            *Span
}

func (u *Union) Name() string                      { return u.UnionName }
func (u *Union) VisibilityLimit() string            { return u.VisibilityLimitV }
func (u *Union) ImportablePaths() []*ImportablePath { return u.ImportablePathsV }
func (u *Union) Attrs() []string                    { return u.AttrsV }
func (u *Union) Attributes() []*Attribute           { return u.AttributesV }
func (u *Union) InherentImpls() []*Impl             { return u.InherentImplsV }
func (u *Union) Impls() []*Impl                     { return u.ImplsV }
func (u *Union) Span() *Span                        { return u.SpanV }
