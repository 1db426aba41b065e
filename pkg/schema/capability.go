// Package schema declares the vertex and edge vocabulary of the API graph:
// the capability interfaces shared by several item kinds, and the concrete
// item variants each kind of API item is modeled as.
package schema

// Kind discriminates the concrete variant a Vertex implements. Type
// refinement ("... on Variant" in the query language) is a checked
// downcast keyed on Kind, never a reflection trick.
type Kind string

const (
	KindEnum                 Kind = "Enum"
	KindStruct               Kind = "Struct"
	KindUnion                Kind = "Union"
	KindTrait                Kind = "Trait"
	KindFunction             Kind = "Function"
	KindStatic               Kind = "Static"
	KindConstant             Kind = "Constant"
	KindTupleVariant         Kind = "TupleVariant"
	KindStructVariant        Kind = "StructVariant"
	KindPlainVariant         Kind = "PlainVariant"
	KindField                Kind = "Field"
	KindMethod               Kind = "Method"
	KindAssociatedType       Kind = "AssociatedType"
	KindAssociatedConstant   Kind = "AssociatedConstant"
	KindImpl                 Kind = "Impl"
	KindAttribute            Kind = "Attribute"
	KindAttributeMetaItem    Kind = "AttributeMetaItem"
	KindGenericTypeParameter Kind = "GenericTypeParameter"
	KindGenericConstParam    Kind = "GenericConstParameter"
	KindRequiresFeature      Kind = "RequiresFeature"
	KindSpan                 Kind = "Span"
	KindPath                 Kind = "Path"
	KindImportablePath       Kind = "ImportablePath"
	KindDiscriminant         Kind = "Discriminant"
)

// Named is the capability shared by any vertex exposing a scalar name.
type Named interface {
	Name() string
}

// Importable is the capability shared by vertices reachable via 0+
// importable paths, each flagged public or not.
type Importable interface {
	ImportablePaths() []*ImportablePath
}

// AttributeCarrier is the capability shared by vertices carrying
// attributes, both as a structured attribute edge set and a denormalized
// raw string list.
type AttributeCarrier interface {
	Attributes() []*Attribute
	Attrs() []string
}

// Visibility is the capability shared by vertices with a visibility
// scope, e.g. "public" or "crate".
type Visibility interface {
	VisibilityLimit() string
}

// ImplOwner is the capability shared by Struct/Enum/Union: owners of
// inherent and trait impl blocks.
type ImplOwner interface {
	InherentImpls() []*Impl
	Impls() []*Impl
}

// GlobalValue is the supertype shared by Static and Constant.
type GlobalValue interface {
	Named
	Visibility
	ValueType() string
}

// Spanned is the capability shared by vertices with an optional source
// location.
type Spanned interface {
	Span() *Span
}
