package apimodel

import (
	"encoding/json"
	"fmt"

	"github.com/kallio-oss/semverify/pkg/schema"
)

// The fixture JSON format is a deliberately simple, self-contained
// stand-in for the library toolchain's real JSON output (out of scope
// per spec.md §1/§6.1): one object per root item, tagged by "kind".
// Tests and `semverify check --baseline/--current` both load this
// format; wiring a real extractor means producing the same shape.

type fixtureDocument struct {
	Items []fixtureItem `json:"items"`
}

type fixtureItem struct {
	Kind     string          `json:"kind"`
	Name     string          `json:"name"`
	Visibility string        `json:"visibility,omitempty"`
	Unsafe   bool            `json:"unsafe,omitempty"`
	Deprecated bool          `json:"deprecated,omitempty"`
	PublicAPIEligible *bool  `json:"public_api_eligible,omitempty"`
	PublicAPISealed   bool   `json:"public_api_sealed,omitempty"`
	UnconditionallySealed bool `json:"unconditionally_sealed,omitempty"`
	ValueType string          `json:"value_type,omitempty"`
	Mutable   bool            `json:"mutable,omitempty"`
	StructType string         `json:"struct_type,omitempty"`

	Attrs      []string         `json:"attrs,omitempty"`
	Attributes []fixtureAttr    `json:"attributes,omitempty"`
	Paths      []fixturePath    `json:"importable_paths,omitempty"`
	Span       *fixtureSpan     `json:"span,omitempty"`

	Fields           []fixtureField    `json:"fields,omitempty"`
	Variants         []fixtureVariant  `json:"variants,omitempty"`
	Methods          []fixtureMethod   `json:"methods,omitempty"`
	AssociatedTypes  []fixtureAssocType `json:"associated_types,omitempty"`
	AssociatedConsts []fixtureAssocConst `json:"associated_constants,omitempty"`
	InherentImpls    []fixtureImpl     `json:"inherent_impls,omitempty"`
	Impls            []fixtureImpl     `json:"impls,omitempty"`
	RequiresFeatures []fixtureFeature  `json:"requires_features,omitempty"`
	GenericParams    []fixtureGeneric  `json:"generic_parameters,omitempty"`
}

type fixturePath struct {
	Segments  []string `json:"segments"`
	PublicAPI bool     `json:"public_api"`
}

type fixtureSpan struct {
	Filename  string `json:"filename"`
	BeginLine int    `json:"begin_line"`
	EndLine   int    `json:"end_line"`
}

type fixtureAttrMeta struct {
	Base      string            `json:"base"`
	Arguments []fixtureAttrMeta `json:"arguments,omitempty"`
}

type fixtureAttr struct {
	Raw     string          `json:"raw"`
	Content fixtureAttrMeta `json:"content"`
}

type fixtureField struct {
	Name              string   `json:"name"`
	Visibility        string   `json:"visibility"`
	PublicAPIEligible bool     `json:"public_api_eligible"`
	RawTypes          []string `json:"raw_types,omitempty"`
	Span              *fixtureSpan `json:"span,omitempty"`
}

type fixtureVariant struct {
	SubKind           string         `json:"sub_kind"` // "tuple" | "struct" | "plain"
	Name              string         `json:"name"`
	PublicAPIEligible bool           `json:"public_api_eligible"`
	Fields            []fixtureField `json:"fields,omitempty"`
	Discriminant      *string        `json:"discriminant,omitempty"`
	Attrs             []string       `json:"attrs,omitempty"`
	Attributes        []fixtureAttr  `json:"attributes,omitempty"`
}

type fixtureMethod struct {
	Name              string           `json:"name"`
	Unsafe            bool             `json:"unsafe,omitempty"`
	Deprecated        bool             `json:"deprecated,omitempty"`
	PublicAPIEligible bool             `json:"public_api_eligible"`
	HasDefaultImpl    bool             `json:"has_default_impl,omitempty"`
	RequiresFeatures  []fixtureFeature `json:"requires_features,omitempty"`
	GenericParams     []fixtureGeneric `json:"generic_parameters,omitempty"`
	Attrs             []string         `json:"attrs,omitempty"`
	Attributes        []fixtureAttr    `json:"attributes,omitempty"`
	Span              *fixtureSpan     `json:"span,omitempty"`
}

type fixtureAssocType struct {
	Name              string `json:"name"`
	HasDefault        bool   `json:"has_default,omitempty"`
	Deprecated        bool   `json:"deprecated,omitempty"`
	PublicAPIEligible bool   `json:"public_api_eligible"`
}

type fixtureAssocConst struct {
	Name              string `json:"name"`
	PublicAPIEligible bool   `json:"public_api_eligible"`
}

type fixtureImpl struct {
	Negative         bool              `json:"negative,omitempty"`
	TraitName        string            `json:"trait_name,omitempty"`
	TraitPath        []string          `json:"trait_path,omitempty"`
	Methods          []fixtureMethod   `json:"methods,omitempty"`
	AssociatedTypes  []fixtureAssocType `json:"associated_types,omitempty"`
	AssociatedConsts []fixtureAssocConst `json:"associated_constants,omitempty"`
	Span             *fixtureSpan      `json:"span,omitempty"`
}

type fixtureFeature struct {
	Name                  string `json:"name"`
	Explicit              bool   `json:"explicit"`
	GloballyEnabled       bool   `json:"globally_enabled"`
	ValidForCurrentTarget bool   `json:"valid_for_current_target"`
}

type fixtureGeneric struct {
	SubKind    string `json:"sub_kind"` // "type" | "const"
	Name       string `json:"name"`
	HasDefault bool   `json:"has_default,omitempty"`
}

// LoadFixture parses the fixture JSON format into a Graph.
func LoadFixture(data []byte) (*Graph, error) {
	var doc fixtureDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixture graph: %w", err)
	}

	g := NewGraph()
	for _, it := range doc.Items {
		converted, err := convertItem(it)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", it.Name, err)
		}
		g.AddItem(converted)
	}
	return g, nil
}

func convertItem(it fixtureItem) (*Item, error) {
	attrs := it.Attrs
	attributes := convertAttrs(it.Attributes)
	paths := convertPaths(it.Paths)
	span := convertSpan(it.Span)
	inherentImpls := convertImpls(it.InherentImpls)
	impls := convertImpls(it.Impls)

	switch it.Kind {
	case "enum":
		return &Item{Enum: &schema.Enum{
			EnumName: it.Name, VisibilityLimitV: it.Visibility,
			Variants: convertVariants(it.Variants), ImportablePathsV: paths,
			AttrsV: attrs, AttributesV: attributes,
			InherentImplsV: inherentImpls, ImplsV: impls, SpanV: span,
		}}, nil
	case "struct":
		return &Item{Struct: &schema.Struct{
			StructName: it.Name, VisibilityLimitV: it.Visibility, StructType: it.StructType,
			Fields: convertFields(it.Fields), ImportablePathsV: paths,
			AttrsV: attrs, AttributesV: attributes,
			InherentImplsV: inherentImpls, ImplsV: impls, SpanV: span,
		}}, nil
	case "union":
		return &Item{Union: &schema.Union{
			UnionName: it.Name, VisibilityLimitV: it.Visibility,
			Fields: convertFields(it.Fields), ImportablePathsV: paths,
			AttrsV: attrs, AttributesV: attributes,
			InherentImplsV: inherentImpls, ImplsV: impls, SpanV: span,
		}}, nil
	case "trait":
		return &Item{Trait: &schema.Trait{
			TraitName: it.Name, Unsafe: it.Unsafe,
			PublicAPISealed: it.PublicAPISealed, UnconditionallySealed: it.UnconditionallySealed,
			Deprecated: it.Deprecated, VisibilityLimitV: it.Visibility,
			Methods: convertMethods(it.Methods), AssociatedTypes: convertAssocTypes(it.AssociatedTypes),
			AssociatedConstants: convertAssocConsts(it.AssociatedConsts),
			ImportablePathsV: paths, AttrsV: attrs, AttributesV: attributes, SpanV: span,
		}}, nil
	case "function":
		return &Item{Function: &schema.Function{
			FuncName: it.Name, Unsafe: it.Unsafe, Deprecated: it.Deprecated,
			PublicAPIEligible: boolDefault(it.PublicAPIEligible, true),
			VisibilityLimitV: it.Visibility,
			RequiresFeatures: convertFeatures(it.RequiresFeatures),
			GenericParams: convertGenerics(it.GenericParams),
			ImportablePathsV: paths, AttrsV: attrs, AttributesV: attributes, SpanV: span,
		}}, nil
	case "static":
		return &Item{Static: &schema.Static{
			StaticName: it.Name, VisibilityLimitV: it.Visibility, Mutable: it.Mutable,
			TypeV: it.ValueType, ImportablePathsV: paths,
			AttrsV: attrs, AttributesV: attributes, SpanV: span,
		}}, nil
	case "constant":
		return &Item{Constant: &schema.Constant{
			ConstName: it.Name, VisibilityLimitV: it.Visibility, TypeV: it.ValueType,
			ImportablePathsV: paths, AttrsV: attrs, AttributesV: attributes, SpanV: span,
		}}, nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", it.Kind)
	}
}

func boolDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func convertSpan(s *fixtureSpan) *schema.Span {
	if s == nil {
		return nil
	}
	return &schema.Span{Filename: s.Filename, BeginLine: s.BeginLine, EndLine: s.EndLine}
}

func convertPaths(ps []fixturePath) []*schema.ImportablePath {
	out := make([]*schema.ImportablePath, 0, len(ps))
	for _, p := range ps {
		out = append(out, &schema.ImportablePath{Path: &schema.Path{Segments: p.Segments}, PublicAPI: p.PublicAPI})
	}
	return out
}

func convertAttrMeta(m fixtureAttrMeta) *schema.AttributeMetaItem {
	out := &schema.AttributeMetaItem{Base: m.Base}
	for _, a := range m.Arguments {
		out.Arguments = append(out.Arguments, convertAttrMeta(a))
	}
	return out
}

func convertAttrs(as []fixtureAttr) []*schema.Attribute {
	out := make([]*schema.Attribute, 0, len(as))
	for _, a := range as {
		out = append(out, &schema.Attribute{RawAttribute: a.Raw, Content: convertAttrMeta(a.Content)})
	}
	return out
}

func convertFields(fs []fixtureField) []*schema.Field {
	out := make([]*schema.Field, 0, len(fs))
	for _, f := range fs {
		out = append(out, &schema.Field{
			FieldName: f.Name, VisibilityLimitV: f.Visibility,
			PublicAPIEligible: f.PublicAPIEligible, RawTypes: f.RawTypes,
			SpanV: convertSpan(f.Span),
		})
	}
	return out
}

func convertDiscriminant(d *string) *schema.Discriminant {
	if d == nil {
		return nil
	}
	return &schema.Discriminant{Value: *d}
}

func convertVariants(vs []fixtureVariant) []*schema.Variant {
	out := make([]*schema.Variant, 0, len(vs))
	for _, v := range vs {
		disc := convertDiscriminant(v.Discriminant)
		fields := convertFields(v.Fields)
		attrs := convertAttrs(v.Attributes)
		switch v.SubKind {
		case "tuple":
			out = append(out, &schema.Variant{Tuple: &schema.TupleVariant{
				VariantName: v.Name, PublicAPIEligible: v.PublicAPIEligible,
				Fields: fields, Discriminant: disc, AttrsV: v.Attrs, AttributesV: attrs,
			}})
		case "struct":
			out = append(out, &schema.Variant{Struct: &schema.StructVariant{
				VariantName: v.Name, PublicAPIEligible: v.PublicAPIEligible,
				Fields: fields, Discriminant: disc, AttrsV: v.Attrs, AttributesV: attrs,
			}})
		default:
			out = append(out, &schema.Variant{Plain: &schema.PlainVariant{
				VariantName: v.Name, PublicAPIEligible: v.PublicAPIEligible,
				Discriminant: disc, AttrsV: v.Attrs, AttributesV: attrs,
			}})
		}
	}
	return out
}

func convertFeatures(fs []fixtureFeature) []*schema.RequiresFeature {
	out := make([]*schema.RequiresFeature, 0, len(fs))
	for _, f := range fs {
		out = append(out, &schema.RequiresFeature{
			FeatureName: f.Name, Explicit: f.Explicit,
			GloballyEnabled: f.GloballyEnabled, ValidForCurrentTarget: f.ValidForCurrentTarget,
		})
	}
	return out
}

func convertGenerics(gs []fixtureGeneric) []*schema.GenericParameter {
	out := make([]*schema.GenericParameter, 0, len(gs))
	for _, g := range gs {
		if g.SubKind == "const" {
			out = append(out, &schema.GenericParameter{Const: &schema.GenericConstParameter{ParamName: g.Name, HasDefault: g.HasDefault}})
		} else {
			out = append(out, &schema.GenericParameter{Type: &schema.GenericTypeParameter{ParamName: g.Name, HasDefault: g.HasDefault}})
		}
	}
	return out
}

func convertMethods(ms []fixtureMethod) []*schema.Method {
	out := make([]*schema.Method, 0, len(ms))
	for _, m := range ms {
		out = append(out, &schema.Method{
			MethodName: m.Name, Unsafe: m.Unsafe, Deprecated: m.Deprecated,
			PublicAPIEligible: m.PublicAPIEligible, HasDefaultImpl: m.HasDefaultImpl,
			RequiresFeatures: convertFeatures(m.RequiresFeatures),
			GenericParams: convertGenerics(m.GenericParams),
			AttrsV: m.Attrs, AttributesV: convertAttrs(m.Attributes),
			SpanV: convertSpan(m.Span),
		})
	}
	return out
}

func convertAssocTypes(as []fixtureAssocType) []*schema.AssociatedType {
	out := make([]*schema.AssociatedType, 0, len(as))
	for _, a := range as {
		out = append(out, &schema.AssociatedType{TypeName: a.Name, HasDefault: a.HasDefault, Deprecated: a.Deprecated, PublicAPIEligible: a.PublicAPIEligible})
	}
	return out
}

func convertAssocConsts(as []fixtureAssocConst) []*schema.AssociatedConstant {
	out := make([]*schema.AssociatedConstant, 0, len(as))
	for _, a := range as {
		out = append(out, &schema.AssociatedConstant{ConstName: a.Name, PublicAPIEligible: a.PublicAPIEligible})
	}
	return out
}

func convertImpls(is []fixtureImpl) []*schema.Impl {
	out := make([]*schema.Impl, 0, len(is))
	for _, i := range is {
		var tr *schema.Trait
		if i.TraitName != "" {
			tr = &schema.Trait{TraitName: i.TraitName, ImportablePathsV: []*schema.ImportablePath{
				{Path: &schema.Path{Segments: i.TraitPath}, PublicAPI: true},
			}}
		}
		out = append(out, &schema.Impl{
			Negative: i.Negative, ImplementedTrait: tr, TraitPath: &schema.Path{Segments: i.TraitPath},
			Methods: convertMethods(i.Methods), AssociatedTypes: convertAssocTypes(i.AssociatedTypes),
			AssociatedConsts: convertAssocConsts(i.AssociatedConsts), SpanV: convertSpan(i.Span),
		})
	}
	return out
}
