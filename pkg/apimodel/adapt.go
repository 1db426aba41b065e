package apimodel

import "github.com/kallio-oss/semverify/pkg/schema"

// adaptImportablePath builds the Vertex view of a single importable_path
// edge target: properties "path" ([]string) and "public_api" (bool).
func adaptImportablePath(p *schema.ImportablePath) Vertex {
	v := newVertex(schema.KindImportablePath)
	var segs []string
	if p.Path != nil {
		segs = p.Path.Segments
	}
	v.props["path"] = segs
	v.props["public_api"] = p.PublicAPI
	return v
}

func adaptImportablePaths(paths []*schema.ImportablePath) []Vertex {
	out := make([]Vertex, 0, len(paths))
	for _, p := range paths {
		out = append(out, adaptImportablePath(p))
	}
	return out
}

func adaptSpan(s *schema.Span) []Vertex {
	if s == nil {
		return nil
	}
	v := newVertex(schema.KindSpan)
	v.props["filename"] = s.Filename
	v.props["begin_line"] = s.BeginLine
	v.props["end_line"] = s.EndLine
	return []Vertex{v}
}

func adaptAttributeMetaItem(m *schema.AttributeMetaItem) Vertex {
	v := newVertex(schema.KindAttributeMetaItem)
	v.props["base"] = m.Base
	args := make([]Vertex, 0, len(m.Arguments))
	for _, a := range m.Arguments {
		args = append(args, adaptAttributeMetaItem(a))
	}
	v.edges["argument"] = args
	return v
}

func adaptAttribute(a *schema.Attribute) Vertex {
	v := newVertex(schema.KindAttribute)
	v.props["raw_attribute"] = a.RawAttribute
	if a.Content != nil {
		v.edges["content"] = []Vertex{adaptAttributeMetaItem(a.Content)}
	}
	return v
}

func adaptAttributes(attrs []*schema.Attribute) []Vertex {
	out := make([]Vertex, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, adaptAttribute(a))
	}
	return out
}

func attrCarrier(v *vertex, attrs []string, attributes []*schema.Attribute) {
	v.props["attrs"] = attrs
	v.edges["attribute"] = adaptAttributes(attributes)
}

func adaptRequiresFeature(r *schema.RequiresFeature) Vertex {
	v := newVertex(schema.KindRequiresFeature)
	v.props["name"] = r.FeatureName
	v.props["explicit"] = r.Explicit
	v.props["globally_enabled"] = r.GloballyEnabled
	v.props["valid_for_current_target"] = r.ValidForCurrentTarget
	return v
}

func adaptRequiresFeatures(rs []*schema.RequiresFeature) []Vertex {
	out := make([]Vertex, 0, len(rs))
	for _, r := range rs {
		out = append(out, adaptRequiresFeature(r))
	}
	return out
}

func adaptGenericParameter(g *schema.GenericParameter) Vertex {
	switch {
	case g.Type != nil:
		v := newVertex(schema.KindGenericTypeParameter)
		v.props["name"] = g.Type.ParamName
		v.props["has_default"] = g.Type.HasDefault
		return v
	case g.Const != nil:
		v := newVertex(schema.KindGenericConstParam)
		v.props["name"] = g.Const.ParamName
		v.props["has_default"] = g.Const.HasDefault
		return v
	}
	return newVertex("")
}

func adaptGenericParameters(gs []*schema.GenericParameter) []Vertex {
	out := make([]Vertex, 0, len(gs))
	for _, g := range gs {
		out = append(out, adaptGenericParameter(g))
	}
	return out
}

func adaptDiscriminant(d *schema.Discriminant) []Vertex {
	if d == nil {
		return nil
	}
	v := newVertex(schema.KindDiscriminant)
	v.props["value"] = d.Value
	return []Vertex{v}
}

func adaptField(f *schema.Field) Vertex {
	v := newVertex(schema.KindField)
	v.props["name"] = f.FieldName
	v.props["visibility_limit"] = f.VisibilityLimitV
	v.props["public_api_eligible"] = f.PublicAPIEligible
	v.props["raw_type"] = f.RawTypes
	v.edges["span"] = adaptSpan(f.SpanV)
	return v
}

func adaptFields(fs []*schema.Field) []Vertex {
	out := make([]Vertex, 0, len(fs))
	for _, f := range fs {
		out = append(out, adaptField(f))
	}
	return out
}

func adaptVariant(variant *schema.Variant) Vertex {
	var v *vertex
	var fields []*schema.Field
	var disc *schema.Discriminant
	var attrs []string
	var attributes []*schema.Attribute
	switch {
	case variant.Tuple != nil:
		v = newVertex(schema.KindTupleVariant)
		v.props["name"] = variant.Tuple.VariantName
		v.props["public_api_eligible"] = variant.Tuple.PublicAPIEligible
		fields, disc, attrs, attributes = variant.Tuple.Fields, variant.Tuple.Discriminant, variant.Tuple.AttrsV, variant.Tuple.AttributesV
	case variant.Struct != nil:
		v = newVertex(schema.KindStructVariant)
		v.props["name"] = variant.Struct.VariantName
		v.props["public_api_eligible"] = variant.Struct.PublicAPIEligible
		fields, disc, attrs, attributes = variant.Struct.Fields, variant.Struct.Discriminant, variant.Struct.AttrsV, variant.Struct.AttributesV
	case variant.Plain != nil:
		v = newVertex(schema.KindPlainVariant)
		v.props["name"] = variant.Plain.VariantName
		v.props["public_api_eligible"] = variant.Plain.PublicAPIEligible
		disc, attrs, attributes = variant.Plain.Discriminant, variant.Plain.AttrsV, variant.Plain.AttributesV
	default:
		return newVertex("")
	}
	v.edges["field"] = adaptFields(fields)
	v.edges["discriminant"] = adaptDiscriminant(disc)
	attrCarrier(v, attrs, attributes)
	return v
}

func adaptVariants(vs []*schema.Variant) []Vertex {
	out := make([]Vertex, 0, len(vs))
	for _, variant := range vs {
		out = append(out, adaptVariant(variant))
	}
	return out
}

func adaptAssociatedType(a *schema.AssociatedType) Vertex {
	v := newVertex(schema.KindAssociatedType)
	v.props["name"] = a.TypeName
	v.props["has_default"] = a.HasDefault
	v.props["deprecated"] = a.Deprecated
	v.props["public_api_eligible"] = a.PublicAPIEligible
	return v
}

func adaptAssociatedTypes(as []*schema.AssociatedType) []Vertex {
	out := make([]Vertex, 0, len(as))
	for _, a := range as {
		out = append(out, adaptAssociatedType(a))
	}
	return out
}

func adaptAssociatedConstant(a *schema.AssociatedConstant) Vertex {
	v := newVertex(schema.KindAssociatedConstant)
	v.props["name"] = a.ConstName
	v.props["public_api_eligible"] = a.PublicAPIEligible
	return v
}

func adaptAssociatedConstants(as []*schema.AssociatedConstant) []Vertex {
	out := make([]Vertex, 0, len(as))
	for _, a := range as {
		out = append(out, adaptAssociatedConstant(a))
	}
	return out
}

func adaptMethod(m *schema.Method) Vertex {
	v := newVertex(schema.KindMethod)
	v.props["name"] = m.MethodName
	v.props["unsafe"] = m.Unsafe
	v.props["deprecated"] = m.Deprecated
	v.props["public_api_eligible"] = m.PublicAPIEligible
	v.props["has_default_impl"] = m.HasDefaultImpl
	v.edges["requires_feature"] = adaptRequiresFeatures(m.RequiresFeatures)
	v.edges["generic_parameter"] = adaptGenericParameters(m.GenericParams)
	v.edges["span"] = adaptSpan(m.SpanV)
	attrCarrier(v, m.AttrsV, m.AttributesV)
	return v
}

func adaptMethods(ms []*schema.Method) []Vertex {
	out := make([]Vertex, 0, len(ms))
	for _, m := range ms {
		out = append(out, adaptMethod(m))
	}
	return out
}

// traitRef is the edge target of Impl.implemented_trait: a thin wrapper
// whose own "trait" edge resolves to the full Trait vertex, letting rules
// traverse implemented_trait -> trait -> canonical_path -> path (§3.3).
func traitRef(t *schema.Trait) Vertex {
	v := newVertex("TraitRef")
	if t != nil {
		v.edges["trait"] = []Vertex{adaptTrait(t)}
	}
	return v
}

func adaptImpl(i *schema.Impl) Vertex {
	v := newVertex(schema.KindImpl)
	v.props["negative"] = i.Negative
	v.edges["implemented_trait"] = []Vertex{traitRef(i.ImplementedTrait)}
	v.edges["method"] = adaptMethods(i.Methods)
	v.edges["associated_type"] = adaptAssociatedTypes(i.AssociatedTypes)
	v.edges["associated_constant"] = adaptAssociatedConstants(i.AssociatedConsts)
	v.edges["span"] = adaptSpan(i.SpanV)
	return v
}

func adaptImpls(is []*schema.Impl) []Vertex {
	out := make([]Vertex, 0, len(is))
	for _, i := range is {
		out = append(out, adaptImpl(i))
	}
	return out
}

func adaptTrait(t *schema.Trait) Vertex {
	v := newVertex(schema.KindTrait)
	v.props["name"] = t.TraitName
	v.props["unsafe"] = t.Unsafe
	v.props["public_api_sealed"] = t.PublicAPISealed
	v.props["unconditionally_sealed"] = t.UnconditionallySealed
	v.props["deprecated"] = t.Deprecated
	v.props["visibility_limit"] = t.VisibilityLimitV
	v.edges["method"] = adaptMethods(t.Methods)
	v.edges["associated_type"] = adaptAssociatedTypes(t.AssociatedTypes)
	v.edges["associated_constant"] = adaptAssociatedConstants(t.AssociatedConstants)
	v.edges["importable_path"] = adaptImportablePaths(t.ImportablePathsV)
	if len(t.ImportablePathsV) > 0 {
		v.edges["canonical_path"] = []Vertex{adaptImportablePath(t.ImportablePathsV[0])}
	}
	v.edges["span"] = adaptSpan(t.SpanV)
	attrCarrier(v, t.AttrsV, t.AttributesV)
	return v
}

func adaptFunction(f *schema.Function) Vertex {
	v := newVertex(schema.KindFunction)
	v.props["name"] = f.FuncName
	v.props["unsafe"] = f.Unsafe
	v.props["deprecated"] = f.Deprecated
	v.props["public_api_eligible"] = f.PublicAPIEligible
	v.props["visibility_limit"] = f.VisibilityLimitV
	v.edges["requires_feature"] = adaptRequiresFeatures(f.RequiresFeatures)
	v.edges["generic_parameter"] = adaptGenericParameters(f.GenericParams)
	v.edges["importable_path"] = adaptImportablePaths(f.ImportablePathsV)
	v.edges["span"] = adaptSpan(f.SpanV)
	attrCarrier(v, f.AttrsV, f.AttributesV)
	return v
}

func adaptStatic(s *schema.Static) Vertex {
	v := newVertex(schema.KindStatic)
	v.props["name"] = s.StaticName
	v.props["visibility_limit"] = s.VisibilityLimitV
	v.props["mutable"] = s.Mutable
	v.props["value_type"] = s.TypeV
	v.edges["importable_path"] = adaptImportablePaths(s.ImportablePathsV)
	v.edges["span"] = adaptSpan(s.SpanV)
	attrCarrier(v, s.AttrsV, s.AttributesV)
	return v
}

func adaptConstant(c *schema.Constant) Vertex {
	v := newVertex(schema.KindConstant)
	v.props["name"] = c.ConstName
	v.props["visibility_limit"] = c.VisibilityLimitV
	v.props["value_type"] = c.TypeV
	v.edges["importable_path"] = adaptImportablePaths(c.ImportablePathsV)
	v.edges["span"] = adaptSpan(c.SpanV)
	attrCarrier(v, c.AttrsV, c.AttributesV)
	return v
}

func adaptEnum(e *schema.Enum) Vertex {
	v := newVertex(schema.KindEnum)
	v.props["name"] = e.EnumName
	v.props["visibility_limit"] = e.VisibilityLimitV
	v.edges["variant"] = adaptVariants(e.Variants)
	v.edges["importable_path"] = adaptImportablePaths(e.ImportablePathsV)
	v.edges["inherent_impl"] = adaptImpls(e.InherentImplsV)
	v.edges["impl"] = adaptImpls(e.ImplsV)
	v.edges["span"] = adaptSpan(e.SpanV)
	attrCarrier(v, e.AttrsV, e.AttributesV)
	return v
}

func adaptStruct(s *schema.Struct) Vertex {
	v := newVertex(schema.KindStruct)
	v.props["name"] = s.StructName
	v.props["visibility_limit"] = s.VisibilityLimitV
	v.props["struct_type"] = s.StructType
	v.edges["field"] = adaptFields(s.Fields)
	v.edges["importable_path"] = adaptImportablePaths(s.ImportablePathsV)
	v.edges["inherent_impl"] = adaptImpls(s.InherentImplsV)
	v.edges["impl"] = adaptImpls(s.ImplsV)
	v.edges["span"] = adaptSpan(s.SpanV)
	attrCarrier(v, s.AttrsV, s.AttributesV)
	return v
}

func adaptUnion(u *schema.Union) Vertex {
	v := newVertex(schema.KindUnion)
	v.props["name"] = u.UnionName
	v.props["visibility_limit"] = u.VisibilityLimitV
	v.edges["field"] = adaptFields(u.Fields)
	v.edges["importable_path"] = adaptImportablePaths(u.ImportablePathsV)
	v.edges["inherent_impl"] = adaptImpls(u.InherentImplsV)
	v.edges["impl"] = adaptImpls(u.ImplsV)
	v.edges["span"] = adaptSpan(u.SpanV)
	attrCarrier(v, u.AttrsV, u.AttributesV)
	return v
}

// Item is the sum type of everything that can sit at crate root. Exactly
// one field is non-nil.
type Item struct {
	Enum     *schema.Enum
	Struct   *schema.Struct
	Union    *schema.Union
	Trait    *schema.Trait
	Function *schema.Function
	Static   *schema.Static
	Constant *schema.Constant
}

// AdaptItem builds the generic Vertex view of one root item.
func AdaptItem(it *Item) Vertex {
	switch {
	case it.Enum != nil:
		return adaptEnum(it.Enum)
	case it.Struct != nil:
		return adaptStruct(it.Struct)
	case it.Union != nil:
		return adaptUnion(it.Union)
	case it.Trait != nil:
		return adaptTrait(it.Trait)
	case it.Function != nil:
		return adaptFunction(it.Function)
	case it.Static != nil:
		return adaptStatic(it.Static)
	case it.Constant != nil:
		return adaptConstant(it.Constant)
	}
	return newVertex("")
}
