package vmt

// Merge combines an existing parsed document with a freshly generated
// template document into one final document.
//
// When existing is nil the generated document is returned as-is (first
// generation). Otherwise the existing document's structural shape is
// preserved: a standard document stays standard, a patch stays patch with
// its include path retained verbatim, and the merge operates per parameter
// set. Within each set, parameters classified derived by Classify are
// overwritten in place (or appended in generated order when new); custom
// parameters keep their existing value and position and the generated
// value is discarded.
//
// Merging a document with itself yields value-equal parameter sets for any
// classification context.
func Merge(existing, generated *Document, ctx ClassificationContext) *Document {
	if existing == nil {
		return generated.Clone()
	}

	out := existing.Clone()
	switch existing.Kind {
	case KindStandard:
		gen := generated.Flatten()
		mergeSet(&out.Params, &gen, ctx)

	case KindPatch:
		genInsert, genReplace := splitForPatch(existing, generated)
		mergeSet(&out.Insert, &genInsert, ctx)
		mergeSet(&out.Replace, &genReplace, ctx)
	}

	return out
}

// mergeSet overlays generated onto dst according to the classification.
func mergeSet(dst, generated *ParameterSet, ctx ClassificationContext) {
	derived := Classify(dst, generated, ctx)
	for _, p := range generated.Params() {
		if derived.Has(p.Key) {
			dst.Set(p.Key, p.Value)
		}
	}
}

// splitForPatch routes generated parameters into the insert/replace slots
// of an existing patch document. A generated patch contributes its own
// sections directly. A generated standard document is split per key: keys
// the existing document already holds keep their section, anything else is
// additive and goes to insert.
func splitForPatch(existing, generated *Document) (insert, replace ParameterSet) {
	if generated.Kind == KindPatch {
		return generated.Insert.Clone(), generated.Replace.Clone()
	}

	for _, p := range generated.Params.Params() {
		if existing.Replace.Has(p.Key) {
			replace.Set(p.Key, p.Value)
			continue
		}
		insert.Set(p.Key, p.Value)
	}

	return insert, replace
}
