/*
Package vmt provides parsing, merging, and writing for Source engine VMT
material files.

It handles both standard shader documents and patch documents, keeps the
insertion order of parameters stable across parse/merge/format cycles, and
distinguishes generated parameters from hand-edited ones so regeneration
never clobbers manual tuning.

Reader example:

	doc, err := vmt.DecodeFile("crate.vmt", nil)
	if err != nil {
		// handle error
	}

Writer example:

	out, err := vmt.Format(doc, nil)
	if err != nil {
		// handle error
	}

Merge example:

	gen := vmt.NewPatchDocument("crate", vmt.TemplateOptions{MaterialsPath: "models/props"})
	ctx := vmt.ClassificationContext{BaseName: "crate", DerivedKeys: vmt.DefaultDerivedKeys()}
	merged := vmt.Merge(doc, gen, ctx)
	_ = vmt.EncodeFile("crate.vmt", merged, nil)

Validator example:

	issues := vmt.Validate(doc, nil)
	if len(issues) != 0 {
		// handle validation issues
	}

Batch example:

	jobs := []vmt.Job{{OutputPath: "crate.vmt", Generated: gen, Context: ctx}}
	results := vmt.RunBatch(jobs, &vmt.BatchOptions{Workers: 8})
	_ = results
*/
package vmt
