package tracing

// Span attribute keys for document processing traces.
const (
	// Document attributes
	AttrDocumentPath   = "document.path"
	AttrDocumentFormat = "document.format"
	AttrUnitCount      = "document.units"
	AttrLineCount      = "document.lines"
	AttrOutputPath     = "output.path"

	// Resolution attributes
	AttrLabelCount      = "labels.count"
	AttrUnresolvedCount = "references.unresolved"
)

// Span names for the processing pipeline.
const (
	SpanProcessDocument = "document.process"
	SpanPassCollect     = "pass.collect"
	SpanPassSubstitute  = "pass.substitute"
	SpanAdapterLoad     = "adapter.load"
	SpanAdapterSave     = "adapter.save"
)
