package document

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dosirrah/mdx/internal/label"
	"github.com/dosirrah/mdx/internal/log"
	"github.com/dosirrah/mdx/internal/processor"
	"github.com/dosirrah/mdx/internal/tracing"
)

const tracerName = "mdx/document"

// Config wires the pipeline's ambient dependencies.
type Config struct {
	// Diagnostics receives per-occurrence warnings for unresolved
	// references the moment they are found (stderr in the CLI).
	// nil discards them.
	Diagnostics io.Writer

	// Banner prepends a generated-by comment to plain markdown output.
	Banner bool
}

// Pipeline runs the two-pass resolution over whole files: load through
// the format's adapter, transform, save. A fresh processor backs every
// call, so one pipeline can serve repeated runs (watch mode).
type Pipeline struct {
	diag   io.Writer
	banner bool
}

// NewPipeline creates a pipeline.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{diag: cfg.Diagnostics, banner: cfg.Banner}
}

// Run processes input and writes the result to output. Nothing is
// written when loading fails or any reference is unresolved.
func (pl *Pipeline) Run(ctx context.Context, format Format, input, output string) error {
	ctx, span := startSpan(ctx, tracing.SpanProcessDocument)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrDocumentPath, input),
		attribute.String(tracing.AttrDocumentFormat, format.String()),
		attribute.String(tracing.AttrOutputPath, output),
	)

	p := processor.New(pl.diag)

	var err error
	switch format {
	case FormatMarkdown:
		err = pl.runMarkdown(ctx, p, input, output)
	case FormatNotebook, FormatSource:
		err = pl.runNotebook(ctx, p, format, input, output)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		recordFailure(span, err)
		log.ErrorErr(log.CatDocument, "processing failed", err, "path", input)
		return err
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrLabelCount, p.Registry().Len()),
		attribute.Int(tracing.AttrLineCount, p.LineCount()),
	)
	span.SetStatus(codes.Ok, "")
	log.Debug(log.CatDocument, "processed document",
		"path", input, "output", output,
		"labels", p.Registry().Len(), "lines", p.LineCount())
	return nil
}

// Preview processes input in memory and returns the document body before
// and after resolution. Notebook formats return their normalized JSON so
// the two sides diff cleanly.
func (pl *Pipeline) Preview(ctx context.Context, format Format, input string) (before, after string, err error) {
	ctx, span := startSpan(ctx, tracing.SpanProcessDocument)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrDocumentPath, input),
		attribute.String(tracing.AttrDocumentFormat, format.String()),
	)

	p := processor.New(pl.diag)

	switch format {
	case FormatMarkdown:
		doc, err := LoadMarkdown(input)
		if err != nil {
			recordFailure(span, err)
			return "", "", err
		}
		before := doc.Text()
		if err := doc.Transform(ctx, p); err != nil {
			recordFailure(span, err)
			return "", "", err
		}
		if pl.banner {
			doc.Prepend(bannerLine(input))
		}
		span.SetStatus(codes.Ok, "")
		return before, doc.Text(), nil

	case FormatNotebook, FormatSource:
		nb, err := LoadNotebook(input, format)
		if err != nil {
			recordFailure(span, err)
			return "", "", err
		}
		beforeBytes, err := nb.Bytes()
		if err != nil {
			recordFailure(span, err)
			return "", "", err
		}
		if err := nb.Transform(ctx, p); err != nil {
			recordFailure(span, err)
			return "", "", err
		}
		afterBytes, err := nb.Bytes()
		if err != nil {
			recordFailure(span, err)
			return "", "", err
		}
		span.SetStatus(codes.Ok, "")
		return string(beforeBytes), string(afterBytes), nil

	default:
		recordFailure(span, ErrUnsupportedFormat)
		return "", "", ErrUnsupportedFormat
	}
}

// Collect runs only the first pass and returns the populated registry.
func (pl *Pipeline) Collect(ctx context.Context, format Format, input string) (*label.Registry, error) {
	_, span := startSpan(ctx, tracing.SpanPassCollect)
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrDocumentPath, input))

	p := processor.New(pl.diag)

	switch format {
	case FormatMarkdown:
		doc, err := LoadMarkdown(input)
		if err != nil {
			recordFailure(span, err)
			return nil, err
		}
		p.CollectLabels(doc.Lines())
	case FormatNotebook, FormatSource:
		nb, err := LoadNotebook(input, format)
		if err != nil {
			recordFailure(span, err)
			return nil, err
		}
		if err := nb.Collect(p); err != nil {
			recordFailure(span, err)
			return nil, err
		}
	default:
		recordFailure(span, ErrUnsupportedFormat)
		return nil, ErrUnsupportedFormat
	}

	span.SetAttributes(attribute.Int(tracing.AttrLabelCount, p.Registry().Len()))
	span.SetStatus(codes.Ok, "")
	log.Debug(log.CatProcess, "labels collected", "path", input, "labels", p.Registry().Len())
	return p.Registry(), nil
}

func (pl *Pipeline) runMarkdown(ctx context.Context, p *processor.Processor, input, output string) error {
	_, loadSpan := startSpan(ctx, tracing.SpanAdapterLoad)
	doc, err := LoadMarkdown(input)
	endSpan(loadSpan, err)
	if err != nil {
		return err
	}

	if err := doc.Transform(ctx, p); err != nil {
		return err
	}

	if pl.banner {
		doc.Prepend(bannerLine(input))
	}

	_, saveSpan := startSpan(ctx, tracing.SpanAdapterSave)
	err = doc.Save(output)
	endSpan(saveSpan, err)
	return err
}

func (pl *Pipeline) runNotebook(ctx context.Context, p *processor.Processor, format Format, input, output string) error {
	_, loadSpan := startSpan(ctx, tracing.SpanAdapterLoad)
	nb, err := LoadNotebook(input, format)
	endSpan(loadSpan, err)
	if err != nil {
		return err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int(tracing.AttrUnitCount, nb.Units()))

	if err := nb.Transform(ctx, p); err != nil {
		return err
	}

	_, saveSpan := startSpan(ctx, tracing.SpanAdapterSave)
	err = nb.Save(output)
	endSpan(saveSpan, err)
	return err
}

func bannerLine(input string) string {
	return fmt.Sprintf("<!-- Generated by mdx from %s. -->", input)
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func recordFailure(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	var undef *processor.UndefinedReferenceError
	if errors.As(err, &undef) {
		span.SetAttributes(attribute.Int(tracing.AttrUnresolvedCount, len(undef.References)))
	}
}
