package scopelog

import (
	"io"

	"golang.org/x/sync/errgroup"
)

// Output consumes events. Implementations must not modify the event and must
// not let their own failures escape Log.
type Output interface {
	Log(e *Event)
}

// Filter is an Output stage that can stop an event. When Admit returns false
// no later stage of the enclosing pipeline sees the event.
type Filter interface {
	Output
	Admit(e *Event) bool
}

// Pipeline runs its stages in order.
type Pipeline struct {
	stages []Output
}

// Pipe builds a pipeline from stages. Nil stages are skipped.
//
//	out := scopelog.Pipe(
//		scopelog.MinType(scopelog.TypeInfo),
//		scopelog.Fork(scopelog.NewStdSink(nil), fileSink),
//	)
func Pipe(stages ...Output) *Pipeline {
	p := &Pipeline{stages: make([]Output, 0, len(stages))}
	for _, s := range stages {
		if s != nil {
			p.stages = append(p.stages, s)
		}
	}
	return p
}

// Log passes e through each stage until a filter rejects it.
func (p *Pipeline) Log(e *Event) {
	if p == nil || e == nil {
		return
	}
	for _, stage := range p.stages {
		if f, ok := stage.(Filter); ok && !f.Admit(e) {
			return
		}
		stage.Log(e)
	}
}

// Stages returns the pipeline's stages.
func (p *Pipeline) Stages() []Output {
	out := make([]Output, len(p.stages))
	copy(out, p.stages)
	return out
}

// Close closes every stage that holds resources and returns the first error.
func (p *Pipeline) Close() error {
	return closeOutputs(p.stages)
}

// ForkOutput delivers each event to all of its outputs concurrently.
type ForkOutput struct {
	outputs []Output
}

// Fork builds a fan-out stage. Log returns only after every output has
// finished with the event.
func Fork(outputs ...Output) *ForkOutput {
	f := &ForkOutput{outputs: make([]Output, 0, len(outputs))}
	for _, o := range outputs {
		if o != nil {
			f.outputs = append(f.outputs, o)
		}
	}
	return f
}

func (f *ForkOutput) Log(e *Event) {
	if f == nil || e == nil {
		return
	}
	switch len(f.outputs) {
	case 0:
		return
	case 1:
		f.outputs[0].Log(e)
		return
	}

	var g errgroup.Group
	for _, o := range f.outputs {
		g.Go(func() error {
			o.Log(e)
			return nil
		})
	}
	_ = g.Wait()
}

// Outputs returns the fork's outputs.
func (f *ForkOutput) Outputs() []Output {
	out := make([]Output, len(f.outputs))
	copy(out, f.outputs)
	return out
}

// Close closes every output that holds resources and returns the first error.
func (f *ForkOutput) Close() error {
	return closeOutputs(f.outputs)
}

func closeOutputs(outputs []Output) error {
	var first error
	for _, o := range outputs {
		c, ok := o.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
