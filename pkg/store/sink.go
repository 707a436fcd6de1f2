package store

import (
	"fmt"
	"io"
)

// Sink receives the records of a listing in order.
type Sink[T any] interface {
	Put(T) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc[T any] func(T) error

func (f SinkFunc[T]) Put(v T) error {
	return f(v)
}

// Collector appends every record to Items.
type Collector[T any] struct {
	Items []T
}

// Collect returns an empty Collector.
func Collect[T any]() *Collector[T] {
	return &Collector[T]{}
}

func (c *Collector[T]) Put(v T) error {
	c.Items = append(c.Items, v)
	return nil
}

// Printer writes each record's String form on its own line.
type Printer[T fmt.Stringer] struct {
	w io.Writer
}

// Print returns a Printer writing to w.
func Print[T fmt.Stringer](w io.Writer) *Printer[T] {
	return &Printer[T]{w: w}
}

func (p *Printer[T]) Put(v T) error {
	_, err := fmt.Fprintln(p.w, v.String())
	return err
}
