package main

import (
	"io"
	"os"
)

// outputs keeps track of the files written, to be able to remove them
// if table construction fails.
type outputs struct {
	paths []string
	files []*os.File
}

func (o *outputs) create(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	o.paths = append(o.paths, path)
	o.files = append(o.files, f)
	return f, nil
}

// write creates a file and fills it with writer.
func (o *outputs) write(path string, writer func(io.Writer) error) error {
	f, err := o.create(path)
	if err != nil {
		return err
	}
	return writer(f)
}

func (o *outputs) closeAll() error {
	var first error
	for _, f := range o.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	o.files = o.files[:0]
	return first
}

func (o *outputs) removeAll() {
	o.closeAll()
	for _, path := range o.paths {
		tracer().Infof("removing %s", path)
		if err := os.Remove(path); err != nil {
			tracer().Errorf("%v", err)
		}
	}
	o.paths = o.paths[:0]
}
