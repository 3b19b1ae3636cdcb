package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/MrSnakeDoc/boxkeep/internal/errs"
)

// Memory is an in-process Storage keyed by directory. Listing order is
// insertion order, like an unsorted remote ls.
type Memory struct {
	dirs      map[string][]string
	failList  map[string]error
	failPaths map[string]error

	Removed []string
	Copied  [][2]string
}

// NewMemory returns an empty in-process storage.
func NewMemory() *Memory {
	return &Memory{
		dirs:      make(map[string][]string),
		failList:  make(map[string]error),
		failPaths: make(map[string]error),
	}
}

// Put adds files to dir.
func (m *Memory) Put(dir string, files ...string) *Memory {
	m.dirs[dir] = append(m.dirs[dir], files...)
	return m
}

// Files returns the current entries of dir.
func (m *Memory) Files(dir string) []string {
	return append([]string(nil), m.dirs[dir]...)
}

// FailList makes List(dir) return err.
func (m *Memory) FailList(dir string, err error) { m.failList[dir] = err }

// FailPath makes Remove or Copy of p fail with err.
func (m *Memory) FailPath(p string, err error) { m.failPaths[p] = err }

func (m *Memory) List(_ context.Context, dir string) ([]string, error) {
	if err := m.failList[dir]; err != nil {
		return nil, &errs.RemoteOperationError{Op: errs.OpList, Path: dir, Err: err}
	}
	var out []string
	for _, f := range m.dirs[dir] {
		if f != "" {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *Memory) Remove(_ context.Context, p string) Outcome {
	if err := m.failPaths[p]; err != nil {
		return failed(errs.OpRemove, p, err)
	}
	dir, name := path.Split(p)
	dir = path.Clean(dir)
	files := m.dirs[dir]
	for i, f := range files {
		if f == name {
			m.dirs[dir] = append(files[:i:i], files[i+1:]...)
			m.Removed = append(m.Removed, p)
			return Outcome{OK: true}
		}
	}
	return failed(errs.OpRemove, p, fmt.Errorf("no such file"))
}

func (m *Memory) Copy(_ context.Context, src, dstDir string) Outcome {
	if err := m.failPaths[src]; err != nil {
		return failed(errs.OpCopy, src, err)
	}
	dir, name := path.Split(src)
	found := false
	for _, f := range m.dirs[path.Clean(dir)] {
		if f == name {
			found = true
			break
		}
	}
	if !found {
		return failed(errs.OpCopy, src, fmt.Errorf("no such file"))
	}
	m.dirs[dstDir] = append(m.dirs[dstDir], name)
	m.Copied = append(m.Copied, [2]string{src, dstDir})
	return Outcome{OK: true}
}

func failed(op errs.Op, p string, err error) Outcome {
	return Outcome{
		Output: err.Error(),
		Err:    &errs.RemoteOperationError{Op: op, Path: p, Output: err.Error(), Err: err},
	}
}
