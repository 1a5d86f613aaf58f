package shell

import "errors"

var (
	ErrDirStackFull  = errors.New("directory stack is full")
	ErrDirStackEmpty = errors.New("directory stack is empty")
)

// DirStack holds directories saved by pushd, newest last.
type DirStack struct {
	dirs []string
	max  int
}

func NewDirStack(max int) *DirStack {
	return &DirStack{max: max}
}

func (d *DirStack) Push(dir string) error {
	if len(d.dirs) >= d.max {
		return ErrDirStackFull
	}
	d.dirs = append(d.dirs, dir)
	return nil
}

func (d *DirStack) Pop() (string, error) {
	if len(d.dirs) == 0 {
		return "", ErrDirStackEmpty
	}
	dir := d.dirs[len(d.dirs)-1]
	d.dirs = d.dirs[:len(d.dirs)-1]
	return dir, nil
}

// List returns the stack newest first.
func (d *DirStack) List() []string {
	out := make([]string, 0, len(d.dirs))
	for i := len(d.dirs) - 1; i >= 0; i-- {
		out = append(out, d.dirs[i])
	}
	return out
}

func (d *DirStack) Len() int { return len(d.dirs) }
