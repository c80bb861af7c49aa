package netx

import (
	"fmt"
	"io"
)

// Publisher delivers a status line to wherever the window manager reads it
type Publisher interface {
	Publish(text string) error
	Close() error
}

const (
	KindX11      = "x11"
	KindXsetroot = "xsetroot"
	KindStdout   = "stdout"
)

// New returns the publisher for kind. display is only used by x11;
// stdout is only used by the stdout kind.
func New(kind, display string, stdout io.Writer) (Publisher, error) {
	switch kind {
	case KindX11, "":
		x, err := Dial(display)
		if err != nil {
			return nil, err
		}
		return x, nil
	case KindXsetroot:
		return NewExec("xsetroot"), nil
	case KindStdout:
		return NewWriter(stdout), nil
	default:
		return nil, fmt.Errorf("unknown publisher kind %q", kind)
	}
}
