package netx

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// X11 sets WM_NAME on the root window of an X display, which dwm shows
// as its status text
type X11 struct {
	conn *xgb.Conn
	root xproto.Window
}

// Dial connects to display, or $DISPLAY when it is empty
func Dial(display string) (*X11, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("cannot open display %q: %w", display, err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	return &X11{conn: conn, root: screen.Root}, nil
}

// Publish replaces the root window name and waits for the server to
// acknowledge it
func (self *X11) Publish(text string) error {
	data := []byte(text)
	err := xproto.ChangePropertyChecked(
		self.conn,
		xproto.PropModeReplace,
		self.root,
		xproto.AtomWmName,
		xproto.AtomString,
		8, // bits per element
		uint32(len(data)),
		data,
	).Check()
	if err != nil {
		return fmt.Errorf("failed to set root window name: %w", err)
	}
	return nil
}

// Close drops the display connection
func (self *X11) Close() error {
	self.conn.Close()
	return nil
}
