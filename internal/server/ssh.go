package server

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gliderlabs/ssh"

	"pixelglyph/internal/gallery"
	"pixelglyph/internal/render"
)

// SSHServer serves the gallery to SSH clients as rendered text frames.
type SSHServer struct {
	gallery *gallery.Gallery
	viewers *Viewers
	addr    string
	hostKey string
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, g *gallery.Gallery) *SSHServer {
	return &SSHServer{
		gallery: g,
		viewers: NewViewers(),
		addr:    addr,
		hostKey: hostKey,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s (%d entries)", s.addr, s.gallery.Len())
	return server.ListenAndServe()
}

// startIndex resolves the entry shown first: an explicit command argument
// wins, then the user's last viewed entry, then the first entry.
func (s *SSHServer) startIndex(args []string, last string) (int, error) {
	if len(args) > 0 {
		name := strings.Join(args, " ")
		i := s.gallery.Index(name)
		if i < 0 {
			return 0, fmt.Errorf("unknown entry %q; available: %s", name, strings.Join(s.gallery.Names(), ", "))
		}
		return i, nil
	}
	if i := s.gallery.Index(last); i >= 0 {
		return i, nil
	}
	return 0, nil
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		sess.Exit(1)
		return
	}
	if s.gallery.Len() == 0 {
		fmt.Fprintln(sess, "Error: gallery is empty")
		sess.Exit(1)
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	id, last := s.viewers.Add(username)
	index, err := s.startIndex(sess.Command(), last)
	if err != nil {
		s.viewers.Remove(id, "")
		fmt.Fprintf(sess, "Error: %v\n", err)
		sess.Exit(1)
		return
	}

	log.Printf("Viewer connected: %s (%s), %d online", username, id, s.viewers.Count())
	defer func() {
		s.viewers.Remove(id, s.gallery.At(index).Name)
		log.Printf("Viewer disconnected: %s (%s)", username, id)
	}()

	mode := sessionColorMode(sess.Environ(), ptyReq.Term)
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height

	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	defer func() {
		io.WriteString(sess, render.Reset)
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	draw := func() bool {
		f := frame{
			entry: s.gallery.At(index),
			mode:  mode,
			pos:   index,
			total: s.gallery.Len(),
			termW: termW,
			termH: termH,
		}
		if err := f.compose(sess); err != nil {
			log.Printf("Frame error for %s: %v", id, err)
			return false
		}
		return true
	}

	actionCh := make(chan Action, 16)
	quitCh := make(chan struct{})
	done := sess.Context().Done()

	// Goroutine: read input
	go func() {
		defer close(quitCh)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, action := range parseInput(buf[:n]) {
				if action == ActionQuit {
					return
				}
				select {
				case actionCh <- action:
				case <-done:
					return
				}
			}
		}
	}()

	if !draw() {
		return
	}

	for {
		select {
		case <-quitCh:
			return
		case <-done:
			return
		case win, ok := <-winCh:
			if !ok {
				winCh = nil
				continue
			}
			termW, termH = win.Width, win.Height
		case action := <-actionCh:
			switch action {
			case ActionNext:
				index = s.gallery.Next(index)
			case ActionPrev:
				index = s.gallery.Prev(index)
			}
		}
		if !draw() {
			return
		}
	}
}
