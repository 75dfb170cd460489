package playground

import (
	"image"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// Run executes the window loop using shiny's driver. It blocks until the
// window closes.
func (s *Session) Run() { driver.Main(s.Main) }

// Main opens the window on scr and processes events until quit.
func (s *Session) Main(scr screen.Screen) {
	w, err := scr.NewWindow(&screen.NewWindowOptions{Width: s.winSize.X, Height: s.winSize.Y, Title: s.Title()})
	if err != nil {
		s.logger.Error("new window", "err", err)
		return
	}
	defer w.Release()

	s.setInvalidate(func() { w.Send(paint.Event{}) })
	defer s.setInvalidate(nil)
	s.logger.Info("window open", "mode", s.eng.Config().Name, "size", s.winSize)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				s.eng.Leave()
				return
			}
		case size.Event:
			s.Resize(e.Size())
			w.Send(paint.Event{})
		case paint.Event:
			s.paint(scr, w)
		case mouse.Event:
			if s.Mouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if s.Key(e) {
				w.Send(paint.Event{})
			}
			if s.done {
				s.eng.Leave()
				return
			}
		case error:
			s.logger.Error("window", "err", e)
		}
	}
}

func (s *Session) paint(scr screen.Screen, w screen.Window) {
	if s.winSize.X <= 0 || s.winSize.Y <= 0 {
		return
	}
	b, err := scr.NewBuffer(s.winSize)
	if err != nil {
		s.logger.Error("new buffer", "err", err)
		return
	}
	defer b.Release()
	s.Frame(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
