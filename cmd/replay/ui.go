package main

import (
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell"
	"github.com/mattn/go-runewidth"

	"github.com/faiface/replay/speaker"
)

func drawTextLine(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (s *session) draw(screen tcell.Screen) {
	mainStyle := tcell.StyleDefault.
		Background(tcell.NewHexColor(0x473437)).
		Foreground(tcell.NewHexColor(0xD7D8A2))
	statusStyle := mainStyle.
		Foreground(tcell.NewHexColor(0xDDC074)).
		Bold(true)

	screen.Fill(' ', mainStyle)

	drawTextLine(screen, 0, 0, s.title, statusStyle)
	drawTextLine(screen, 0, 1, "Press [ESC] or [Q] to quit.", mainStyle)
	drawTextLine(screen, 0, 2, "Press [SPACE] to pause/resume, [M] to mute.", mainStyle)

	speaker.Lock()
	pass, total := s.r.Pass()
	played := s.rate.D(s.transport.played)
	length, known := s.r.TotalDuration()
	volume := s.volume.Volume
	silent := s.volume.Silent
	paused := s.transport.paused
	speaker.Unlock()

	lengthStatus := "?"
	if known {
		lengthStatus = length.Round(time.Second).String()
	}
	positionStatus := fmt.Sprintf("%v / %s", played.Round(time.Second), lengthStatus)
	passStatus := fmt.Sprintf("%d / %d", pass, total)
	volumeStatus := fmt.Sprintf("%.1f", volume)
	if silent {
		volumeStatus += " (muted)"
	}
	if paused {
		positionStatus += " (paused)"
	}

	drawTextLine(screen, 0, 4, "Pass:", mainStyle)
	drawTextLine(screen, 16, 4, passStatus, statusStyle)

	drawTextLine(screen, 0, 5, "Position:", mainStyle)
	drawTextLine(screen, 16, 5, positionStatus, statusStyle)

	drawTextLine(screen, 0, 6, "Volume (A/S):", mainStyle)
	drawTextLine(screen, 16, 6, volumeStatus, statusStyle)
}

func (s *session) handle(event tcell.Event) (changed, quit bool) {
	switch event := event.(type) {
	case *tcell.EventKey:
		if event.Key() == tcell.KeyESC {
			return false, true
		}

		if event.Key() != tcell.KeyRune {
			return false, false
		}

		switch unicode.ToLower(event.Rune()) {
		case 'q':
			return false, true

		case ' ':
			speaker.Lock()
			s.transport.paused = !s.transport.paused
			speaker.Unlock()
			return true, false

		case 'm':
			speaker.Lock()
			s.volume.Silent = !s.volume.Silent
			speaker.Unlock()
			return true, false

		case 'a':
			speaker.Lock()
			s.volume.Volume -= 0.1
			speaker.Unlock()
			return true, false

		case 's':
			speaker.Lock()
			s.volume.Volume += 0.1
			speaker.Unlock()
			return true, false
		}
	}
	return false, false
}

// runUI shows the status screen of s until done is closed or the user quits.
func runUI(s *session, done <-chan struct{}) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	err = screen.Init()
	if err != nil {
		return err
	}
	defer screen.Fini()
	loopUI(screen, s, done)
	return nil
}

func loopUI(screen tcell.Screen, s *session, done <-chan struct{}) {
	screen.Clear()
	s.draw(screen)
	screen.Show()

	seconds := time.NewTicker(time.Second)
	defer seconds.Stop()
	events := make(chan tcell.Event)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			event := screen.PollEvent()
			if event == nil {
				return
			}
			select {
			case events <- event:
			case <-stop:
				return
			}
		}
	}()

	for {
		select {
		case event := <-events:
			changed, quit := s.handle(event)
			if quit {
				return
			}
			if changed {
				screen.Clear()
				s.draw(screen)
				screen.Show()
			}
		case <-seconds.C:
			screen.Clear()
			s.draw(screen)
			screen.Show()
		case <-done:
			return
		}
	}
}
