package evaluator

import "github.com/lyraproj/pan-evaluator/dml"

type (
	frame struct {
		vars     map[string]dml.Value
		function string
	}

	// scope is a stack of local frames. The first frame is the template level frame.
	// A function frame hides all frames below it.
	scope struct {
		frames []*frame
	}
)

func newScope() *scope {
	return &scope{[]*frame{newFrame(``)}}
}

func newFrame(function string) *frame {
	return &frame{make(map[string]dml.Value, 8), function}
}

func (s *scope) push(f *frame) int {
	n := len(s.frames)
	s.frames = append(s.frames, f)
	return n
}

func (s *scope) popTo(n int) {
	for i := n; i < len(s.frames); i++ {
		s.frames[i] = nil
	}
	s.frames = s.frames[:n]
}

func (s *scope) innermost() *frame {
	return s.frames[len(s.frames)-1]
}

// visible returns the frames that are visible from the innermost frame, innermost first
func (s *scope) visible(consumer func(f *frame) bool) {
	for idx := len(s.frames) - 1; idx >= 0; idx-- {
		f := s.frames[idx]
		if !consumer(f) || f.function != `` {
			return
		}
	}
}

// lookup returns the frame that defines the named variable
func (s *scope) lookup(name string) (found *frame) {
	s.visible(func(f *frame) bool {
		if _, ok := f.vars[name]; ok {
			found = f
			return false
		}
		return true
	})
	return
}

func (s *scope) get(name string) (dml.Value, bool) {
	if f := s.lookup(name); f != nil {
		return f.vars[name], true
	}
	return nil, false
}

func (s *scope) function() (name string) {
	for idx := len(s.frames) - 1; idx >= 0; idx-- {
		if fn := s.frames[idx].function; fn != `` {
			return fn
		}
	}
	return ``
}
