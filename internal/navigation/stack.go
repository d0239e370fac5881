package navigation

// stack is the LIFO history of frames.
type stack struct {
	frames []Frame
}

func (s *stack) push(f Frame) {
	s.frames = append(s.frames, f)
}

func (s *stack) pop() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, true
}

func (s *stack) len() int {
	return len(s.frames)
}

func (s *stack) clear() {
	s.frames = nil
}
