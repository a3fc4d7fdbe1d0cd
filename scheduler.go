package vtengine

import "time"

// scheduler is the write pipeline (C6). A single Write call can carry an
// arbitrarily large burst of output (a `cat` of a big file, a redraw from a
// full-screen program); feeding it to Parser in one uninterrupted loop would
// starve any collaborator waiting on a refresh until the whole burst lands.
// scheduler instead pauses every yieldBytes bytes or yieldInterval of wall
// time, whichever comes first, to flush whatever rows went dirty in that
// slice as a refresh event, then continues (spec §4.5 "Write scheduler").
// It does not hand control back or reschedule itself: the whole write is
// processed within the Submit call.
type scheduler struct {
	parser  *Parser
	takeDirty func() (start, end int, ok bool)
	refresh func(start, end int)

	yieldInterval time.Duration
	yieldBytes    int
}

const (
	defaultYieldInterval = 16 * time.Millisecond
	defaultYieldBytes    = 4096
)

func newScheduler(parser *Parser, takeDirty func() (int, int, bool), refresh func(int, int)) *scheduler {
	return &scheduler{
		parser:        parser,
		takeDirty:     takeDirty,
		refresh:       refresh,
		yieldInterval: defaultYieldInterval,
		yieldBytes:    defaultYieldBytes,
	}
}

// Submit feeds data through the parser, flushing dirty-row refreshes at the
// configured cadence instead of only once at the end.
func (s *scheduler) Submit(data []byte) {
	start := time.Now()
	sinceYield := 0

	for i := 0; i < len(data); i++ {
		s.parser.Feed(data[i : i+1])
		sinceYield++

		if sinceYield >= s.yieldBytes || time.Since(start) >= s.yieldInterval {
			s.flush()
			sinceYield = 0
			start = time.Now()
		}
	}
	s.flush()
}

func (s *scheduler) flush() {
	if from, to, ok := s.takeDirty(); ok {
		s.refresh(from, to)
	}
}
