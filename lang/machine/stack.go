package machine

import (
	"github.com/xsmahel/ippcode22/lang/ipperr"
	"github.com/xsmahel/ippcode22/lang/types"
)

// DataStack is the LIFO sequence of Values PUSHS/POPS operate on.
type DataStack struct {
	items []types.Value
}

func (s *DataStack) Push(v types.Value) {
	s.items = append(s.items, v)
}

func (s *DataStack) Pop() (types.Value, *ipperr.Error) {
	if len(s.items) == 0 {
		return nil, ipperr.New(ipperr.MissingValue, "POPS: data stack is empty")
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

func (s *DataStack) Len() int { return len(s.items) }

// CallStack is the LIFO sequence of return instruction indices CALL/RETURN
// operate on.
type CallStack struct {
	items []int
}

func (s *CallStack) Push(pc int) {
	s.items = append(s.items, pc)
}

func (s *CallStack) Pop() (int, *ipperr.Error) {
	if len(s.items) == 0 {
		return 0, ipperr.New(ipperr.MissingValue, "RETURN: call stack is empty")
	}
	pc := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return pc, nil
}

func (s *CallStack) Len() int { return len(s.items) }
