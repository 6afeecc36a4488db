package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens the span to include other. Spans from different files
// are left untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Text returns the raw source slice the span covers. Out-of-range spans
// yield an empty string.
func (s Span) Text(f *File) string {
	if f == nil || s.Start > s.End {
		return ""
	}
	n := uint32(len(f.Content))
	if s.Start >= n {
		return ""
	}
	end := s.End
	if end > n {
		end = n
	}
	return string(f.Content[s.Start:end])
}
