package game

import "pagoda/registry"

// direction indexes the board by (line, step) so one merge routine serves
// all four shift moves.
type direction struct {
	// cell maps a line number and a position along it to a board index,
	// ordered so that position 0 is where tiles pile up.
	cell func(size, line, pos int) int
}

var (
	dirLeft  = direction{cell: func(size, line, pos int) int { return line*size + pos }}
	dirRight = direction{cell: func(size, line, pos int) int { return line*size + (size - 1 - pos) }}
	dirUp    = direction{cell: func(size, line, pos int) int { return pos*size + line }}
	dirDown  = direction{cell: func(size, line, pos int) int { return (size-1-pos)*size + line }}
)

// mergeLine compresses a line toward position 0 and merges equal neighbors
// once per pair, 2048-style. Returns the merged line, the score gained, and
// whether the line changed.
func mergeLine(line []int) ([]int, int, bool) {
	compact := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			compact = append(compact, v)
		}
	}

	merged := make([]int, 0, len(line))
	gain := 0
	for i := 0; i < len(compact); i++ {
		if i+1 < len(compact) && compact[i] == compact[i+1] {
			merged = append(merged, compact[i]*2)
			gain += compact[i] * 2
			i++
			continue
		}
		merged = append(merged, compact[i])
	}
	for len(merged) < len(line) {
		merged = append(merged, 0)
	}

	changed := false
	for i := range line {
		if line[i] != merged[i] {
			changed = true
			break
		}
	}
	return merged, gain, changed
}

// shiftMove shifts and merges every line of the board in one direction.
type shiftMove struct {
	registry.Entity
	dir direction
}

// Apply implements Move.
func (m *shiftMove) Apply(s *State) bool {
	size := s.Board.Size
	changed := false
	for line := 0; line < size; line++ {
		buf := make([]int, size)
		for pos := 0; pos < size; pos++ {
			buf[pos] = s.Board.Cells[m.dir.cell(size, line, pos)]
		}
		merged, gain, lineChanged := mergeLine(buf)
		if !lineChanged {
			continue
		}
		changed = true
		s.Score += gain
		s.lastGain += gain
		for pos := 0; pos < size; pos++ {
			s.Board.Cells[m.dir.cell(size, line, pos)] = merged[pos]
		}
	}
	return changed
}

// CanMove reports whether any registered shift direction could change the
// board: an empty cell or an adjacent equal pair.
func CanMove(b Board) bool {
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			v := b.At(row, col)
			if v == 0 {
				return true
			}
			if col+1 < b.Size && b.At(row, col+1) == v {
				return true
			}
			if row+1 < b.Size && b.At(row+1, col) == v {
				return true
			}
		}
	}
	return false
}

// The four built-in shift moves self-register during package init.
var (
	_ = registry.Bind(Moves, "left", func(registry.NoArgs) Move { return &shiftMove{dir: dirLeft} })
	_ = registry.Bind(Moves, "right", func(registry.NoArgs) Move { return &shiftMove{dir: dirRight} })
	_ = registry.Bind(Moves, "up", func(registry.NoArgs) Move { return &shiftMove{dir: dirUp} })
	_ = registry.Bind(Moves, "down", func(registry.NoArgs) Move { return &shiftMove{dir: dirDown} })
)
