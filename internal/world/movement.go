package world

import "github.com/vovakirdan/tilequest/internal/core"

// MoveOutcome is the result of one movement pass.
type MoveOutcome uint8

const (
	// MoveNoOp means no direction was pressed or there was no player to move.
	MoveNoOp MoveOutcome = iota
	// MoveMoved means at least one player moved.
	MoveMoved
	// MoveBlocked means every player's push chain ended in a wall.
	MoveBlocked
)

// String returns the outcome name.
func (o MoveOutcome) String() string {
	switch o {
	case MoveNoOp:
		return "NoOp"
	case MoveMoved:
		return "Moved"
	case MoveBlocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// MoveResult describes what one movement pass changed.
type MoveResult struct {
	Outcome MoveOutcome
	Dir     core.Dir
	// Changed lists every entity whose coordinate changed, in commit order.
	Changed []EntityID
	// Pushed counts movables shifted by players this pass.
	Pushed int
}

// AttemptMove resolves this tick's direction from frame and moves every player.
// Nothing is indexed when no direction was pressed.
func AttemptMove(r *Registry, frame core.InputFrame) MoveResult {
	dir, ok := core.ResolveDirection(frame)
	if !ok {
		return MoveResult{Outcome: MoveNoOp}
	}
	return Move(r, dir)
}

// Move pushes every player one step in dir.
//
// For each player the coordinates ahead are scanned while they hold movables;
// the run of movables found is the push chain. If the first free coordinate
// after the chain is a wall, neither the chain nor the player moves.
// Otherwise the chain and the player all shift by one step.
// Players that start on a coordinate already handled this pass are skipped.
func Move(r *Registry, dir core.Dir) MoveResult {
	result := MoveResult{Outcome: MoveNoOp, Dir: dir}

	players := r.With(TagPlayer)
	if len(players) == 0 {
		return result
	}

	idx := BuildOccupancy(r)
	delta := dir.Delta()
	seen := make(map[core.Coord]bool, len(players))
	anyMoved := false

	for _, player := range players {
		start, ok := r.Position(player)
		if !ok || seen[start] {
			continue
		}
		seen[start] = true

		chain, blocked := scanChain(idx, start, delta)
		if blocked {
			result.Outcome = MoveBlocked
			continue
		}

		for _, id := range chain {
			pos, _ := r.Position(id)
			r.Positions.Set(id, pos.Add(delta))
			result.Changed = append(result.Changed, id)
		}
		r.Positions.Set(player, start.Add(delta))
		result.Changed = append(result.Changed, player)
		result.Pushed += len(chain)
		anyMoved = true
	}

	if !anyMoved {
		return result
	}

	for _, anchor := range r.With(TagCameraAnchor) {
		pos, _ := r.Position(anchor)
		r.Positions.Set(anchor, pos.Add(delta))
		result.Changed = append(result.Changed, anchor)
	}
	result.Outcome = MoveMoved
	return result
}

// scanChain collects the contiguous movables ahead of start.
// blocked reports whether the coordinate after the chain is a wall.
func scanChain(idx OccupancyIndex, start, delta core.Coord) (chain []EntityID, blocked bool) {
	cur := start.Add(delta)
	for {
		id, ok := idx.Movable(cur)
		if !ok {
			break
		}
		chain = append(chain, id)
		cur = cur.Add(delta)
	}
	_, blocked = idx.Immovable(cur)
	return chain, blocked
}
