package slot

// Generate produces the empty slot sequence covering [StartTime, EndTime)
// in steps of Interval minutes. A start at or after the end yields an empty
// sequence. Non-positive intervals and malformed times are rejected rather
// than looping.
func Generate(s Settings) ([]Slot, error) {
	if s.Interval <= 0 {
		return nil, ErrInvalidInterval
	}
	start, err := ParseTime(s.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseTime(s.EndTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return []Slot{}, nil
	}

	slots := make([]Slot, 0, (end-start-1)/s.Interval+1)
	for m := start; m < end; m += s.Interval {
		t := MinutesToTime(m)
		slots = append(slots, Slot{ID: IDForTime(t), Time: t})
	}
	return slots, nil
}

// Update returns a new sequence with updated stored in place of the slot
// sharing its ID, and blocking recomputed for that task.
//
// Slots previously blocked by updated.ID are released first, so shrinking a
// task frees what it no longer covers. If the task is occupied and longer
// than interval, every following slot that starts before the task ends is
// blocked unless it is itself occupied. Occupied slots are skipped but do not
// end the scan. A slot already blocked by another task is taken over by this
// one (last writer wins). An unknown ID returns an unchanged copy.
func Update(updated Slot, slots []Slot, interval int) []Slot {
	out := clone(slots)
	idx := indexOf(out, updated.ID)
	if idx == -1 {
		return out
	}

	release(out, updated.ID)

	// An occupied slot can never also be blocked.
	if updated.IsOccupied {
		updated.IsBlocked = false
		updated.ParentTaskID = ""
	}
	out[idx] = updated

	if !updated.IsOccupied || updated.Duration <= interval {
		return out
	}

	end := TimeToMinutes(updated.Time) + updated.Duration
	for i := idx + 1; i < len(out); i++ {
		if TimeToMinutes(out[i].Time) >= end {
			break
		}
		if out[i].IsOccupied {
			continue
		}
		out[i].IsBlocked = true
		out[i].ParentTaskID = updated.ID
	}
	return out
}

// Delete returns a new sequence in which the slot with the given ID is
// emptied and every slot it was blocking is released. The slot keeps its
// position; an unknown ID returns an unchanged copy.
func Delete(id string, slots []Slot) []Slot {
	out := clone(slots)
	for i := range out {
		switch {
		case out[i].ID == id:
			out[i] = Slot{ID: out[i].ID, Time: out[i].Time}
		case out[i].ParentTaskID == id:
			out[i].IsBlocked = false
			out[i].ParentTaskID = ""
		}
	}
	return out
}

// Find returns the slot with the given ID.
func Find(slots []Slot, id string) (Slot, bool) {
	if i := indexOf(slots, id); i != -1 {
		return slots[i], true
	}
	return Slot{}, false
}

// FindByTime returns the slot starting at the given "HH:MM" time.
func FindByTime(slots []Slot, t string) (Slot, bool) {
	return Find(slots, IDForTime(t))
}

// Children returns the slots currently blocked by the task with the given ID.
func Children(slots []Slot, id string) []Slot {
	var result []Slot
	for _, s := range slots {
		if s.IsBlocked && s.ParentTaskID == id {
			result = append(result, s)
		}
	}
	return result
}

func release(slots []Slot, parentID string) {
	for i := range slots {
		if slots[i].ParentTaskID == parentID {
			slots[i].IsBlocked = false
			slots[i].ParentTaskID = ""
		}
	}
}

func indexOf(slots []Slot, id string) int {
	for i := range slots {
		if slots[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}
