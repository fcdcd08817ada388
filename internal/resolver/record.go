package resolver

// Record maps semantic slots of the target to resolved type references.
type Record interface {
	// Put binds slot to ref. Unknown slots are ignored.
	Put(slot string, ref TypeRef)
	Get(slot string) (TypeRef, bool)
	// Complete reports whether every slot has been filled.
	Complete() bool
	// Copy returns a structurally independent record with the same contents.
	Copy() Record
	Slots() []string
}

// maxSlots is bounded by the width of the completion mask.
const maxSlots = 64

// SlotRecord is a fixed-slot Record backed by an array and a completion bitmask.
type SlotRecord struct {
	names  []string
	values []TypeRef
	mask   uint64
}

// NewSlotRecord creates an empty record tracking the given slots in order.
// Duplicate names and names past the 64th are dropped.
func NewSlotRecord(slots ...string) *SlotRecord {
	names := make([]string, 0, len(slots))
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if _, ok := seen[s]; ok || len(names) == maxSlots {
			continue
		}
		seen[s] = struct{}{}
		names = append(names, s)
	}
	return &SlotRecord{
		names:  names,
		values: make([]TypeRef, len(names)),
	}
}

// NewSlotFactory returns a factory producing empty SlotRecords for slots.
func NewSlotFactory(slots ...string) func() Record {
	names := append([]string(nil), slots...)
	return func() Record {
		return NewSlotRecord(names...)
	}
}

func (r *SlotRecord) index(slot string) int {
	for i, n := range r.names {
		if n == slot {
			return i
		}
	}
	return -1
}

func (r *SlotRecord) Put(slot string, ref TypeRef) {
	i := r.index(slot)
	if i < 0 || ref == nil {
		return
	}
	r.values[i] = ref
	r.mask |= 1 << uint(i)
}

func (r *SlotRecord) Get(slot string) (TypeRef, bool) {
	i := r.index(slot)
	if i < 0 || r.mask&(1<<uint(i)) == 0 {
		return nil, false
	}
	return r.values[i], true
}

func (r *SlotRecord) Complete() bool {
	full := uint64(1)<<uint(len(r.names)) - 1
	if len(r.names) == maxSlots {
		full = ^uint64(0)
	}
	return r.mask&full == full
}

func (r *SlotRecord) Copy() Record {
	return &SlotRecord{
		names:  r.names,
		values: append([]TypeRef(nil), r.values...),
		mask:   r.mask,
	}
}

func (r *SlotRecord) Slots() []string {
	return append([]string(nil), r.names...)
}
