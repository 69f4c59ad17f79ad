package domain

// ChangeInfo describes the partner refs a mutation touched, before and after.
// For creations OldRefs is empty, for deletions NewRefs is empty, and for
// updates that re-point a transaction both sides carry entries.
type ChangeInfo struct {
	OldRefs []PartnerRef
	NewRefs []PartnerRef
}

// Union returns the deduplicated union of old and new refs, in first-seen
// order. This is the partner set whose derived views must be refreshed.
func (c ChangeInfo) Union() []PartnerRef {
	seen := make(map[PartnerRef]struct{}, len(c.OldRefs)+len(c.NewRefs))
	union := make([]PartnerRef, 0, len(c.OldRefs)+len(c.NewRefs))
	for _, ref := range append(append([]PartnerRef{}, c.OldRefs...), c.NewRefs...) {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		union = append(union, ref)
	}
	return union
}

// TransactionChange builds the ChangeInfo for a transaction mutation.
// Pass nil for old on create, nil for new on delete.
func TransactionChange(old, new *Transaccion) ChangeInfo {
	var info ChangeInfo
	if old != nil {
		info.OldRefs = old.Refs()
	}
	if new != nil {
		info.NewRefs = new.Refs()
	}
	return info
}

// TripChange builds the ChangeInfo for a trip mutation.
func TripChange(old, new *Viaje) ChangeInfo {
	var info ChangeInfo
	if old != nil {
		info.OldRefs = old.Refs()
	}
	if new != nil {
		info.NewRefs = new.Refs()
	}
	return info
}
